package model

import (
	"time"

	"github.com/ppiankov/lqa/internal/lang"
)

// Config holds the complete lqa configuration
type Config struct {
	LLM          LLMConfig          `yaml:"llm" mapstructure:"llm"`
	Batch        BatchConfig        `yaml:"batch" mapstructure:"batch"`
	Cache        CacheConfig        `yaml:"cache" mapstructure:"cache"`
	Segmentation SegmentationConfig `yaml:"segmentation" mapstructure:"segmentation"`
	Log          LogConfig          `yaml:"log" mapstructure:"log"`
	Output       OutputConfig       `yaml:"output" mapstructure:"output"`
}

// LLMConfig configures the external evaluator
type LLMConfig struct {
	Provider   string `yaml:"provider" mapstructure:"provider"` // openai, anthropic, ollama
	Model      string `yaml:"model" mapstructure:"model"`
	APIKey     string `yaml:"api_key,omitempty" mapstructure:"api_key"`
	BaseURL    string `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout    int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens  int    `yaml:"max_tokens" mapstructure:"max_tokens"`
	HTTPProxy  string `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy string `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy    string `yaml:"no_proxy,omitempty" mapstructure:"no_proxy"`
}

// BatchConfig bounds concurrent evaluator calls
type BatchConfig struct {
	Size              int     `yaml:"size" mapstructure:"size"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"` // 0 = unlimited
	Burst             int     `yaml:"burst" mapstructure:"burst"`
}

// CacheConfig selects the analysis cache backend
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	Backend string        `yaml:"backend" mapstructure:"backend"` // memory, disk, sqlite, layered
	Dir     string        `yaml:"dir" mapstructure:"dir"`
	Path    string        `yaml:"path" mapstructure:"path"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"` // 0 = entries never expire
}

// SegmentationConfig adds or overrides per-language rule sets
type SegmentationConfig struct {
	Languages map[string]lang.Spec `yaml:"languages,omitempty" mapstructure:"languages"`
}

// LogConfig configures slog output on stderr
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"` // text, json
}

// OutputConfig controls CLI output
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
	Pretty  bool `yaml:"pretty" mapstructure:"pretty"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() Config {
	return Config{
		LLM: LLMConfig{
			Provider:  "openai",
			Model:     "gpt-4o-mini",
			Timeout:   60,
			MaxTokens: 2000,
		},
		Batch: BatchConfig{
			Size:  5,
			Burst: 5,
		},
		Cache: CacheConfig{
			Enabled: true,
			Backend: "layered",
			Dir:     "~/.lqa/cache",
			Path:    "~/.lqa/cache.db",
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
		Output: OutputConfig{
			Pretty: true,
		},
	}
}
