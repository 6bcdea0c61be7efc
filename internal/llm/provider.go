// Package llm adapts external language models into per-segment quality
// evaluators. Each call scores one segment pair and returns MQM issues.
package llm

import (
	"context"
	"strings"

	"github.com/ppiankov/lqa/internal/model"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Evaluate scores one segment pair
	Evaluate(ctx context.Context, req EvaluateRequest) (*EvaluateResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// EvaluateRequest contains the input for one segment evaluation
type EvaluateRequest struct {
	// Pair is the segment pair to evaluate
	Pair model.SegmentPair

	// Mode decides whether the source takes part in the evaluation
	Mode model.Mode

	// Prompt is an optional custom prompt (if empty, use default)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// EvaluateResponse contains the parsed evaluation
type EvaluateResponse struct {
	Evaluation model.SegmentEvaluation

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama"
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "openai",
		Model:     "gpt-4o-mini",
		Timeout:   60,
		MaxTokens: 2000,
	}
}

// defaultModels are used when a provider is configured without a model
var defaultModels = map[string]string{
	"openai":    "gpt-4o-mini",
	"anthropic": defaultAnthropicModel,
	"claude":    defaultAnthropicModel,
}

// ModelID identifies the provider and model for cache keys
func (c Config) ModelID() string {
	name := c.Model
	if name == "" {
		name = defaultModels[strings.ToLower(c.Provider)]
	}
	return strings.ToLower(c.Provider) + "/" + name
}

func (c Config) maxTokens(req EvaluateRequest) int {
	if req.MaxTokens > 0 {
		return req.MaxTokens
	}
	if c.MaxTokens > 0 {
		return c.MaxTokens
	}
	return 2000
}

func (c Config) model(req EvaluateRequest, fallback string) string {
	if req.Model != "" {
		return req.Model
	}
	if c.Model != "" {
		return c.Model
	}
	return fallback
}
