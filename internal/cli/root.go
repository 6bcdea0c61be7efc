package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/lqa/internal/model"
)

const version = "lqa v0.1.0"

var (
	cfgFile string
	verbose bool

	// cfg is the effective configuration after initConfig
	cfg = model.DefaultConfig()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "lqa",
	Short: "lqa - Linguistic quality assessment for translations",
	Long: `lqa scores translation quality with MQM categories and severities.

Text is split into sentence-like segments (or read from TMX/XLIFF units),
source and target segments are paired, each pair is reviewed by a language
model, and the per-segment scores are combined into one word-weighted
document score.

Segment pairing for free text is positional: source sentence N is paired
with target sentence N. No semantic alignment is attempted.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number of lqa.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.lqa/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")

	// Bind flags to viper
	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
		} else {
			viper.AddConfigPath(filepath.Join(home, ".lqa"))
		}
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}

	loaded, err := loadConfig(viper.GetViper())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: invalid configuration, using defaults: %v\n", err)
		loaded = model.DefaultConfig()
	}
	cfg = loaded

	slog.SetDefault(newLogger(cfg.Log))
}

// loadConfig decodes v over the built-in defaults. LQA_* environment
// variables override the config file.
func loadConfig(v *viper.Viper) (model.Config, error) {
	c := model.DefaultConfig()

	// Unmarshal only sees env vars for keys viper already knows
	setDefaults(v, c)
	v.SetEnvPrefix("LQA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("decode config: %w", err)
	}
	c.Cache.Dir = expandHome(c.Cache.Dir)
	c.Cache.Path = expandHome(c.Cache.Path)
	return c, nil
}

func setDefaults(v *viper.Viper, c model.Config) {
	v.SetDefault("llm.provider", c.LLM.Provider)
	v.SetDefault("llm.model", c.LLM.Model)
	v.SetDefault("llm.api_key", c.LLM.APIKey)
	v.SetDefault("llm.base_url", c.LLM.BaseURL)
	v.SetDefault("llm.timeout", c.LLM.Timeout)
	v.SetDefault("llm.max_tokens", c.LLM.MaxTokens)
	v.SetDefault("llm.http_proxy", c.LLM.HTTPProxy)
	v.SetDefault("llm.https_proxy", c.LLM.HTTPSProxy)
	v.SetDefault("llm.no_proxy", c.LLM.NoProxy)

	v.SetDefault("batch.size", c.Batch.Size)
	v.SetDefault("batch.requests_per_second", c.Batch.RequestsPerSecond)
	v.SetDefault("batch.burst", c.Batch.Burst)

	v.SetDefault("cache.enabled", c.Cache.Enabled)
	v.SetDefault("cache.backend", c.Cache.Backend)
	v.SetDefault("cache.dir", c.Cache.Dir)
	v.SetDefault("cache.path", c.Cache.Path)
	v.SetDefault("cache.ttl", c.Cache.TTL)

	v.SetDefault("log.level", c.Log.Level)
	v.SetDefault("log.format", c.Log.Format)

	v.SetDefault("output.verbose", c.Output.Verbose)
	v.SetDefault("output.pretty", c.Output.Pretty)
}

// newLogger builds a stderr slog logger from the log section
func newLogger(lc model.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(lc.Level)}

	var handler slog.Handler
	if strings.EqualFold(lc.Format, "json") {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// expandHome replaces a leading ~ with the user's home directory
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
