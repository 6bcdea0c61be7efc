package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/lqa/internal/cache"
	"github.com/ppiankov/lqa/internal/lang"
	"github.com/ppiankov/lqa/internal/llm"
	"github.com/ppiankov/lqa/internal/model"
	"github.com/ppiankov/lqa/internal/pipeline"
	"github.com/ppiankov/lqa/internal/segment"
	"github.com/ppiankov/lqa/internal/worker"
)

// evaluator flags shared by analyze, file and batch
var (
	noCache     bool
	noDetect    bool
	llmProvider string
	llmModel    string
	batchSize   int
)

func addEvaluatorFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the analysis cache (force fresh evaluation)")
	cmd.Flags().BoolVar(&noDetect, "no-detect", false, "do not detect missing languages")
	cmd.Flags().StringVar(&llmProvider, "llm-provider", "", "LLM provider (openai, anthropic, ollama)")
	cmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
	cmd.Flags().IntVar(&batchSize, "batch-size", 0, "concurrent evaluator calls per batch")
}

// effectiveConfig applies command flags over the loaded configuration
func effectiveConfig() model.Config {
	c := cfg
	if llmProvider != "" {
		c.LLM.Provider = llmProvider
		if llmModel == "" && llmProvider != cfg.LLM.Provider {
			c.LLM.Model = ""
		}
	}
	if llmModel != "" {
		c.LLM.Model = llmModel
	}
	if batchSize > 0 {
		c.Batch.Size = batchSize
	}
	if noCache {
		c.Cache.Enabled = false
	}
	c.Output.Verbose = c.Output.Verbose || verbose
	return c
}

// newAnalyzer wires the evaluator, segmentation rules, cache and limiter.
// The returned cleanup closes the cache backend.
func newAnalyzer(c model.Config) (*pipeline.Analyzer, func(), error) {
	llmCfg := llm.ConfigFromModel(c.LLM)
	provider, err := llm.NewProvider(llmCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("initialize LLM provider: %w", err)
	}

	table, err := newRuleTable(c.Segmentation)
	if err != nil {
		slog.Warn("some segmentation rules were not compiled", "error", err)
	}

	analysisCache, closeCache, err := openAnalysisCache(c.Cache)
	if err != nil {
		return nil, nil, err
	}

	var detector lang.Detector
	if !noDetect {
		detector = lang.NewLinguaDetector()
	}

	analyzer, err := pipeline.NewAnalyzer(pipeline.Options{
		Provider:  provider,
		ModelID:   llmCfg.ModelID(),
		Segmenter: segment.NewSegmenter(table),
		Cache:     analysisCache,
		Limiter:   worker.NewLimiter(c.Batch.RequestsPerSecond, c.Batch.Burst),
		Detector:  detector,
		BatchSize: c.Batch.Size,
		MaxTokens: llmCfg.MaxTokens,
		Logger:    slog.Default(),
	})
	if err != nil {
		closeCache()
		return nil, nil, err
	}
	return analyzer, closeCache, nil
}

func newRuleTable(sc model.SegmentationConfig) (*lang.Table, error) {
	if len(sc.Languages) == 0 {
		return lang.Builtin(), nil
	}
	extra := make(map[lang.Code]lang.Spec, len(sc.Languages))
	for code, spec := range sc.Languages {
		extra[lang.Code(code)] = spec
	}
	return lang.NewTable(extra)
}

// openAnalysisCache returns a nil cache when caching is disabled
func openAnalysisCache(cc model.CacheConfig) (*cache.AnalysisCache, func(), error) {
	if !cc.Enabled {
		return nil, func() {}, nil
	}
	backend, err := cache.New(cc)
	if err != nil {
		return nil, nil, fmt.Errorf("open cache: %w", err)
	}
	closeFn := func() {
		if closer, ok := backend.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				slog.Warn("failed to close cache", "error", err)
			}
		}
	}
	return cache.NewAnalysisCache(backend, cc.TTL), closeFn, nil
}

// report writes run as JSON when jsonPath is set and prints its summary
func report(run *pipeline.Run, jsonPath string, c model.Config) error {
	renderer := pipeline.NewRenderer(c.Output.Pretty, c.Output.Verbose)
	if jsonPath != "" {
		if err := renderer.RenderJSON(run, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if c.Output.Verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", jsonPath)
		}
	}
	renderer.RenderSummary(os.Stdout, run)
	return nil
}
