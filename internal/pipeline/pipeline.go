// Package pipeline runs a complete quality analysis: input is segmented
// (free text) or parsed (TMX/XLIFF), aligned into pairs, evaluated pair by
// pair through an external evaluator in fixed-size batches, and aggregated
// into one weighted result. Results are cached by request fingerprint.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ppiankov/lqa/internal/align"
	"github.com/ppiankov/lqa/internal/cache"
	"github.com/ppiankov/lqa/internal/fileparse"
	"github.com/ppiankov/lqa/internal/lang"
	"github.com/ppiankov/lqa/internal/llm"
	"github.com/ppiankov/lqa/internal/model"
	"github.com/ppiankov/lqa/internal/score"
	"github.com/ppiankov/lqa/internal/segment"
	"github.com/ppiankov/lqa/internal/worker"
)

// Options configures an Analyzer. Only Provider is required.
type Options struct {
	Provider  llm.Provider
	ModelID   string // cache key component, e.g. "openai/gpt-4o-mini"
	Segmenter *segment.Segmenter
	Cache     *cache.AnalysisCache // nil disables caching
	Limiter   *worker.Limiter      // nil means unlimited
	Detector  lang.Detector        // nil disables source language detection
	BatchSize int
	MaxTokens int
	Logger    *slog.Logger
}

// Analyzer orchestrates one analysis per call. It keeps no per-request
// state and is safe for concurrent use.
type Analyzer struct {
	provider   llm.Provider
	modelID    string
	segmenter  *segment.Segmenter
	cache      *cache.AnalysisCache
	limiter    *worker.Limiter
	detector   lang.Detector
	aggregator *score.Aggregator
	batchSize  int
	maxTokens  int
	logger     *slog.Logger
}

// NewAnalyzer creates an analyzer from opts
func NewAnalyzer(opts Options) (*Analyzer, error) {
	if opts.Provider == nil {
		return nil, fmt.Errorf("evaluator provider is required")
	}

	a := &Analyzer{
		provider:   opts.Provider,
		modelID:    opts.ModelID,
		segmenter:  opts.Segmenter,
		cache:      opts.Cache,
		limiter:    opts.Limiter,
		detector:   opts.Detector,
		aggregator: score.NewAggregator(),
		batchSize:  opts.BatchSize,
		maxTokens:  opts.MaxTokens,
		logger:     opts.Logger,
	}
	if a.modelID == "" {
		a.modelID = opts.Provider.Name()
	}
	if a.segmenter == nil {
		a.segmenter = segment.NewSegmenter(nil)
	}
	if a.batchSize <= 0 {
		a.batchSize = worker.DefaultBatchSize
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	return a, nil
}

// TextRequest is a free-text analysis request
type TextRequest struct {
	SourceText string
	TargetText string
	SourceLang string
	TargetLang string
	Mode       string // monolingual or bilingual; empty means bilingual
}

// Run is the record of one analysis. A cache hit carries the same Pairs and
// Result as the fresh run that filled the entry; it differs in ID, CreatedAt,
// Cached and, for a renamed file, Source.
type Run struct {
	ID          uuid.UUID             `json:"id"`
	CreatedAt   time.Time             `json:"created_at"`
	Source      string                `json:"source,omitempty"` // file name in file mode
	Fingerprint string                `json:"fingerprint"`
	Cached      bool                  `json:"cached"`
	Mode        model.Mode            `json:"mode"`
	Model       string                `json:"model"`
	Pairs       []model.SegmentPair   `json:"pairs,omitempty"`
	Result      model.AggregateResult `json:"result"`
}

// AnalyzeText segments both texts, aligns them by position and evaluates
// every resulting pair.
func (a *Analyzer) AnalyzeText(ctx context.Context, req TextRequest) (*Run, error) {
	if strings.TrimSpace(req.SourceText) == "" && strings.TrimSpace(req.TargetText) == "" {
		return nil, model.ErrEmptyInput
	}
	mode, ok := model.ParseMode(req.Mode)
	if !ok {
		return nil, fmt.Errorf("invalid mode %q (expected monolingual or bilingual)", req.Mode)
	}

	sourceLang := req.SourceLang
	if mode == model.ModeBilingual && strings.TrimSpace(sourceLang) == "" && a.detector != nil {
		if code, found := a.detector.Detect(req.SourceText); found {
			sourceLang = code.String()
			a.logger.Debug("detected source language", "lang", sourceLang)
		}
	}
	targetLang := req.TargetLang
	if strings.TrimSpace(targetLang) == "" && a.detector != nil {
		if code, found := a.detector.Detect(req.TargetText); found {
			targetLang = code.String()
			a.logger.Debug("detected target language", "lang", targetLang)
		}
	}

	sourceText := req.SourceText
	if mode == model.ModeMonolingual && strings.TrimSpace(req.TargetText) != "" {
		// the source plays no part in a monolingual review of a target
		sourceText, sourceLang = "", ""
	}

	srcCode, tgtCode := lang.Normalize(sourceLang), lang.Normalize(targetLang)
	pairs := align.Text(
		a.segmenter.Segment(sourceText, srcCode),
		a.segmenter.Segment(req.TargetText, tgtCode),
		srcCode, tgtCode, mode,
	)

	fp := cache.NewFingerprint(sourceText, req.TargetText, sourceLang, targetLang, mode, a.modelID)
	if run, hit := a.lookup(fp, mode, "", pairs); hit {
		return run, nil
	}
	return a.evaluate(ctx, fp, mode, "", pairs)
}

// AnalyzeFile parses a TMX or XLIFF buffer and evaluates its units as
// delivered. The file name selects the format; unsupported names are
// rejected before parsing.
func (a *Analyzer) AnalyzeFile(ctx context.Context, name string, buf []byte) (*Run, error) {
	parsed, err := fileparse.ParseFile(name, buf)
	if err != nil {
		return nil, err
	}
	pairs := align.Files(parsed)

	fp := cache.PairsFingerprint(pairs, model.ModeBilingual, a.modelID)
	if run, hit := a.lookup(fp, model.ModeBilingual, name, pairs); hit {
		return run, nil
	}
	return a.evaluate(ctx, fp, model.ModeBilingual, name, pairs)
}

func (a *Analyzer) lookup(fp cache.Fingerprint, mode model.Mode, source string, pairs []model.SegmentPair) (*Run, bool) {
	key := fp.Key()
	result, ok := a.cache.Lookup(fp)
	if !ok {
		a.logger.Debug("analysis cache miss", "fingerprint", key)
		return nil, false
	}
	a.logger.Info("analysis cache hit", "fingerprint", key, "model", a.modelID)
	return a.newRun(key, mode, source, pairs, *result, true), true
}

// evaluate scores pairs batch by batch. Any evaluator failure aborts the
// analysis; nothing from completed batches is kept or cached.
func (a *Analyzer) evaluate(ctx context.Context, fp cache.Fingerprint, mode model.Mode, source string, pairs []model.SegmentPair) (*Run, error) {
	key := fp.Key()
	a.logger.Info("evaluating segments",
		"fingerprint", key,
		"segments", len(pairs),
		"batches", worker.Batches(len(pairs), a.batchSize),
		"model", a.modelID,
	)

	evals, err := worker.RunBatches(ctx, pairs, a.batchSize, func(ctx context.Context, pair model.SegmentPair) (model.SegmentEvaluation, error) {
		if err := a.limiter.Wait(ctx, a.modelID); err != nil {
			return model.SegmentEvaluation{}, &model.EvaluationError{SegmentID: pair.ID, Err: err}
		}
		resp, err := a.provider.Evaluate(ctx, llm.EvaluateRequest{
			Pair:      pair,
			Mode:      mode,
			MaxTokens: a.maxTokens,
		})
		if err != nil {
			return model.SegmentEvaluation{}, &model.EvaluationError{SegmentID: pair.ID, Err: err}
		}
		eval := resp.Evaluation
		eval.Pair = pair
		return eval, nil
	})
	if err != nil {
		a.logger.Error("evaluation aborted", "fingerprint", key, "error", err)
		return nil, err
	}

	result := a.aggregator.Aggregate(mode, evals)
	if err := a.cache.Store(fp, result); err != nil {
		a.logger.Warn("failed to store analysis", "fingerprint", key, "error", err)
	}
	return a.newRun(key, mode, source, pairs, result, false), nil
}

func (a *Analyzer) newRun(key string, mode model.Mode, source string, pairs []model.SegmentPair, result model.AggregateResult, cached bool) *Run {
	return &Run{
		ID:          uuid.New(),
		CreatedAt:   time.Now().UTC(),
		Source:      source,
		Fingerprint: key,
		Cached:      cached,
		Mode:        mode,
		Model:       a.modelID,
		Pairs:       pairs,
		Result:      result,
	}
}
