// Package score combines per-segment evaluations into a document result.
package score

import (
	"math"

	"github.com/ppiankov/lqa/internal/model"
)

// Aggregator computes document-level totals from segment evaluations
type Aggregator struct{}

// NewAggregator creates a new aggregator
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Aggregate combines evaluations, given in segment order.
//
// The overall score is the word-count weighted mean of segment scores, so a
// long low-scoring segment outweighs a short one. With no words at all the
// score is 100. Issues keep their segment-local SegmentText and indices;
// consumers highlighting issues in the full document must offset them by
// the position of the owning segment themselves.
//
// In monolingual mode Accuracy is not evaluated: its total stays zero and
// any Accuracy issues an evaluator returns are dropped.
func (a *Aggregator) Aggregate(mode model.Mode, evals []model.SegmentEvaluation) model.AggregateResult {
	result := model.AggregateResult{
		Categories: make(map[model.Category]model.CategoryTotal, len(model.Categories)),
		Issues:     []model.Issue{},
	}
	for _, c := range model.Categories {
		result.Categories[c] = model.CategoryTotal{}
	}

	counts := make([]int, len(evals))
	for i, ev := range evals {
		counts[i] = PairWordCount(ev.Pair, mode)
		result.WordCount += counts[i]
	}

	var weighted float64
	for i, ev := range evals {
		if result.WordCount > 0 {
			weighted += clamp(ev.Score) * float64(counts[i]) / float64(result.WordCount)
		}

		for _, issue := range ev.Issues {
			issue.Category = model.CanonicalCategory(string(issue.Category))
			if mode == model.ModeMonolingual && issue.Category == model.CategoryAccuracy {
				continue
			}
			if issue.SegmentID == 0 {
				issue.SegmentID = ev.Pair.ID
			}

			total := result.Categories[issue.Category]
			total.Count++
			total.Points += issue.Severity.Points()
			result.Categories[issue.Category] = total

			result.Issues = append(result.Issues, issue)
		}
	}

	if result.WordCount == 0 {
		result.OverallScore = 100
	} else {
		result.OverallScore = round2(weighted)
	}
	return result
}

// PairWordCount counts the target side in bilingual mode and whichever side
// has text in monolingual mode.
func PairWordCount(pair model.SegmentPair, mode model.Mode) int {
	if mode == model.ModeMonolingual && pair.Target == "" {
		return WordCount(pair.Source)
	}
	return WordCount(pair.Target)
}

func clamp(score float64) float64 {
	switch {
	case math.IsNaN(score), score < 0:
		return 0
	case score > 100:
		return 100
	default:
		return score
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
