// Package segment splits text blocks into sentence-like segments using
// per-language rules. Inline markup, placeholders and code spans are
// shielded before boundary detection and restored afterwards, so
// punctuation inside them never causes a split.
package segment

import (
	"strings"
	"unicode"

	"github.com/ppiankov/lqa/internal/lang"
	"github.com/ppiankov/lqa/internal/model"
)

// Strategy is one way of splitting protected text. It reports false when
// it cannot produce any segment, letting the next strategy try.
type Strategy interface {
	Name() string
	Split(text string, rules lang.Rules) ([]string, bool)
}

// RuleStrategy detects boundaries with the rules' end marker and
// suppresses those preceded by a known exception.
type RuleStrategy struct{}

// Name returns the strategy name
func (RuleStrategy) Name() string { return "rules" }

// Split implements Strategy
func (RuleStrategy) Split(text string, rules lang.Rules) ([]string, bool) {
	marker := rules.EndMarker()
	if marker == nil {
		return nil, false
	}

	var parts []string
	emit := func(s string) {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}

	start := 0
	for _, loc := range marker.FindAllStringIndex(text, -1) {
		// boundary sits after the punctuation, before the trailing whitespace
		end := loc[0] + len(strings.TrimRightFunc(text[loc[0]:loc[1]], unicode.IsSpace))
		if end <= start {
			continue
		}
		if rules.Suppressed(text[start:end]) {
			continue
		}
		emit(text[start:end])
		start = loc[1]
	}
	emit(text[start:])

	return parts, len(parts) > 0
}

// WholeTextStrategy returns the entire input as one segment
type WholeTextStrategy struct{}

// Name returns the strategy name
func (WholeTextStrategy) Name() string { return "whole-text" }

// Split implements Strategy
func (WholeTextStrategy) Split(text string, _ lang.Rules) ([]string, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, false
	}
	return []string{text}, true
}

// DefaultStrategies is the fallback order: rules first, whole text last
var DefaultStrategies = []Strategy{RuleStrategy{}, WholeTextStrategy{}}

// Segmenter splits text into segments. It holds no mutable state and is
// safe for concurrent use.
type Segmenter struct {
	table      *lang.Table
	strategies []Strategy
}

// NewSegmenter creates a segmenter over table (nil means the built-in table)
func NewSegmenter(table *lang.Table, strategies ...Strategy) *Segmenter {
	if table == nil {
		table = lang.Builtin()
	}
	if len(strategies) == 0 {
		strategies = DefaultStrategies
	}
	return &Segmenter{table: table, strategies: strategies}
}

// Segment splits text in document order. Calling it twice on the same
// input yields the same sequence. Whitespace-only input yields no segments.
func (s *Segmenter) Segment(text string, code lang.Code) []model.Segment {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	rules := s.table.RulesFor(code)
	p := protect(text, rules.Preserve())

	for _, strategy := range s.strategies {
		parts, ok := strategy.Split(p.text, rules)
		if !ok {
			continue
		}
		segments := make([]model.Segment, 0, len(parts))
		for _, part := range parts {
			segments = append(segments, model.Segment{Text: p.restore(part)})
		}
		return segments
	}

	// every strategy declined; whole text is always safe
	return []model.Segment{{Text: strings.TrimSpace(text)}}
}

// Texts returns the text of each segment
func Texts(segments []model.Segment) []string {
	out := make([]string, len(segments))
	for i, seg := range segments {
		out[i] = seg.Text
	}
	return out
}
