package model

import (
	"strings"

	"github.com/ppiankov/lqa/internal/lang"
)

// Segment is one sentence-like unit produced by the segmenter
type Segment struct {
	Text string `json:"text"`
}

// SegmentPair is the unit of per-segment evaluation.
// IDs start at 1 and increase by one across a sequence. Source or Target
// may be empty (monolingual input, alignment padding) but not both.
type SegmentPair struct {
	ID         int       `json:"id"`
	Source     string    `json:"source"`
	Target     string    `json:"target"`
	SourceLang lang.Code `json:"source_lang,omitempty"`
	TargetLang lang.Code `json:"target_lang,omitempty"`
}

// Mode selects whether a source text takes part in the analysis
type Mode string

const (
	ModeMonolingual Mode = "monolingual"
	ModeBilingual   Mode = "bilingual"
)

// ParseMode accepts the two mode names case-insensitively; empty means bilingual
func ParseMode(s string) (Mode, bool) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeMonolingual:
		return ModeMonolingual, true
	case ModeBilingual, "":
		return ModeBilingual, true
	default:
		return "", false
	}
}
