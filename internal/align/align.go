// Package align pairs source and target segments for per-segment scoring.
//
// Free-text alignment is positional: source segment i is paired with target
// segment i and the shorter side is padded with empty strings. No semantic
// sentence alignment is attempted, so bilingual texts whose sentence counts
// differ will pair unrelated sentences after the first divergence.
package align

import (
	"github.com/ppiankov/lqa/internal/lang"
	"github.com/ppiankov/lqa/internal/model"
)

// Files returns pairs parsed from a bilingual file unchanged. File structure
// already carries the alignment.
func Files(pairs []model.SegmentPair) []model.SegmentPair {
	return pairs
}

// Text aligns independently segmented free text by position.
//
// In monolingual mode only the populated side is used; each pair carries
// that side's text and language and leaves the other role empty.
func Text(source, target []model.Segment, sourceLang, targetLang lang.Code, mode model.Mode) []model.SegmentPair {
	if mode == model.ModeMonolingual {
		return monolingual(source, target, sourceLang, targetLang)
	}

	n := max(len(source), len(target))
	pairs := make([]model.SegmentPair, 0, n)
	for i := 0; i < n; i++ {
		p := model.SegmentPair{
			ID:         i + 1,
			Source:     at(source, i),
			Target:     at(target, i),
			SourceLang: sourceLang,
			TargetLang: targetLang,
		}
		pairs = append(pairs, p)
	}
	return pairs
}

func monolingual(source, target []model.Segment, sourceLang, targetLang lang.Code) []model.SegmentPair {
	useTarget := len(target) > 0 || len(source) == 0
	side, code := target, targetLang
	if !useTarget {
		side, code = source, sourceLang
	}

	pairs := make([]model.SegmentPair, 0, len(side))
	for i, seg := range side {
		p := model.SegmentPair{ID: i + 1}
		if useTarget {
			p.Target, p.TargetLang = seg.Text, code
		} else {
			p.Source, p.SourceLang = seg.Text, code
		}
		pairs = append(pairs, p)
	}
	return pairs
}

func at(segments []model.Segment, i int) string {
	if i < len(segments) {
		return segments[i].Text
	}
	return ""
}
