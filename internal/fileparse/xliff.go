package fileparse

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"github.com/ppiankov/lqa/internal/lang"
	"github.com/ppiankov/lqa/internal/model"
)

// XLIFF 1.2 <trans-unit>
type xliffUnit struct {
	Source innerText `xml:"source"`
	Target innerText `xml:"target"`
}

// XLIFF 2.x <unit>
type xliff2Unit struct {
	Segments []struct {
		Source innerText `xml:"source"`
		Target innerText `xml:"target"`
	} `xml:"segment"`
}

// XLIFFParser reads XLIFF 1.2 and 2.x documents
type XLIFFParser struct{}

// Format implements Parser
func (XLIFFParser) Format() Format { return FormatXLIFF }

// Parse emits one pair per unit (1.2 <trans-unit>, 2.x <segment>) with a
// non-empty source. Languages come from the enclosing <file>, or from the
// <xliff> root in 2.x. Units marked translate="no", or inside a <group>
// marked so, are skipped.
func (XLIFFParser) Parse(buf []byte) ([]model.SegmentPair, error) {
	dec, err := newDecoder(buf)
	if err != nil {
		return nil, &model.MalformedFileError{Format: "XLIFF", Reason: "unreadable encoding", Err: err}
	}

	var (
		pairs            []model.SegmentPair
		fileSeen         bool
		rootSrc, rootTgt string
		srcLang, tgtLang lang.Code

		// translate="no" state per open <group>, inherited by nested groups
		groups []bool
	)
	inSkippedGroup := func() bool {
		return len(groups) > 0 && groups[len(groups)-1]
	}
	emit := func(source, target string) {
		if blank(source) {
			return
		}
		pairs = append(pairs, model.SegmentPair{
			ID:         len(pairs) + 1,
			Source:     source,
			Target:     target,
			SourceLang: srcLang,
			TargetLang: tgtLang,
		})
	}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &model.MalformedFileError{Format: "XLIFF", Reason: "invalid XML", Err: err}
		}

		if end, ok := tok.(xml.EndElement); ok {
			if end.Name.Local == "group" && len(groups) > 0 {
				groups = groups[:len(groups)-1]
			}
			continue
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch start.Name.Local {
		case "group":
			groups = append(groups, inSkippedGroup() || skipped(start))

		case "xliff":
			rootSrc = attr(start, "srcLang")
			rootTgt = attr(start, "trgLang")

		case "file":
			fileSeen = true
			srcLang = lang.Normalize(firstNonEmpty(attr(start, "source-language"), rootSrc))
			tgtLang = lang.Normalize(firstNonEmpty(attr(start, "target-language"), rootTgt))

		case "trans-unit":
			var u xliffUnit
			if err := dec.DecodeElement(&u, &start); err != nil {
				return nil, &model.MalformedFileError{Format: "XLIFF", Reason: "invalid <trans-unit>", Err: err}
			}
			if fileSeen && !skipped(start) && !inSkippedGroup() {
				emit(string(u.Source), string(u.Target))
			}

		case "unit":
			var u xliff2Unit
			if err := dec.DecodeElement(&u, &start); err != nil {
				return nil, &model.MalformedFileError{Format: "XLIFF", Reason: "invalid <unit>", Err: err}
			}
			if fileSeen && !skipped(start) && !inSkippedGroup() {
				for _, seg := range u.Segments {
					emit(string(seg.Source), string(seg.Target))
				}
			}
		}
	}

	if !fileSeen {
		return nil, &model.MalformedFileError{Format: "XLIFF", Reason: "no <file> element"}
	}
	return pairs, nil
}

func skipped(start xml.StartElement) bool {
	return strings.EqualFold(attr(start, "translate"), "no")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
