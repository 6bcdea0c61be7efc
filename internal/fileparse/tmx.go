package fileparse

import (
	"errors"
	"io"

	"github.com/ppiankov/lqa/internal/lang"
	"github.com/ppiankov/lqa/internal/model"
)

type tmxDocument struct {
	Header struct {
		SrcLang string `xml:"srclang,attr"`
	} `xml:"header"`
	Units []tmxUnit `xml:"body>tu"`
}

type tmxUnit struct {
	Variants []tmxVariant `xml:"tuv"`
}

type tmxVariant struct {
	// matches both xml:lang (TMX 1.4) and lang (TMX 1.1)
	Lang string    `xml:"lang,attr"`
	Seg  innerText `xml:"seg"`
}

// TMXParser reads TMX translation memories
type TMXParser struct{}

// Format implements Parser
func (TMXParser) Format() Format { return FormatTMX }

// Parse emits one pair per <tu> that has target text. The header srclang
// picks the source variant; the first variant in another language is the
// target.
func (TMXParser) Parse(buf []byte) ([]model.SegmentPair, error) {
	dec, err := newDecoder(buf)
	if err != nil {
		return nil, &model.MalformedFileError{Format: "TMX", Reason: "unreadable encoding", Err: err}
	}

	var doc tmxDocument
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &model.MalformedFileError{Format: "TMX", Reason: "no XML content"}
		}
		return nil, &model.MalformedFileError{Format: "TMX", Reason: "invalid XML", Err: err}
	}
	if len(doc.Units) == 0 {
		return nil, &model.MalformedFileError{Format: "TMX", Reason: "no <tu> elements"}
	}

	srcLang := doc.Header.SrcLang
	var pairs []model.SegmentPair
	for _, tu := range doc.Units {
		src, tgt, ok := pickVariants(tu.Variants, srcLang)
		if !ok || blank(string(tgt.Seg)) {
			continue
		}

		sourceLang := src.Lang
		if sourceLang == "" {
			sourceLang = srcLang
		}
		pairs = append(pairs, model.SegmentPair{
			ID:         len(pairs) + 1,
			Source:     string(src.Seg),
			Target:     string(tgt.Seg),
			SourceLang: lang.Normalize(sourceLang),
			TargetLang: lang.Normalize(tgt.Lang),
		})
	}
	return pairs, nil
}

// pickVariants chooses the source variant (exact srclang match, then base
// language match, then the first variant) and the first variant whose
// language differs from it.
func pickVariants(variants []tmxVariant, srcLang string) (src, tgt tmxVariant, ok bool) {
	if len(variants) < 2 {
		return src, tgt, false
	}

	srcIdx := -1
	for i, v := range variants {
		if lang.Same(v.Lang, srcLang) {
			srcIdx = i
			break
		}
	}
	if srcIdx < 0 && srcLang != "" {
		base := lang.Normalize(srcLang)
		for i, v := range variants {
			if lang.Normalize(v.Lang) == base {
				srcIdx = i
				break
			}
		}
	}
	if srcIdx < 0 {
		srcIdx = 0
	}
	src = variants[srcIdx]

	for i, v := range variants {
		if i != srcIdx && !lang.Same(v.Lang, src.Lang) {
			return src, v, true
		}
	}
	return src, tgt, false
}
