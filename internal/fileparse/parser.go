// Package fileparse reads bilingual translation-exchange files (TMX and
// XLIFF) into ordered segment pairs. Units are already segments; their
// text is never re-segmented.
package fileparse

import (
	"path/filepath"
	"strings"

	"github.com/ppiankov/lqa/internal/model"
)

// Format identifies a bilingual file format
type Format string

const (
	FormatTMX   Format = "tmx"
	FormatXLIFF Format = "xliff"
)

// Parser turns a file buffer into segment pairs numbered from 1
type Parser interface {
	Format() Format
	Parse(buf []byte) ([]model.SegmentPair, error)
}

var extensions = map[string]Format{
	".tmx":      FormatTMX,
	".xlf":      FormatXLIFF,
	".xliff":    FormatXLIFF,
	".sdlxliff": FormatXLIFF,
	".mqxliff":  FormatXLIFF,
}

// DetectFormat picks the format from the file name extension
func DetectFormat(name string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if f, ok := extensions[ext]; ok {
		return f, nil
	}
	return "", &model.UnsupportedFormatError{Name: name}
}

// ForFormat returns the parser for a format
func ForFormat(f Format) (Parser, error) {
	switch f {
	case FormatTMX:
		return TMXParser{}, nil
	case FormatXLIFF:
		return XLIFFParser{}, nil
	default:
		return nil, &model.UnsupportedFormatError{Name: string(f)}
	}
}

// ParseFile detects the format from name and parses buf. Unsupported
// names are rejected before any parsing is attempted.
func ParseFile(name string, buf []byte) ([]model.SegmentPair, error) {
	f, err := DetectFormat(name)
	if err != nil {
		return nil, err
	}
	p, err := ForFormat(f)
	if err != nil {
		return nil, err
	}
	return p.Parse(buf)
}
