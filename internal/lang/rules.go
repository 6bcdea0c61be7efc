package lang

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Shape selects the family of sentence-boundary rules a language uses.
type Shape string

const (
	// ShapeDefault: Western terminal punctuation followed by whitespace or end of text
	ShapeDefault Shape = "default"
	// ShapeCJK: full-width terminal punctuation, no whitespace required, no abbreviations
	ShapeCJK Shape = "cjk"
	// ShapeOverride: custom end marker supplied by the rule set
	ShapeOverride Shape = "override"
)

// DefaultCode is the table key used for unknown languages.
const DefaultCode Code = "default"

const (
	defaultEndMarker = `[.!?…]+["'”’»)\]]*(?:\s+|$)`
	cjkEndMarker     = `[。！？｡]+[」』”’）)】]*\s*`
)

// Spec is the data form of a language rule set, as it appears in the
// built-in table and in configuration files.
type Spec struct {
	Shape         Shape    `yaml:"shape" mapstructure:"shape"`
	EndMarker     string   `yaml:"end_marker,omitempty" mapstructure:"end_marker"`
	Abbreviations []string `yaml:"abbreviations,omitempty" mapstructure:"abbreviations"`
	Exceptions    []string `yaml:"exceptions,omitempty" mapstructure:"exceptions"`
	Preserve      []string `yaml:"preserve,omitempty" mapstructure:"preserve"`
}

// Rules is an immutable compiled rule set. The zero value has no end
// marker, which makes segmentation fall back to whole-text output.
type Rules struct {
	code       Code
	shape      Shape
	endMarker  *regexp.Regexp
	exceptions []*regexp.Regexp
	preserve   []*regexp.Regexp
}

// Code returns the table key these rules were compiled for
func (r Rules) Code() Code { return r.code }

// Shape returns the rule family
func (r Rules) Shape() Shape { return r.shape }

// EndMarker returns the boundary pattern, or nil if the rule set is degraded
func (r Rules) EndMarker() *regexp.Regexp { return r.endMarker }

// Exceptions returns a copy of the ordered exception patterns
func (r Rules) Exceptions() []*regexp.Regexp {
	return append([]*regexp.Regexp(nil), r.exceptions...)
}

// Preserve returns a copy of the ordered preserve patterns
func (r Rules) Preserve() []*regexp.Regexp {
	return append([]*regexp.Regexp(nil), r.preserve...)
}

// Suppressed reports whether the text preceding a candidate boundary ends
// with a known exception. Patterns are tried in order; the first match wins.
func (r Rules) Suppressed(preceding string) bool {
	for _, re := range r.exceptions {
		if re.MatchString(preceding) {
			return true
		}
	}
	return false
}

// DefaultPreserve lists content that must never be split or altered:
// fenced and inline code, markup tags, format placeholders and entities.
// Order matters: longer constructs are protected first.
var DefaultPreserve = []string{
	"(?s)```.*?```",
	"`[^`\n]+`",
	`<[^<>]+>`,
	`\{\{[^{}]+\}\}`,
	`\$\{[^{}]+\}`,
	`\{[0-9]+\}`,
	`\{[A-Za-z_][A-Za-z0-9_.]*\}`,
	`%(?:[0-9]+\$)?[-+ #0]*[0-9]*(?:\.[0-9]+)?[sdifuxXeEgGcpq@]`,
	`&(?:[A-Za-z]+|#[0-9]+|#x[0-9A-Fa-f]+);`,
}

// Compile turns a Spec into Rules. On a bad pattern it still returns the
// best rule set it could build (without an end marker when that pattern
// failed) together with the error.
func Compile(code Code, spec Spec) (Rules, error) {
	r := Rules{code: code, shape: spec.Shape}
	if r.shape == "" {
		r.shape = ShapeDefault
	}

	var errs []error

	marker := spec.EndMarker
	switch r.shape {
	case ShapeDefault:
		if marker == "" {
			marker = defaultEndMarker
		}
	case ShapeCJK:
		if marker == "" {
			marker = cjkEndMarker
		}
	case ShapeOverride:
		if marker == "" {
			errs = append(errs, fmt.Errorf("%s: override shape requires end_marker", code))
		}
	default:
		errs = append(errs, fmt.Errorf("%s: unknown shape %q", code, spec.Shape))
		marker = ""
	}
	if marker != "" {
		re, err := regexp.Compile(marker)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: end marker: %w", code, err))
		} else {
			r.endMarker = re
		}
	}

	// Abbreviations are not a concept in character scripts.
	if r.shape != ShapeCJK {
		for _, abbr := range spec.Abbreviations {
			re, err := abbreviationPattern(abbr)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: abbreviation %q: %w", code, abbr, err))
				continue
			}
			r.exceptions = append(r.exceptions, re)
		}
		for _, pattern := range spec.Exceptions {
			re, err := regexp.Compile(pattern)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: exception %q: %w", code, pattern, err))
				continue
			}
			r.exceptions = append(r.exceptions, re)
		}
	}

	preserve := spec.Preserve
	if len(preserve) == 0 {
		preserve = DefaultPreserve
	}
	for _, pattern := range preserve {
		re, err := regexp.Compile(pattern)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: preserve %q: %w", code, pattern, err))
			continue
		}
		r.preserve = append(r.preserve, re)
	}

	return r, errors.Join(errs...)
}

// abbreviationPattern matches an abbreviation at the very end of the
// preceding text, at a word start. Matching is case-insensitive.
func abbreviationPattern(abbr string) (*regexp.Regexp, error) {
	abbr = strings.TrimSpace(abbr)
	if abbr == "" {
		return nil, errors.New("empty abbreviation")
	}
	if !strings.HasSuffix(abbr, ".") {
		abbr += "."
	}
	return regexp.Compile(`(?i)(?:^|[^\p{L}\p{N}])` + regexp.QuoteMeta(abbr) + `$`)
}
