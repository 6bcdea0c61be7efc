package lang

import (
	"strings"

	"golang.org/x/text/language"
)

// Code is a normalized base language code (e.g. "en", "zh").
type Code string

// String returns the code as a plain string
func (c Code) String() string {
	return string(c)
}

// aliases maps locale variants and legacy codes to their base code.
// Keys are lowercase with hyphens.
var aliases = map[string]Code{
	"zh-hans": "zh",
	"zh-hant": "zh",
	"zh-cn":   "zh",
	"zh-tw":   "zh",
	"zh-hk":   "zh",
	"zh-sg":   "zh",
	"pt-br":   "pt",
	"pt-pt":   "pt",
	"en-us":   "en",
	"en-gb":   "en",
	"es-419":  "es",
	"sr-latn": "sr",
	"sr-cyrl": "sr",
	"iw":      "he",
	"in":      "id",
	"ji":      "yi",
	"jw":      "jv",
	"no":      "nb",
	"tl":      "fil",
}

// Normalize maps any BCP-47 style code to exactly one base code.
// Lookup order: alias table, x/text base language, substring before the
// first hyphen. The empty string normalizes to the empty Code.
func Normalize(raw string) Code {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(raw), "_", "-"))
	if key == "" {
		return ""
	}
	if c, ok := aliases[key]; ok {
		return c
	}

	if tag, err := language.Parse(key); err == nil {
		if base, conf := tag.Base(); conf != language.No && base.String() != "und" {
			if c, ok := aliases[base.String()]; ok {
				return c
			}
			return Code(base.String())
		}
	}

	if i := strings.IndexByte(key, '-'); i > 0 {
		key = key[:i]
	}
	return Code(key)
}

// Same reports whether two raw codes denote the same tag, ignoring case
// and separator style.
func Same(a, b string) bool {
	canon := func(s string) string {
		return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "_", "-"))
	}
	return canon(a) == canon(b)
}
