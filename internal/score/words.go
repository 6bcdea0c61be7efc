package score

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

var reTag = regexp.MustCompile(`(?s)<!--.*?-->|</?[A-Za-z][^<>]*>`)

// WordCount counts words in segment text. Markup is stripped first and
// entities are decoded. Han, Hiragana and Katakana characters count as one
// word each; elsewhere a word is a whitespace-separated run containing at
// least one letter or digit.
func WordCount(text string) int {
	count := 0
	for _, field := range strings.Fields(stripMarkup(text)) {
		count += countField(field)
	}
	return count
}

func countField(field string) int {
	count := 0
	inWord := false
	for _, r := range field {
		if isIdeographic(r) {
			if inWord {
				count++
				inWord = false
			}
			count++
			continue
		}
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			inWord = true
		}
	}
	if inWord {
		count++
	}
	return count
}

func isIdeographic(r rune) bool {
	return unicode.Is(unicode.Han, r) || unicode.Is(unicode.Hiragana, r) || unicode.Is(unicode.Katakana, r)
}

// stripMarkup replaces complete tags with a space, so "a<br>b" counts as two
// words, and decodes entities. A "<" that never closes is left as text.
func stripMarkup(text string) string {
	if !strings.ContainsAny(text, "<&") {
		return text
	}
	return html.UnescapeString(reTag.ReplaceAllString(text, " "))
}
