package segment

import (
	"regexp"
	"strconv"
	"strings"
)

// Placeholder tokens are built from private-use code points so they never
// contain whitespace or sentence punctuation.
const (
	tokenOpen  = "\uE000"
	tokenClose = "\uE001"
)

var (
	reToken = regexp.MustCompile(tokenOpen + `([0-9]+)` + tokenClose)
	// token-shaped text already present in the input is protected itself
	reLiteralToken = regexp.MustCompile(tokenOpen + `[0-9]*` + tokenClose)
)

// protected is text with preserved spans swapped for placeholder tokens.
type protected struct {
	text      string
	originals []string
}

// protect scans text left to right and replaces every preserve-pattern
// match with a numbered token. When several patterns match, the earliest
// start wins; ties go to the pattern listed first.
func protect(text string, patterns []*regexp.Regexp) protected {
	if len(patterns) == 0 || text == "" {
		return protected{text: text}
	}
	if strings.Contains(text, tokenOpen) {
		patterns = append([]*regexp.Regexp{reLiteralToken}, patterns...)
	}

	type next struct {
		start, end int
	}
	// cached next match per pattern, absolute offsets; start < 0 means none left
	matches := make([]next, len(patterns))
	find := func(i, from int) {
		loc := patterns[i].FindStringIndex(text[from:])
		if loc == nil || loc[1] == loc[0] {
			matches[i] = next{start: -1}
			return
		}
		matches[i] = next{start: from + loc[0], end: from + loc[1]}
	}
	for i := range patterns {
		find(i, 0)
	}

	var b strings.Builder
	var originals []string
	pos := 0
	for {
		best := -1
		for i, m := range matches {
			if m.start < 0 {
				continue
			}
			if m.start < pos {
				find(i, pos)
				m = matches[i]
				if m.start < 0 {
					continue
				}
			}
			if best < 0 || m.start < matches[best].start {
				best = i
			}
		}
		if best < 0 {
			break
		}

		m := matches[best]
		b.WriteString(text[pos:m.start])
		b.WriteString(tokenOpen)
		b.WriteString(strconv.Itoa(len(originals)))
		b.WriteString(tokenClose)
		originals = append(originals, text[m.start:m.end])
		pos = m.end
	}
	b.WriteString(text[pos:])

	return protected{text: b.String(), originals: originals}
}

// restore puts the original content back in place of every token.
// Unknown indices are left untouched.
func (p protected) restore(s string) string {
	if len(p.originals) == 0 {
		return s
	}
	return reToken.ReplaceAllStringFunc(s, func(tok string) string {
		sub := reToken.FindStringSubmatch(tok)
		idx, err := strconv.Atoi(sub[1])
		if err != nil || idx < 0 || idx >= len(p.originals) {
			return tok
		}
		return p.originals[idx]
	})
}
