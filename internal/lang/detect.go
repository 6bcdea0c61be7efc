package lang

import (
	"strings"
	"sync"

	lingua "github.com/pemistahl/lingua-go"
)

// Detector guesses the language of a text block.
type Detector interface {
	Detect(text string) (Code, bool)
}

// LinguaDetector wraps lingua-go. Language models are loaded lazily on the
// first call because building the detector is expensive.
type LinguaDetector struct {
	once     sync.Once
	detector lingua.LanguageDetector
}

// NewLinguaDetector creates a detector over all languages lingua supports
func NewLinguaDetector() *LinguaDetector {
	return &LinguaDetector{}
}

// Detect returns the normalized code of the most likely language
func (d *LinguaDetector) Detect(text string) (Code, bool) {
	if strings.TrimSpace(text) == "" {
		return "", false
	}
	d.once.Do(func() {
		d.detector = lingua.NewLanguageDetectorBuilder().
			FromAllLanguages().
			Build()
	})

	language, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return "", false
	}
	return Normalize(language.IsoCode639_1().String()), true
}
