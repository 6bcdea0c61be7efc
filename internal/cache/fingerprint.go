package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/ppiankov/lqa/internal/lang"
	"github.com/ppiankov/lqa/internal/model"
)

const keyPrefix = "lqa:v1:"

// Fingerprint identifies one requested analysis. Two requests with equal
// fingerprints are the same analysis. Nil source fields mean the request
// had no source side.
type Fingerprint struct {
	SourceText *string    `json:"source_text"`
	TargetText string     `json:"target_text"`
	SourceLang *lang.Code `json:"source_lang"`
	TargetLang lang.Code  `json:"target_lang"`
	Mode       model.Mode `json:"mode"`
	ModelID    string     `json:"model_id"`

	// PairLangs lists "source>target" per pair when pairs disagree on languages
	PairLangs []string `json:"pair_langs,omitempty"`
}

// NewFingerprint normalizes the request fields. Texts are NFC-normalized and
// have whitespace runs (including line breaks) collapsed to one space, so
// resubmitting the same content with different incidental whitespace gives
// the same fingerprint. Empty source text or language becomes nil.
func NewFingerprint(sourceText, targetText, sourceLang, targetLang string, mode model.Mode, modelID string) Fingerprint {
	if mode == "" {
		mode = model.ModeBilingual
	}
	fp := Fingerprint{
		TargetText: NormalizeText(targetText),
		TargetLang: lang.Normalize(targetLang),
		Mode:       mode,
		ModelID:    strings.TrimSpace(modelID),
	}
	if s := NormalizeText(sourceText); s != "" {
		fp.SourceText = &s
	}
	if c := lang.Normalize(sourceLang); c != "" {
		fp.SourceLang = &c
	}
	return fp
}

// PairsFingerprint fingerprints an analysis of pre-aligned pairs. Sources and
// targets are joined in pair order. Languages come from the first pair; if
// any later pair has different languages, every pair's languages are recorded.
func PairsFingerprint(pairs []model.SegmentPair, mode model.Mode, modelID string) Fingerprint {
	sources := make([]string, len(pairs))
	targets := make([]string, len(pairs))
	langs := make([]string, len(pairs))
	mixed := false
	var sourceLang, targetLang string
	for i, p := range pairs {
		sources[i] = p.Source
		targets[i] = p.Target
		langs[i] = string(lang.Normalize(string(p.SourceLang))) + ">" + string(lang.Normalize(string(p.TargetLang)))
		if langs[i] != langs[0] {
			mixed = true
		}
	}
	if len(pairs) > 0 {
		sourceLang, targetLang = string(pairs[0].SourceLang), string(pairs[0].TargetLang)
	}
	// the separator survives NormalizeText, so unit boundaries stay significant
	fp := NewFingerprint(strings.Join(sources, " ␞ "), strings.Join(targets, " ␞ "), sourceLang, targetLang, mode, modelID)
	if mixed {
		fp.PairLangs = langs
	}
	return fp
}

// NormalizeText applies NFC and collapses whitespace runs to a single space
func NormalizeText(text string) string {
	return strings.Join(strings.Fields(norm.NFC.String(text)), " ")
}

// Key returns the cache key for the fingerprint
func (f Fingerprint) Key() string {
	// struct fields marshal in declaration order, so the encoding is canonical
	data, _ := json.Marshal(f)
	hash := sha256.Sum256(data)
	return keyPrefix + hex.EncodeToString(hash[:])
}
