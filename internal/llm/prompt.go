package llm

import (
	"fmt"
	"strings"

	"github.com/ppiankov/lqa/internal/lang"
	"github.com/ppiankov/lqa/internal/model"
)

// SystemPrompt frames every evaluation call
const SystemPrompt = "You are a professional translation quality reviewer applying the MQM (Multidimensional Quality Metrics) framework. You answer with a single JSON object and nothing else."

// BuildPrompt constructs the default evaluation prompt for one pair
func BuildPrompt(pair model.SegmentPair, mode model.Mode) string {
	var b strings.Builder

	if mode == model.ModeMonolingual {
		text, code := pair.Target, pair.TargetLang
		if text == "" {
			text, code = pair.Source, pair.SourceLang
		}
		fmt.Fprintf(&b, "Review the following %s text for quality. No source text is available, so do not report Accuracy issues.\n\n", languageName(code))
		fmt.Fprintf(&b, "Text:\n%s\n\n", text)
		b.WriteString("Allowed categories: Fluency, Terminology, Style, Design.\n")
	} else {
		fmt.Fprintf(&b, "Review the translation from %s into %s.\n\n", languageName(pair.SourceLang), languageName(pair.TargetLang))
		fmt.Fprintf(&b, "Source:\n%s\n\nTranslation:\n%s\n\n", pair.Source, pair.Target)
		b.WriteString("Allowed categories: Accuracy, Fluency, Terminology, Style, Design.\n")
	}

	b.WriteString(`Severity is one of Minor, Major, Critical.
Markup, placeholders and code spans are not translatable; only flag them if they were altered.
startIndex and endIndex are character offsets of the flagged span within the reviewed text (end exclusive).

Respond with JSON in exactly this shape:
{
  "score": <number 0-100, 100 means no issues>,
  "issues": [
    {
      "category": "<category>",
      "subcategory": "<short subcategory>",
      "severity": "<Minor|Major|Critical>",
      "explanation": "<why this is an issue>",
      "segment": "<the flagged text, copied exactly>",
      "suggestion": "<corrected text>",
      "startIndex": <int>,
      "endIndex": <int>
    }
  ]
}
Return "issues": [] when the text has no problems.`)

	return b.String()
}

func languageName(code lang.Code) string {
	if code != "" {
		return code.String()
	}
	return "an unspecified language"
}
