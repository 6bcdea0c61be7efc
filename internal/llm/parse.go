package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ppiankov/lqa/internal/model"
)

// ErrInvalidResponse marks model output that holds no usable JSON evaluation
var ErrInvalidResponse = errors.New("invalid evaluation response")

type rawEvaluation struct {
	Score  *float64   `json:"score"`
	Issues []rawIssue `json:"issues"`
}

type rawIssue struct {
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
	Severity    any    `json:"severity"`
	Explanation string `json:"explanation"`
	Segment     string `json:"segment"`
	Suggestion  string `json:"suggestion"`
	StartIndex  any    `json:"startIndex"`
	EndIndex    any    `json:"endIndex"`
}

// ParseEvaluation extracts an evaluation from raw model output. The JSON
// object may be wrapped in prose or code fences; everything from the first
// '{' to the last '}' is decoded.
//
// Severities may be names or point values; unknown severities count as
// Minor. Offsets are clamped to the reviewed text. A missing score is derived
// as 100 minus the issue points, floored at zero.
func ParseEvaluation(raw string, pair model.SegmentPair, mode model.Mode) (model.SegmentEvaluation, error) {
	start := strings.IndexByte(raw, '{')
	end := strings.LastIndexByte(raw, '}')
	if start < 0 || end < start {
		return model.SegmentEvaluation{}, fmt.Errorf("%w: no JSON object in output", ErrInvalidResponse)
	}

	var parsed rawEvaluation
	if err := json.Unmarshal([]byte(raw[start:end+1]), &parsed); err != nil {
		return model.SegmentEvaluation{}, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	reviewed := []rune(reviewedText(pair, mode))
	eval := model.SegmentEvaluation{
		Pair:   pair,
		Issues: make([]model.Issue, 0, len(parsed.Issues)),
	}

	points := 0
	for _, ri := range parsed.Issues {
		issue := model.Issue{
			SegmentID:   pair.ID,
			Category:    model.CanonicalCategory(ri.Category),
			Subcategory: strings.TrimSpace(ri.Subcategory),
			Severity:    severityOf(ri.Severity),
			Explanation: strings.TrimSpace(ri.Explanation),
			SegmentText: ri.Segment,
			Suggestion:  ri.Suggestion,
		}
		issue.StartIndex, issue.EndIndex = clampSpan(intOf(ri.StartIndex), intOf(ri.EndIndex), len(reviewed))
		if issue.SegmentText == "" && issue.EndIndex > issue.StartIndex {
			issue.SegmentText = string(reviewed[issue.StartIndex:issue.EndIndex])
		}

		points += issue.Severity.Points()
		eval.Issues = append(eval.Issues, issue)
	}

	if parsed.Score != nil {
		eval.Score = math.Max(0, math.Min(100, *parsed.Score))
	} else {
		eval.Score = math.Max(0, float64(100-points))
	}
	return eval, nil
}

// reviewedText is the side the issue offsets refer to
func reviewedText(pair model.SegmentPair, mode model.Mode) string {
	if pair.Target == "" && mode == model.ModeMonolingual {
		return pair.Source
	}
	return pair.Target
}

func severityOf(v any) model.Severity {
	var text string
	switch s := v.(type) {
	case string:
		text = s
	case float64:
		text = strconv.Itoa(int(s))
	}
	sev, err := model.ParseSeverity(text)
	if err != nil {
		return model.SeverityMinor
	}
	return sev
}

func intOf(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case string:
		i, _ := strconv.Atoi(strings.TrimSpace(n))
		return i
	default:
		return 0
	}
}

func clampSpan(start, end, length int) (int, int) {
	start = min(max(start, 0), length)
	end = min(max(end, start), length)
	return start, end
}
