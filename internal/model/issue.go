package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Severity is an MQM severity. Its numeric value is the point deduction.
type Severity int

const (
	SeverityMinor    Severity = 1
	SeverityMajor    Severity = 5
	SeverityCritical Severity = 10
)

// Points returns the fixed point value of the severity
func (s Severity) Points() int {
	return int(s)
}

func (s Severity) String() string {
	switch s {
	case SeverityMinor:
		return "Minor"
	case SeverityMajor:
		return "Major"
	case SeverityCritical:
		return "Critical"
	default:
		return "Severity(" + strconv.Itoa(int(s)) + ")"
	}
}

// ParseSeverity accepts severity names (any case) or their point values
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "minor", "1":
		return SeverityMinor, nil
	case "major", "5":
		return SeverityMajor, nil
	case "critical", "10":
		return SeverityCritical, nil
	default:
		return 0, fmt.Errorf("unknown severity %q", s)
	}
}

// MarshalJSON encodes the severity by name
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts a name or a number
func (s *Severity) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var text string
	switch v := raw.(type) {
	case string:
		text = v
	case float64:
		text = strconv.Itoa(int(v))
	default:
		return fmt.Errorf("invalid severity %s", string(data))
	}
	parsed, err := ParseSeverity(text)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Category is one of the fixed MQM error dimensions
type Category string

const (
	CategoryAccuracy    Category = "Accuracy"
	CategoryFluency     Category = "Fluency"
	CategoryTerminology Category = "Terminology"
	CategoryStyle       Category = "Style"
	CategoryDesign      Category = "Design"
)

// Categories lists the fixed categories in report order
var Categories = []Category{
	CategoryAccuracy,
	CategoryFluency,
	CategoryTerminology,
	CategoryStyle,
	CategoryDesign,
}

// CanonicalCategory maps a category name to its fixed spelling, case-insensitively.
// Unknown names are returned trimmed and unchanged.
func CanonicalCategory(name string) Category {
	name = strings.TrimSpace(name)
	for _, c := range Categories {
		if strings.EqualFold(name, string(c)) {
			return c
		}
	}
	return Category(name)
}

// Issue is a single finding reported for one segment pair.
// SegmentText, StartIndex and EndIndex are local to that segment, not to
// the whole document.
type Issue struct {
	SegmentID   int      `json:"segment_id"`
	Category    Category `json:"category"`
	Subcategory string   `json:"subcategory,omitempty"`
	Severity    Severity `json:"severity"`
	Explanation string   `json:"explanation,omitempty"`
	SegmentText string   `json:"segment"`
	Suggestion  string   `json:"suggestion,omitempty"`
	StartIndex  int      `json:"startIndex"`
	EndIndex    int      `json:"endIndex"`
}
