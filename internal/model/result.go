package model

// CategoryTotal sums issues of one category
type CategoryTotal struct {
	Count  int `json:"count"`
	Points int `json:"points"`
}

// AggregateResult is the document-level outcome of an analysis.
// It is derived from segment evaluations and never mutated after creation.
type AggregateResult struct {
	OverallScore float64                    `json:"overallScore"` // 0..100, word-count weighted
	WordCount    int                        `json:"wordCount"`
	Categories   map[Category]CategoryTotal `json:"categories"`
	Issues       []Issue                    `json:"issues"` // segment order; offsets are segment-local
}

// SegmentEvaluation is what the external evaluator returns for one pair
type SegmentEvaluation struct {
	Pair   SegmentPair `json:"pair"`
	Score  float64     `json:"score"`
	Issues []Issue     `json:"issues"`
}
