package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/lqa/internal/model"
)

// Renderer writes analysis runs as JSON files and console summaries
type Renderer struct {
	pretty  bool
	verbose bool
}

// NewRenderer creates a renderer. Pretty indents JSON; verbose lists
// every issue in the summary.
func NewRenderer(pretty, verbose bool) *Renderer {
	return &Renderer{pretty: pretty, verbose: verbose}
}

// RenderJSON writes run to path, creating parent directories
func (r *Renderer) RenderJSON(run *Run, path string) error {
	var (
		data []byte
		err  error
	)
	if r.pretty {
		data, err = json.MarshalIndent(run, "", "  ")
	} else {
		data, err = json.Marshal(run)
	}
	if err != nil {
		return fmt.Errorf("marshal run: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// RenderSummary prints the score, category totals and issues of run
func (r *Renderer) RenderSummary(w io.Writer, run *Run) {
	res := run.Result
	rule := strings.Repeat("═", 59)

	fmt.Fprintf(w, "\n%s\n", rule)
	if run.Source != "" {
		fmt.Fprintf(w, "  Quality Report: %s\n", run.Source)
	} else {
		fmt.Fprintf(w, "  Quality Report\n")
	}
	fmt.Fprintf(w, "%s\n\n", rule)

	fmt.Fprintf(w, "  Score:      %.2f/100\n", res.OverallScore)
	fmt.Fprintf(w, "  Words:      %d\n", res.WordCount)
	fmt.Fprintf(w, "  Mode:       %s\n", run.Mode)
	fmt.Fprintf(w, "  Model:      %s\n", run.Model)
	if run.Cached {
		fmt.Fprintf(w, "  Cache:      hit\n")
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  %-14s %6s %7s\n", "Category", "Issues", "Points")
	for _, c := range model.Categories {
		t := res.Categories[c]
		fmt.Fprintf(w, "  %-14s %6d %7d\n", c, t.Count, t.Points)
	}
	fmt.Fprintln(w)

	if len(res.Issues) == 0 {
		fmt.Fprintf(w, "✓ No issues found\n\n")
		return
	}
	fmt.Fprintf(w, "✗ %d issue(s) found\n", len(res.Issues))
	if !r.verbose {
		fmt.Fprintln(w)
		return
	}
	for _, issue := range res.Issues {
		fmt.Fprintf(w, "  [%d] %s/%s (%s)", issue.SegmentID, issue.Category, issue.Subcategory, issue.Severity)
		if issue.SegmentText != "" {
			fmt.Fprintf(w, " %q", issue.SegmentText)
		}
		fmt.Fprintln(w)
		if issue.Explanation != "" {
			fmt.Fprintf(w, "      %s\n", issue.Explanation)
		}
		if issue.Suggestion != "" {
			fmt.Fprintf(w, "      → %s\n", issue.Suggestion)
		}
	}
	fmt.Fprintln(w)
}
