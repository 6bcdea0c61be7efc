package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/lqa/internal/pipeline"
	"github.com/ppiankov/lqa/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	listFile     string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch [paths...]",
	Short: "Assess many TMX/XLIFF files in parallel",
	Long: `Batch analyzes several translation files concurrently:
- Read paths from the arguments and/or a list file (one per line, # comments)
- Analyze files in parallel with a configurable worker count
- Evaluator calls inside each file still run in fixed-size batches
- Write one JSON report per file to the output directory

Example:
  lqa batch a.tmx b.xlf
  lqa batch --list files.txt --concurrency 4 --output-dir ./lqa-reports`,
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of files analyzed concurrently")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./lqa-reports", "output directory for reports")
	batchCmd.Flags().StringVar(&listFile, "list", "", "file with one path per line")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 30*time.Minute, "total timeout for batch processing")

	addEvaluatorFlags(batchCmd)
}

type fileResult struct {
	Path string
	Run  *pipeline.Run
	Err  error
}

func runBatch(cmd *cobra.Command, args []string) error {
	paths, err := batchPaths(args, listFile)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no input files (pass paths or --list)")
	}

	c := effectiveConfig()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  lqa Batch Processing\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Files:        %d\n", len(paths))
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(os.Stderr, "  LLM:          %s/%s\n", c.LLM.Provider, c.LLM.Model)
	fmt.Fprintf(os.Stderr, "\n")

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	analyzer, cleanup, err := newAnalyzer(c)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "⚙️  Processing files with %d workers...\n\n", concurrency)

	pool := worker.NewPool(concurrency, func(ctx context.Context, path string) fileResult {
		buf, err := os.ReadFile(path)
		if err != nil {
			return fileResult{Path: path, Err: err}
		}
		run, err := analyzer.AnalyzeFile(ctx, filepath.Base(path), buf)
		return fileResult{Path: path, Run: run, Err: err}
	})
	results := pool.Run(ctx, paths)

	renderer := pipeline.NewRenderer(c.Output.Pretty, c.Output.Verbose)
	successCount, failureCount := 0, 0
	for _, result := range results {
		if result.Err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Path, result.Err)
			continue
		}

		jsonPath := filepath.Join(outputDir, reportName(result.Path))
		if err := renderer.RenderJSON(result.Run, jsonPath); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write JSON: %v\n", result.Path, err)
			continue
		}

		successCount++
		cached := ""
		if result.Run.Cached {
			cached = " [cached]"
		}
		fmt.Fprintf(os.Stderr, "✓ %s (score: %.2f/100, %d segments)%s\n",
			result.Path, result.Run.Result.OverallScore, len(result.Run.Pairs), cached)
	}

	// Summary
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d files\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	if failureCount > 0 {
		return fmt.Errorf("%d of %d files failed", failureCount, len(results))
	}
	return nil
}

// batchPaths merges argument paths with the list file, dropping duplicates
func batchPaths(args []string, list string) ([]string, error) {
	paths := make([]string, 0, len(args))
	seen := make(map[string]bool)
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}
	for _, arg := range args {
		add(arg)
	}
	if list != "" {
		listed, err := worker.ReadPathsFromFile(list)
		if err != nil {
			return nil, err
		}
		for _, p := range listed {
			add(p)
		}
	}
	return paths, nil
}

// reportName derives a JSON file name from an input path
func reportName(path string) string {
	base := filepath.Base(path)
	replacer := strings.NewReplacer(
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
		" ", "-",
	)
	base = replacer.Replace(base)
	if len(base) > 100 {
		base = base[:100]
	}
	return base + ".json"
}
