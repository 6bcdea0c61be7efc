package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
)

var fileTimeout time.Duration

// fileCmd represents the file command
var fileCmd = &cobra.Command{
	Use:   "file <path>",
	Short: "Assess the quality of a TMX or XLIFF file",
	Long: `File reads a translation memory (.tmx) or XLIFF file (.xlf, .xliff,
.sdlxliff, .mqxliff) and reviews every translation unit as one segment.
Units are never re-segmented.

Example:
  lqa file memory.tmx
  lqa file strings.xlf --json strings.json --llm-provider anthropic`,
	Args: cobra.ExactArgs(1),
	RunE: runFile,
}

func init() {
	rootCmd.AddCommand(fileCmd)

	fileCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	fileCmd.Flags().DurationVar(&fileTimeout, "timeout", 10*time.Minute, "overall analysis timeout")

	addEvaluatorFlags(fileCmd)
}

func runFile(cmd *cobra.Command, args []string) error {
	path := args[0]
	buf, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	c := effectiveConfig()
	analyzer, cleanup, err := newAnalyzer(c)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), fileTimeout)
	defer cancel()

	if c.Output.Verbose {
		fmt.Fprintf(os.Stderr, "⚙️  Analyzing %s...\n", path)
	}

	run, err := analyzer.AnalyzeFile(ctx, filepath.Base(path), buf)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	return report(run, outJSON, c)
}
