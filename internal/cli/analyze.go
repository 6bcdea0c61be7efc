package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/lqa/internal/pipeline"
)

var (
	outJSON      string
	timeout      time.Duration
	sourceText   string
	targetText   string
	sourceFile   string
	targetFile   string
	sourceLang   string
	targetLang   string
	analysisMode string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Assess the quality of a free-text translation",
	Long: `Analyze splits source and target text into sentences, pairs them by
position, has every pair reviewed by the configured LLM and prints the
word-weighted MQM score.

In monolingual mode only the target text is reviewed and Accuracy is not
evaluated.

Example:
  lqa analyze --source "Hello world." --target "Bonjour le monde." --target-lang fr
  lqa analyze --source-file en.txt --target-file de.txt --source-lang en --target-lang de --json run.json
  lqa analyze --target-file copy.txt --target-lang en --mode monolingual`,
	Args: cobra.NoArgs,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	// Input flags
	analyzeCmd.Flags().StringVar(&sourceText, "source", "", "source text")
	analyzeCmd.Flags().StringVar(&targetText, "target", "", "target text")
	analyzeCmd.Flags().StringVar(&sourceFile, "source-file", "", "read source text from file")
	analyzeCmd.Flags().StringVar(&targetFile, "target-file", "", "read target text from file")
	analyzeCmd.Flags().StringVar(&sourceLang, "source-lang", "", "source language (detected when omitted)")
	analyzeCmd.Flags().StringVar(&targetLang, "target-lang", "", "target language")
	analyzeCmd.Flags().StringVar(&analysisMode, "mode", "bilingual", "analysis mode (bilingual, monolingual)")
	analyzeCmd.MarkFlagsMutuallyExclusive("source", "source-file")
	analyzeCmd.MarkFlagsMutuallyExclusive("target", "target-file")

	// Output flags
	analyzeCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	analyzeCmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "overall analysis timeout")

	addEvaluatorFlags(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	src, err := textInput(sourceText, sourceFile)
	if err != nil {
		return err
	}
	tgt, err := textInput(targetText, targetFile)
	if err != nil {
		return err
	}

	c := effectiveConfig()
	analyzer, cleanup, err := newAnalyzer(c)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if c.Output.Verbose {
		fmt.Fprintf(os.Stderr, "⚙️  Analyzing (%s, %s/%s)...\n", analysisMode, c.LLM.Provider, c.LLM.Model)
	}

	run, err := analyzer.AnalyzeText(ctx, pipeline.TextRequest{
		SourceText: src,
		TargetText: tgt,
		SourceLang: sourceLang,
		TargetLang: targetLang,
		Mode:       analysisMode,
	})
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	return report(run, outJSON, c)
}

// textInput returns the inline text or the contents of path
func textInput(text, path string) (string, error) {
	if path == "" {
		return text, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}
