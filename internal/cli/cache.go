package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/lqa/internal/model"
)

// cacheCmd represents the cache command
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the analysis cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached analysis",
	Long: `Clear drops all stored analyses from the configured cache backend
(memory, disk, sqlite or layered). The next analysis of any input calls the
LLM again.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cc := cfg.Cache
		cc.Enabled = true
		if err := clearCache(cc); err != nil {
			return err
		}
		fmt.Printf("✓ Cleared %s cache\n", cc.Backend)
		return nil
	},
}

func clearCache(cc model.CacheConfig) error {
	analysisCache, closeCache, err := openAnalysisCache(cc)
	if err != nil {
		return err
	}
	defer closeCache()

	if err := analysisCache.Clear(); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}
