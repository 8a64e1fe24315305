package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"tailor/internal/ingest"
	"tailor/internal/store"
)

var flagBatch int

var ingestCmd = &cobra.Command{
	Use:   "ingest <dir>",
	Short: "Index a corpus directory (resumes/, experiences/, books/)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := filepath.Abs(args[0])
		if err != nil {
			return err
		}

		logger := newLogger()
		defer logger.Sync()

		st, err := openStore(newClient())
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		fmt.Printf("Ingesting %s...\n", root)
		start := time.Now()

		stats, err := ingest.Run(root, st, ingest.Options{
			ChunkSize:    cfg.ChunkSize,
			ChunkOverlap: cfg.ChunkOverlap,
			BatchSize:    flagBatch,
		}, logger)
		if err != nil {
			return err
		}

		fmt.Printf("\nDone in %s\n", time.Since(start).Round(time.Millisecond))
		fmt.Printf("  Files:   %d loaded, %d skipped\n", stats.FilesLoaded, stats.FilesSkipped)
		fmt.Printf("  Chunks:  %d added (%d total)\n", stats.Chunks, st.Count())
		return nil
	},
}

func init() {
	ingestCmd.Flags().IntVar(&flagBatch, "batch", store.DefaultBatchSize, "embedding request batch size")
	rootCmd.AddCommand(ingestCmd)
}
