package cmd

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"tailor/internal/retrieval"
	"tailor/internal/store"
)

var (
	flagK         int
	flagTypes     []string
	flagNoAugment bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query>...",
	Short: "Search the indexed corpus",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")

		st, err := openStore(newClient())
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		if st.Count() == 0 {
			fmt.Println("Index is empty. Run 'tailor ingest <dir>' first.")
			return nil
		}

		if !flagNoAugment {
			query = retrieval.AugmentQuery(query)
		}
		k := flagK
		if k <= 0 {
			k = cfg.TopK
		}
		results, err := st.Search(query, k, flagTypes)
		if err != nil {
			return err
		}
		if len(results) == 0 {
			fmt.Println("No results.")
			return nil
		}

		for i, r := range results {
			fmt.Printf("%d. %s (%s)  distance=%.4f\n",
				i+1,
				r.Meta.StringOr(store.KeySource, "unknown"),
				r.Meta.StringOr(store.KeyDocType, "unknown"),
				r.Distance,
			)
			fmt.Printf("   %s\n\n", snippet(r.Content, 200))
		}
		return nil
	},
}

func snippet(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) > max {
		s = string([]rune(s)[:max]) + "..."
	}
	return s
}

func init() {
	searchCmd.Flags().IntVar(&flagK, "k", 0, "number of chunks to retrieve (default from config)")
	searchCmd.Flags().StringSliceVar(&flagTypes, "type", nil, "restrict to doc types (resume, experience, book)")
	searchCmd.Flags().BoolVar(&flagNoAugment, "no-augment", false, "disable keyword query augmentation")
	rootCmd.AddCommand(searchCmd)
}
