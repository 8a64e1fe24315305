package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show index location and chunk count",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(newClient())
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		fmt.Printf("Collection:  %s\n", cfg.Collection)
		fmt.Printf("Data dir:    %s\n", cfg.DataDir)
		fmt.Printf("Chunks:      %d\n", st.Count())
		if dim := st.Dimension(); dim > 0 {
			fmt.Printf("Dimensions:  %d\n", dim)
		}
		return nil
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the indexed collection",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(newClient())
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		n := st.Count()
		if err := st.Clear(); err != nil {
			return err
		}
		fmt.Printf("Cleared %d chunks from %q.\n", n, cfg.Collection)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(clearCmd)
}
