package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"tailor/internal/generation"
	"tailor/internal/retrieval"
)

var (
	flagJob     string
	flagOutput  string
	flagTitle   string
	flagOut     string
	flagName    string
	flagEmail   string
	flagPhone   string
	flagAddress string
	flagManager string
	flagOrg     string
)

var tailorCmd = &cobra.Command{
	Use:   "tailor",
	Short: "Generate a tailored resume or cover letter for a job posting",
	RunE: func(cmd *cobra.Command, args []string) error {
		jobDescription, err := readJob(flagJob)
		if err != nil {
			return err
		}

		client := newClient()
		st, err := openStore(client)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		if st.Count() == 0 {
			return fmt.Errorf("index is empty — run 'tailor ingest <dir>' first")
		}

		context, previews, err := retrieval.Context(st, jobDescription, cfg.TopK, flagTypes, !flagNoAugment)
		if err != nil {
			return fmt.Errorf("retrieve context: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Retrieved %d chunks. Generating %s...\n", len(previews), flagOutput)

		result, err := generation.Tailor(client, cfg.ChatModel, context, generation.Request{
			Output:         generation.OutputType(flagOutput),
			JobDescription: jobDescription,
			JobTitle:       flagTitle,
			Me: generation.Contact{
				Name:    flagName,
				Email:   flagEmail,
				Phone:   flagPhone,
				Address: flagAddress,
			},
			To: generation.Recipient{
				HiringManager: flagManager,
				Organization:  flagOrg,
			},
		})
		if err != nil {
			return err
		}

		if flagOut != "" {
			if err := os.WriteFile(flagOut, []byte(result), 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(os.Stderr, "Saved to %s\n", flagOut)
			return nil
		}
		fmt.Println(result)
		return nil
	},
}

// readJob loads the job description from a file, or stdin when path is "-".
func readJob(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("--job is required (file path, or '-' for stdin)")
	}
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read job description: %w", err)
	}
	return string(data), nil
}

func init() {
	tailorCmd.Flags().StringVar(&flagJob, "job", "", "job description file ('-' for stdin)")
	tailorCmd.Flags().StringVar(&flagOutput, "output", string(generation.OutputResume), "output type: resume or cover-letter")
	tailorCmd.Flags().StringVar(&flagTitle, "title", "", "job title")
	tailorCmd.Flags().StringVar(&flagOut, "out", "", "write result to file instead of stdout")
	tailorCmd.Flags().StringVar(&flagName, "name", "", "your name")
	tailorCmd.Flags().StringVar(&flagEmail, "email", "", "your email")
	tailorCmd.Flags().StringVar(&flagPhone, "phone", "", "your phone")
	tailorCmd.Flags().StringVar(&flagAddress, "address", "", "your address")
	tailorCmd.Flags().StringVar(&flagManager, "manager", "", "hiring manager name (cover letters)")
	tailorCmd.Flags().StringVar(&flagOrg, "org", "", "organization or office (cover letters)")
	tailorCmd.Flags().StringSliceVar(&flagTypes, "type", nil, "restrict retrieval to doc types")
	tailorCmd.Flags().BoolVar(&flagNoAugment, "no-augment", false, "disable keyword query augmentation")
	rootCmd.AddCommand(tailorCmd)
}
