package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/clicklabel/internal/agreement"
	"github.com/lehigh-university-libraries/clicklabel/internal/report"
	"github.com/lehigh-university-libraries/clicklabel/internal/storage"
)

func newCompareCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "compare <result-a.csv> <result-b.csv>",
		Short: "Measure agreement between two result files",
		Long: `Compares two result files labeled over the same images, for example by two
people, and reports the agreement rate, Cohen's kappa and a confusion table.
Images are matched by filename; unlabeled images count as their own category.`,
		Example: `  clicklabel compare labels/alice.csv labels/bob.csv
  clicklabel compare labels/alice.csv labels/bob.csv --format csv > disagreements.csv`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := storage.Load(args[0])
			if err != nil {
				return fmt.Errorf("failed to load %s: %w", args[0], err)
			}
			b, err := storage.Load(args[1])
			if err != nil {
				return fmt.Errorf("failed to load %s: %w", args[1], err)
			}

			res := agreement.Compare(a, b)
			res.SourceA, res.SourceB = args[0], args[1]
			return report.WriteAgreement(cmd.OutOrStdout(), res, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", report.FormatText, "Output format (text, json, csv)")

	return cmd
}
