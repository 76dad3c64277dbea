package cmd

import (
	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/clicklabel/internal/report"
	"github.com/lehigh-university-libraries/clicklabel/internal/storage"
)

func newStatusCmd() *cobra.Command {
	var src resultSource
	var format string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Summarize labels in a result file",
		Example: `  # Label counts as a table
  clicklabel status --result-path labels/df.csv

  # Machine readable
  clicklabel status --result-path labels/df.csv --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := src.path()
			if err != nil {
				return err
			}

			table, err := storage.Load(path)
			if err != nil {
				return err
			}

			summary := table.Summarize()
			summary.ResultPath = path
			return report.Write(cmd.OutOrStdout(), summary, format)
		},
	}

	src.bind(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", report.FormatText, "Output format (text, json, csv)")

	return cmd
}
