package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/clicklabel/internal/config"
	"github.com/lehigh-university-libraries/clicklabel/internal/storage"
)

// resultSource resolves which result file an offline command reads
type resultSource struct {
	configPath string
	resultPath string
}

func (s *resultSource) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.configPath, "config", "", "Config file to take result_path from")
	cmd.Flags().StringVar(&s.resultPath, "result-path", "", "Result CSV file (default "+config.DefaultResultPath+")")
}

func (s *resultSource) path() (string, error) {
	if s.resultPath != "" {
		return s.resultPath, nil
	}
	cfg, err := config.Load(s.configPath)
	if err != nil {
		return "", err
	}
	if cfg.ResultPath == "" {
		return "", fmt.Errorf("no result path configured")
	}
	return cfg.ResultPath, nil
}

func newExportCmd() *cobra.Command {
	var src resultSource
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a result file to parquet, YAML or JSON",
		Long: `Reads a result CSV and writes it in another format. The format is chosen
from the output file extension: .parquet, .yaml/.yml or .json.`,
		Example: `  clicklabel export --result-path labels/df.csv --output labels/df.parquet
  clicklabel export --config labeling.yaml --output labels.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := src.path()
			if err != nil {
				return err
			}

			table, err := storage.Load(path)
			if err != nil {
				return err
			}

			if err := table.Export(path, output); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d records to %s\n", table.Len(), output)
			return nil
		},
	}

	src.bind(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (.parquet, .yaml, .yml, .json)")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}
