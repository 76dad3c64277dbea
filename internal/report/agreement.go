package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/lehigh-university-libraries/clicklabel/internal/agreement"
)

// WriteAgreement renders a comparison of two result files
func WriteAgreement(w io.Writer, res *agreement.Results, format string) error {
	switch format {
	case FormatText, "":
		return writeAgreementText(w, res)
	case FormatJSON:
		return writeJSON(w, res)
	case FormatCSV:
		return writeDisagreementsCSV(w, res)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func writeAgreementText(w io.Writer, res *agreement.Results) error {
	fmt.Fprintf(w, "A: %s\nB: %s\n", res.SourceA, res.SourceB)
	fmt.Fprintf(w, "Compared %d images (%d only in A, %d only in B)\n", res.Compared, res.OnlyA, res.OnlyB)
	fmt.Fprintf(w, "Agreement: %s (%d/%d)  Cohen's kappa: %.3f\n\n",
		percent(res.Agreements, res.Compared), res.Agreements, res.Compared, res.Kappa)

	if res.Compared == 0 {
		return nil
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	tw.SetTitle("A (rows) vs B (columns)")

	header := table.Row{""}
	for _, c := range res.Categories {
		header = append(header, c)
	}
	tw.AppendHeader(header)

	configs := make([]table.ColumnConfig, 0, len(res.Categories))
	for i, a := range res.Categories {
		row := table.Row{a}
		for _, b := range res.Categories {
			row = append(row, res.Confusion[a][b])
		}
		tw.AppendRow(row)
		configs = append(configs, table.ColumnConfig{Number: i + 2, Align: text.AlignRight})
	}
	tw.SetColumnConfigs(configs)
	tw.Render()

	if len(res.Disagreements) > 0 {
		fmt.Fprintf(w, "\n%d disagreements, use --format csv to list them\n", len(res.Disagreements))
	}
	return nil
}

func writeDisagreementsCSV(w io.Writer, res *agreement.Results) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"filename", "a", "b"}); err != nil {
		return err
	}
	for _, d := range res.Disagreements {
		if err := writer.Write([]string{d.Filename, d.A, d.B}); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

