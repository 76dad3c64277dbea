package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/lehigh-university-libraries/clicklabel/internal/models"
)

// Formats accepted by Write
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// Write renders summary to w in the requested format
func Write(w io.Writer, summary models.Summary, format string) error {
	switch format {
	case FormatText, "":
		return writeText(w, summary)
	case FormatJSON:
		return writeJSON(w, summary)
	case FormatCSV:
		return writeCSV(w, summary)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// sortedLabels returns label names ordered by count, then name
func sortedLabels(counts map[string]int) []string {
	labels := make([]string, 0, len(counts))
	for l := range counts {
		labels = append(labels, l)
	}
	sort.Slice(labels, func(i, j int) bool {
		if counts[labels[i]] != counts[labels[j]] {
			return counts[labels[i]] > counts[labels[j]]
		}
		return labels[i] < labels[j]
	})
	return labels
}

func percent(n, total int) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(n)*100/float64(total))
}

func writeText(w io.Writer, s models.Summary) error {
	fmt.Fprintf(w, "Result file: %s\n", s.ResultPath)
	if s.FirstLabeled != "" {
		fmt.Fprintf(w, "Labeled between %s and %s\n", s.FirstLabeled, s.LastLabeled)
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Label", "Images", "Share"})
	for _, l := range sortedLabels(s.Counts) {
		tw.AppendRow(table.Row{l, s.Counts[l], percent(s.Counts[l], s.Total)})
	}
	tw.AppendRow(table.Row{models.NoneSentinel, s.Unlabeled, percent(s.Unlabeled, s.Total)})
	tw.AppendFooter(table.Row{"Total", s.Total, ""})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})
	tw.Render()
	return nil
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func writeCSV(w io.Writer, s models.Summary) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"label", "count"}); err != nil {
		return err
	}
	for _, l := range sortedLabels(s.Counts) {
		if err := writer.Write([]string{l, strconv.Itoa(s.Counts[l])}); err != nil {
			return err
		}
	}
	if err := writer.Write([]string{models.NoneSentinel, strconv.Itoa(s.Unlabeled)}); err != nil {
		return err
	}

	writer.Flush()
	return writer.Error()
}
