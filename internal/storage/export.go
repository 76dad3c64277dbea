package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/parquet-go/parquet-go"
	"gopkg.in/yaml.v3"
)

// ExportRow is the flattened record written by Export
type ExportRow struct {
	Filename  string            `json:"filename" yaml:"filename" parquet:"filename"`
	Label     string            `json:"label" yaml:"label" parquet:"label"`
	Labeled   bool              `json:"labeled" yaml:"labeled" parquet:"labeled"`
	Timestamp string            `json:"timestamp" yaml:"timestamp" parquet:"timestamp"`
	Extra     map[string]string `json:"extra,omitempty" yaml:"extra,omitempty" parquet:"-"`
}

// ExportDocument is the document layout for YAML and JSON exports
type ExportDocument struct {
	Source     string      `json:"source" yaml:"source"`
	ExportedAt string      `json:"exported_at" yaml:"exportedat"`
	Records    []ExportRow `json:"records" yaml:"records"`
}

// Rows flattens the table into export rows in table order
func (t *ResultTable) Rows() []ExportRow {
	extra := t.ExtraColumns()
	records := t.Records()

	rows := make([]ExportRow, 0, len(records))
	for _, r := range records {
		row := ExportRow{
			Filename:  r.Filename,
			Label:     r.Label.String(),
			Labeled:   r.Done(),
			Timestamp: r.Timestamp,
		}
		if len(extra) > 0 {
			row.Extra = make(map[string]string, len(extra))
			for i, name := range extra {
				if i < len(r.Extra) {
					row.Extra[name] = r.Extra[i]
				}
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// Export writes the table to outputPath; the format follows the extension
// (.parquet, .yaml/.yml, .json).
func (t *ResultTable) Export(source, outputPath string) error {
	if dir := filepath.Dir(outputPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	rows := t.Rows()

	switch ext := strings.ToLower(filepath.Ext(outputPath)); ext {
	case ".parquet":
		if err := parquet.WriteFile(outputPath, rows); err != nil {
			return fmt.Errorf("failed to write parquet: %w", err)
		}
	case ".yaml", ".yml", ".json":
		doc := ExportDocument{
			Source:     source,
			ExportedAt: time.Now().Format(time.RFC3339),
			Records:    rows,
		}
		var data []byte
		var err error
		if ext == ".json" {
			data, err = json.MarshalIndent(doc, "", "  ")
		} else {
			data, err = yaml.Marshal(&doc)
		}
		if err != nil {
			return fmt.Errorf("failed to marshal %s: %w", ext, err)
		}
		if err := os.WriteFile(outputPath, data, 0o644); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
	default:
		return fmt.Errorf("unsupported export format: %s (supported: .parquet, .yaml, .yml, .json)", ext)
	}

	slog.Info("Exported result table", "source", source, "output", outputPath, "records", len(rows))
	return nil
}

// ReadParquetExport loads rows previously written by Export
func ReadParquetExport(path string) ([]ExportRow, error) {
	rows, err := parquet.ReadFile[ExportRow](path)
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet: %w", err)
	}
	return rows, nil
}
