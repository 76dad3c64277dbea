package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/lehigh-university-libraries/clicklabel/internal/models"
	"gopkg.in/yaml.v3"
)

func sampleTable() *ResultTable {
	table := New()
	table.extra = []string{"notes"}
	table.Set("d/a.png", models.Labeled("cat"), "2024-01-01 00:00:00")
	table.Set("d/b.png", models.Unlabeled(), "2024-01-02 00:00:00")
	table.records[0].Extra[0] = "fluffy"
	return table
}

func TestRows(t *testing.T) {
	rows := sampleTable().Rows()
	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}
	if rows[0].Label != "cat" || !rows[0].Labeled || rows[0].Extra["notes"] != "fluffy" {
		t.Errorf("Unexpected first row %+v", rows[0])
	}
	if rows[1].Label != "None" || rows[1].Labeled {
		t.Errorf("Unexpected second row %+v", rows[1])
	}
}

func TestExportParquet(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out", "labels.parquet")
	if err := sampleTable().Export("df.csv", out); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	rows, err := ReadParquetExport(out)
	if err != nil {
		t.Fatalf("ReadParquetExport failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}
	if rows[0].Filename != "d/a.png" || rows[0].Label != "cat" || !rows[0].Labeled {
		t.Errorf("Unexpected first row %+v", rows[0])
	}
	if rows[1].Timestamp != "2024-01-02 00:00:00" {
		t.Errorf("Unexpected timestamp %s", rows[1].Timestamp)
	}
}

func TestExportYAMLAndJSON(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "labels.yaml")
	if err := sampleTable().Export("df.csv", yamlPath); err != nil {
		t.Fatalf("Export yaml failed: %v", err)
	}
	data, err := os.ReadFile(yamlPath)
	if err != nil {
		t.Fatal(err)
	}
	var fromYAML ExportDocument
	if err := yaml.Unmarshal(data, &fromYAML); err != nil {
		t.Fatalf("Invalid yaml: %v", err)
	}
	if fromYAML.Source != "df.csv" || len(fromYAML.Records) != 2 {
		t.Errorf("Unexpected yaml export %+v", fromYAML)
	}

	jsonPath := filepath.Join(dir, "labels.json")
	if err := sampleTable().Export("df.csv", jsonPath); err != nil {
		t.Fatalf("Export json failed: %v", err)
	}
	data, err = os.ReadFile(jsonPath)
	if err != nil {
		t.Fatal(err)
	}
	var fromJSON ExportDocument
	if err := json.Unmarshal(data, &fromJSON); err != nil {
		t.Fatalf("Invalid json: %v", err)
	}
	if len(fromJSON.Records) != 2 || fromJSON.Records[0].Extra["notes"] != "fluffy" {
		t.Errorf("Unexpected json export %+v", fromJSON)
	}
}

func TestExportUnsupported(t *testing.T) {
	if err := sampleTable().Export("df.csv", filepath.Join(t.TempDir(), "labels.xlsx")); err == nil {
		t.Error("Expected error for unsupported format")
	}
}
