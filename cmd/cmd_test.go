package cmd

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

const sampleCSV = "filename,label,timestamp\n" +
	"data/a.png,Cat meme,2024-01-01 10:00:00\n" +
	"data/b.png,None,2024-01-01 10:00:00\n" +
	"data/c.png,Dog meme,2024-01-02 09:00:00\n"

func writeResult(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "df.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestStatusCommand(t *testing.T) {
	path := writeResult(t)

	out, err := execute(t, "status", "--result-path", path, "--format", "csv")
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	expected := "label,count\nCat meme,1\nDog meme,1\nNone,1\n"
	if out != expected {
		t.Errorf("Expected %q, got %q", expected, out)
	}
}

func TestStatusCommandFromConfig(t *testing.T) {
	path := writeResult(t)
	cfgPath := filepath.Join(t.TempDir(), "labeling.yaml")
	if err := os.WriteFile(cfgPath, []byte("result_path: "+path+"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "status", "--config", cfgPath, "-f", "json")
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	var summary struct {
		ResultPath string `json:"result_path"`
		Total      int    `json:"total"`
	}
	if err := json.Unmarshal([]byte(out), &summary); err != nil {
		t.Fatalf("Expected JSON output: %v\n%s", err, out)
	}
	if summary.ResultPath != path || summary.Total != 3 {
		t.Errorf("Unexpected summary %+v", summary)
	}
}

func TestStatusCommandMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "df.csv")
	if err := os.WriteFile(path, []byte("filename,label\na,b\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "status", "--result-path", path); err == nil {
		t.Error("Expected error for a result file without timestamps")
	}
}

func TestExportCommand(t *testing.T) {
	path := writeResult(t)
	output := filepath.Join(t.TempDir(), "labels.json")

	out, err := execute(t, "export", "--result-path", path, "-o", output)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if !strings.Contains(out, "Exported 3 records") {
		t.Errorf("Unexpected output %q", out)
	}
	if _, err := os.Stat(output); err != nil {
		t.Errorf("Expected export file: %v", err)
	}

	if _, err := execute(t, "export", "--result-path", path); err == nil {
		t.Error("Expected error without --output")
	}
}

func TestConfigFlagsResolve(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "labeling.toml")
	toml := "data_dir = \"photos\"\nrows = 3\nlabels = [\"keep\", \"drop\"]\n"
	if err := os.WriteFile(cfgPath, []byte(toml), 0644); err != nil {
		t.Fatal(err)
	}

	var flags configFlags
	cmd := &cobra.Command{Use: "test"}
	flags.bind(cmd)
	if err := cmd.ParseFlags([]string{"--config", cfgPath, "--rows", "5", "--colors", "green,#cc0000"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := flags.resolve(cmd)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DataDir != "photos" {
		t.Errorf("Expected data dir from file, got %s", cfg.DataDir)
	}
	if cfg.Rows != 5 {
		t.Errorf("Expected rows from flag, got %d", cfg.Rows)
	}
	if cfg.Columns != 4 {
		t.Errorf("Expected default columns, got %d", cfg.Columns)
	}
	if !reflect.DeepEqual(cfg.Labels, []string{"keep", "drop"}) {
		t.Errorf("Expected labels from file, got %v", cfg.Labels)
	}
	if !reflect.DeepEqual(cfg.Colors, []string{"green", "#cc0000"}) {
		t.Errorf("Expected colors from flag, got %v", cfg.Colors)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected resolved config to be valid: %v", err)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
		wantErr  bool
	}{
		{input: "debug", expected: slog.LevelDebug},
		{input: "INFO", expected: slog.LevelInfo},
		{input: "", expected: slog.LevelInfo},
		{input: "warning", expected: slog.LevelWarn},
		{input: "error", expected: slog.LevelError},
		{input: "loud", expected: slog.LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Expected error=%v, got %v", tt.wantErr, err)
			}
			if got != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestCompareCommand(t *testing.T) {
	a := writeResult(t)
	b := filepath.Join(t.TempDir(), "other.csv")
	other := "filename,label,timestamp\n" +
		"data/a.png,Cat meme,2024-01-03 10:00:00\n" +
		"data/b.png,Cat meme,2024-01-03 10:00:00\n" +
		"data/c.png,Dog meme,2024-01-03 10:00:00\n"
	if err := os.WriteFile(b, []byte(other), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "compare", a, b, "--format", "csv")
	if err != nil {
		t.Fatalf("compare failed: %v", err)
	}
	expected := "filename,a,b\ndata/b.png,None,Cat meme\n"
	if out != expected {
		t.Errorf("Expected %q, got %q", expected, out)
	}

	if _, err := execute(t, "compare", a); err == nil {
		t.Error("Expected error with a single argument")
	}
}
