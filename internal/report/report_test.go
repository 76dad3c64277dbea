package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/lehigh-university-libraries/clicklabel/internal/agreement"
	"github.com/lehigh-university-libraries/clicklabel/internal/models"
)

func sampleSummary() models.Summary {
	return models.Summary{
		ResultPath:   "labels/df.csv",
		Total:        5,
		Labeled:      4,
		Unlabeled:    1,
		Counts:       map[string]int{"Dog meme": 1, "Cat meme": 3},
		FirstLabeled: "2024-01-01 10:00:00",
		LastLabeled:  "2024-01-02 11:30:00",
	}
}

func TestSortedLabels(t *testing.T) {
	got := sortedLabels(map[string]int{"b": 2, "a": 2, "c": 5})
	expected := []string{"c", "a", "b"}
	if strings.Join(got, ",") != strings.Join(expected, ",") {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		n, total int
		expected string
	}{
		{n: 0, total: 0, expected: "0.0%"},
		{n: 1, total: 3, expected: "33.3%"},
		{n: 4, total: 4, expected: "100.0%"},
	}
	for _, tt := range tests {
		if got := percent(tt.n, tt.total); got != tt.expected {
			t.Errorf("percent(%d, %d): expected %s, got %s", tt.n, tt.total, tt.expected, got)
		}
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleSummary(), FormatText); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	for _, want := range []string{
		"Result file: labels/df.csv",
		"Labeled between 2024-01-01 10:00:00 and 2024-01-02 11:30:00",
		"Cat meme",
		"60.0%",
		"None",
		"20.0%",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}
	if strings.Index(out, "Cat meme") > strings.Index(out, "Dog meme") {
		t.Error("Expected labels ordered by count")
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleSummary(), FormatJSON); err != nil {
		t.Fatal(err)
	}

	var decoded models.Summary
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Expected valid JSON: %v", err)
	}
	if decoded.Counts["Cat meme"] != 3 || decoded.Unlabeled != 1 {
		t.Errorf("Unexpected summary %+v", decoded)
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleSummary(), FormatCSV); err != nil {
		t.Fatal(err)
	}

	expected := "label,count\nCat meme,3\nDog meme,1\nNone,1\n"
	if buf.String() != expected {
		t.Errorf("Expected %q, got %q", expected, buf.String())
	}
}

func TestWriteUnsupported(t *testing.T) {
	if err := Write(&bytes.Buffer{}, sampleSummary(), "xml"); err == nil {
		t.Error("Expected error for unsupported format")
	}
}

func sampleAgreement() *agreement.Results {
	return &agreement.Results{
		SourceA:    "a.csv",
		SourceB:    "b.csv",
		Compared:   4,
		Agreements: 3,
		Rate:       0.75,
		Kappa:      0.5,
		Categories: []string{"cat", "dog"},
		Confusion: map[string]map[string]int{
			"cat": {"cat": 1, "dog": 1},
			"dog": {"dog": 2},
		},
		Disagreements: []agreement.Disagreement{{Filename: "b.png", A: "cat", B: "dog"}},
	}
}

func TestWriteAgreementText(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteAgreement(&buf, sampleAgreement(), FormatText); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"Compared 4 images", "75.0% (3/4)", "kappa: 0.500", "1 disagreements"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestWriteAgreementCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteAgreement(&buf, sampleAgreement(), FormatCSV); err != nil {
		t.Fatal(err)
	}
	expected := "filename,a,b\nb.png,cat,dog\n"
	if buf.String() != expected {
		t.Errorf("Expected %q, got %q", expected, buf.String())
	}
}
