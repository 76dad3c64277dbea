package agreement

import (
	"math"
	"testing"

	"github.com/lehigh-university-libraries/clicklabel/internal/models"
	"github.com/lehigh-university-libraries/clicklabel/internal/storage"
)

const ts = "2024-01-01 00:00:00"

func table(labels map[string]string) *storage.ResultTable {
	t := storage.New()
	for name, label := range labels {
		t.Set(name, models.ParseLabel(label), ts)
	}
	return t
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCompare(t *testing.T) {
	a := table(map[string]string{
		"a.png": "cat",
		"b.png": "cat",
		"c.png": "dog",
		"d.png": "dog",
		"e.png": "None",
	})
	b := table(map[string]string{
		"a.png": "cat",
		"b.png": "dog",
		"c.png": "dog",
		"d.png": "dog",
		"f.png": "cat",
	})

	res := Compare(a, b)

	if res.Compared != 4 || res.OnlyA != 1 || res.OnlyB != 1 {
		t.Errorf("Expected 4 compared, 1 only in each, got %d/%d/%d", res.Compared, res.OnlyA, res.OnlyB)
	}
	if res.Agreements != 3 || !almostEqual(res.Rate, 0.75) {
		t.Errorf("Expected 3 agreements at 0.75, got %d at %f", res.Agreements, res.Rate)
	}

	// pe = 0.5*0.25 + 0.5*0.75 = 0.5, kappa = (0.75-0.5)/0.5
	if !almostEqual(res.Kappa, 0.5) {
		t.Errorf("Expected kappa 0.5, got %f", res.Kappa)
	}

	if res.Confusion["cat"]["dog"] != 1 || res.Confusion["dog"]["dog"] != 2 {
		t.Errorf("Unexpected confusion %v", res.Confusion)
	}
	if len(res.Disagreements) != 1 || res.Disagreements[0] != (Disagreement{Filename: "b.png", A: "cat", B: "dog"}) {
		t.Errorf("Unexpected disagreements %v", res.Disagreements)
	}
}

func TestCompareUnlabeledIsACategory(t *testing.T) {
	a := table(map[string]string{"a.png": "cat", "b.png": "None"})
	b := table(map[string]string{"a.png": "None", "b.png": "None"})

	res := Compare(a, b)
	if res.Agreements != 1 {
		t.Errorf("Expected 1 agreement, got %d", res.Agreements)
	}
	if len(res.Categories) != 2 || res.Categories[1] != "None" {
		t.Errorf("Expected None listed last, got %v", res.Categories)
	}
}

func TestCompareEdgeCases(t *testing.T) {
	tests := []struct {
		name  string
		a, b  map[string]string
		rate  float64
		kappa float64
	}{
		{
			name: "no overlap",
			a:    map[string]string{"a.png": "cat"},
			b:    map[string]string{"b.png": "cat"},
		},
		{
			name:  "single shared category",
			a:     map[string]string{"a.png": "cat", "b.png": "cat"},
			b:     map[string]string{"a.png": "cat", "b.png": "cat"},
			rate:  1,
			kappa: 1,
		},
		{
			name:  "complete disagreement",
			a:     map[string]string{"a.png": "cat", "b.png": "dog"},
			b:     map[string]string{"a.png": "dog", "b.png": "cat"},
			rate:  0,
			kappa: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Compare(table(tt.a), table(tt.b))
			if !almostEqual(res.Rate, tt.rate) {
				t.Errorf("Expected rate %f, got %f", tt.rate, res.Rate)
			}
			if !almostEqual(res.Kappa, tt.kappa) {
				t.Errorf("Expected kappa %f, got %f", tt.kappa, res.Kappa)
			}
		})
	}
}
