package agreement

import (
	"sort"

	"github.com/lehigh-university-libraries/clicklabel/internal/models"
	"github.com/lehigh-university-libraries/clicklabel/internal/storage"
)

// Disagreement is one image the two result files label differently
type Disagreement struct {
	Filename string `json:"filename"`
	A        string `json:"a"`
	B        string `json:"b"`
}

// Results compares two result files over the images both contain
type Results struct {
	SourceA string `json:"source_a"`
	SourceB string `json:"source_b"`

	Compared   int `json:"compared"`
	OnlyA      int `json:"only_a"`
	OnlyB      int `json:"only_b"`
	Agreements int `json:"agreements"`

	// Rate is the observed agreement, Kappa is Cohen's kappa
	Rate  float64 `json:"rate"`
	Kappa float64 `json:"kappa"`

	// Categories lists every label seen, "None" last
	Categories []string `json:"categories"`
	// Confusion counts images by label in A, then label in B
	Confusion     map[string]map[string]int `json:"confusion"`
	Disagreements []Disagreement            `json:"disagreements"`
}

// Compare matches records by filename. Unlabeled records take part as their
// own category so "labeled in A, skipped in B" counts as a disagreement.
func Compare(a, b *storage.ResultTable) *Results {
	res := &Results{
		Confusion: make(map[string]map[string]int),
	}

	countsA := make(map[string]int)
	countsB := make(map[string]int)
	seen := make(map[string]struct{})

	for _, ra := range a.Records() {
		rb, ok := b.Get(ra.Filename)
		if !ok {
			res.OnlyA++
			continue
		}

		la, lb := ra.Label.String(), rb.Label.String()
		seen[la] = struct{}{}
		seen[lb] = struct{}{}
		countsA[la]++
		countsB[lb]++
		res.Compared++

		if res.Confusion[la] == nil {
			res.Confusion[la] = make(map[string]int)
		}
		res.Confusion[la][lb]++

		if ra.Label == rb.Label {
			res.Agreements++
		} else {
			res.Disagreements = append(res.Disagreements, Disagreement{Filename: ra.Filename, A: la, B: lb})
		}
	}
	res.OnlyB = b.Len() - res.Compared

	res.Categories = categories(seen)
	if res.Compared > 0 {
		res.Rate = float64(res.Agreements) / float64(res.Compared)
		res.Kappa = kappa(res.Rate, countsA, countsB, res.Compared)
	}

	sort.Slice(res.Disagreements, func(i, j int) bool {
		return res.Disagreements[i].Filename < res.Disagreements[j].Filename
	})
	return res
}

// kappa corrects the observed rate for agreement expected by chance. When
// both sides use a single identical category chance agreement is 1 and kappa
// is defined as 1.
func kappa(observed float64, countsA, countsB map[string]int, n int) float64 {
	expected := 0.0
	for label, ca := range countsA {
		expected += float64(ca) / float64(n) * float64(countsB[label]) / float64(n)
	}
	if expected >= 1 {
		return 1
	}
	return (observed - expected) / (1 - expected)
}

func categories(seen map[string]struct{}) []string {
	var out []string
	none := false
	for l := range seen {
		if l == models.NoneSentinel {
			none = true
			continue
		}
		out = append(out, l)
	}
	sort.Strings(out)
	if none {
		out = append(out, models.NoneSentinel)
	}
	return out
}
