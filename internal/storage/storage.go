package storage

import (
	"sync"

	"github.com/lehigh-university-libraries/clicklabel/internal/models"
)

// Core column names of the result file
const (
	ColumnFilename  = "filename"
	ColumnLabel     = "label"
	ColumnTimestamp = "timestamp"
)

// ResultTable is an ordered mapping from filename to its latest record
type ResultTable struct {
	records []models.ResultRecord
	index   map[string]int
	extra   []string // names of preserved non-core columns
	mu      sync.RWMutex
}

// New returns an empty table with no extra columns
func New() *ResultTable {
	return &ResultTable{
		index: make(map[string]int),
	}
}

func (t *ResultTable) Get(filename string) (models.ResultRecord, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	i, exists := t.index[filename]
	if !exists {
		return models.ResultRecord{}, false
	}
	return t.records[i], true
}

// Set overwrites the label and timestamp for filename. Existing rows keep
// their position and extra column values; new rows are appended.
func (t *ResultTable) Set(filename string, label models.Label, timestamp string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if i, exists := t.index[filename]; exists {
		t.records[i].Label = label
		t.records[i].Timestamp = timestamp
		return
	}
	t.index[filename] = len(t.records)
	t.records = append(t.records, models.ResultRecord{
		Filename:  filename,
		Label:     label,
		Timestamp: timestamp,
		Extra:     make([]string, len(t.extra)),
	})
}

func (t *ResultTable) Has(filename string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, exists := t.index[filename]
	return exists
}

// Records returns a copy of all rows in table order
func (t *ResultTable) Records() []models.ResultRecord {
	t.mu.RLock()
	defer t.mu.RUnlock()

	result := make([]models.ResultRecord, len(t.records))
	for i, r := range t.records {
		r.Extra = append([]string(nil), r.Extra...)
		result[i] = r
	}
	return result
}

// Filenames returns the keys in table order
func (t *ResultTable) Filenames() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	result := make([]string, len(t.records))
	for i, r := range t.records {
		result[i] = r.Filename
	}
	return result
}

// ExtraColumns returns the names of preserved non-core columns
func (t *ResultTable) ExtraColumns() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]string(nil), t.extra...)
}

func (t *ResultTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.records)
}

// Summarize counts labels across the table
func (t *ResultTable) Summarize() models.Summary {
	t.mu.RLock()
	defer t.mu.RUnlock()

	s := models.Summary{
		Total:  len(t.records),
		Counts: make(map[string]int),
	}
	for _, r := range t.records {
		if !r.Done() {
			s.Unlabeled++
			continue
		}
		s.Labeled++
		s.Counts[r.Label.Value()]++
		if r.Timestamp == "" || r.Timestamp == models.NoneSentinel {
			continue
		}
		if s.LastLabeled == "" || r.Timestamp > s.LastLabeled {
			s.LastLabeled = r.Timestamp
		}
		if s.FirstLabeled == "" || r.Timestamp < s.FirstLabeled {
			s.FirstLabeled = r.Timestamp
		}
	}
	return s
}
