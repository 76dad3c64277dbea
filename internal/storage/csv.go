package storage

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/lehigh-university-libraries/clicklabel/internal/models"
)

// ErrMalformedTable is wrapped by every error Load returns for a result file
// that exists but cannot be used.
var ErrMalformedTable = errors.New("result file must contain filename/label/timestamp columns")

// Load reads the result file at path. A missing file yields an empty table.
// Rows are ordered unlabeled first, then by timestamp.
func Load(path string) (*ResultTable, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Debug("No result file yet, starting empty", "path", path)
			return New(), nil
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedTable, path, err)
	}
	defer file.Close()

	table, err := Read(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	slog.Debug("Loaded result file", "path", path, "records", table.Len(), "extra_columns", len(table.extra))
	return table, nil
}

// Read parses CSV result data from r
func Read(r io.Reader) (*ResultTable, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: file is empty", ErrMalformedTable)
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedTable, err)
	}

	colFilename, colLabel, colTimestamp := -1, -1, -1
	var extraCols []int
	var extraNames []string
	for i, name := range header {
		switch name {
		case ColumnFilename:
			colFilename = i
		case ColumnLabel:
			colLabel = i
		case ColumnTimestamp:
			colTimestamp = i
		default:
			extraCols = append(extraCols, i)
			extraNames = append(extraNames, name)
		}
	}
	for name, idx := range map[string]int{ColumnFilename: colFilename, ColumnLabel: colLabel, ColumnTimestamp: colTimestamp} {
		if idx < 0 {
			return nil, fmt.Errorf("%w: missing %q column", ErrMalformedTable, name)
		}
	}

	table := New()
	table.extra = extraNames

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedTable, err)
		}

		filename := row[colFilename]
		if _, dup := table.index[filename]; dup {
			return nil, fmt.Errorf("%w: duplicate filename %q", ErrMalformedTable, filename)
		}

		extra := make([]string, len(extraCols))
		for j, c := range extraCols {
			extra[j] = row[c]
		}

		table.index[filename] = len(table.records)
		table.records = append(table.records, models.ResultRecord{
			Filename:  filename,
			Label:     models.ParseLabel(row[colLabel]),
			Timestamp: row[colTimestamp],
			Extra:     extra,
		})
	}

	table.sortByProgress()
	return table, nil
}

// sortByProgress orders rows by (done ascending, timestamp ascending).
// Empty timestamps sort last within their group.
func (t *ResultTable) sortByProgress() {
	sort.SliceStable(t.records, func(i, j int) bool {
		a, b := t.records[i], t.records[j]
		if a.Done() != b.Done() {
			return !a.Done()
		}
		if (a.Timestamp == "") != (b.Timestamp == "") {
			return b.Timestamp == ""
		}
		return a.Timestamp < b.Timestamp
	})
	for i, r := range t.records {
		t.index[r.Filename] = i
	}
}

// Write encodes the table as CSV to w
func (t *ResultTable) Write(w io.Writer) error {
	t.mu.RLock()
	defer t.mu.RUnlock()

	writer := csv.NewWriter(w)

	header := append([]string{ColumnFilename, ColumnLabel, ColumnTimestamp}, t.extra...)
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, r := range t.records {
		row := make([]string, 0, len(header))
		row = append(row, r.Filename, r.Label.String(), r.Timestamp)
		for i := range t.extra {
			if i < len(r.Extra) {
				row = append(row, r.Extra[i])
			} else {
				row = append(row, "")
			}
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// Save overwrites the file at path with the whole table, atomically via a
// temp file in the same directory.
func (t *ResultTable) Save(path string) error {
	var buf bytes.Buffer
	if err := t.Write(&buf); err != nil {
		return fmt.Errorf("encode result table: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create result directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}

	slog.Debug("Saved result file", "path", path, "records", t.Len())
	return nil
}
