// Package survey loads survey exports into a table and maps rows to typed responses.
package survey

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

var (
	// ErrSourceNotFound is returned when neither the source export nor the backup copy exists.
	ErrSourceNotFound = errors.New("survey source not found")
	// ErrMissingColumn is returned when a required column is absent from the table.
	ErrMissingColumn = errors.New("missing column")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Table is a header row plus string cells. Blank cells stand for missing values.
type Table struct {
	Header []string
	Rows   [][]string

	index map[string]int
}

// NewTable builds a table. Repeated header names get a ".N" suffix in order of
// appearance, so the second "What motivated your choice?" becomes
// "What motivated your choice?.1". Short rows are padded with blanks.
func NewTable(header []string, rows [][]string) *Table {
	t := &Table{
		Header: dedupHeader(header),
		index:  make(map[string]int, len(header)),
	}
	for i, h := range t.Header {
		t.index[h] = i
	}
	t.Rows = make([][]string, 0, len(rows))
	for _, r := range rows {
		row := make([]string, len(t.Header))
		copy(row, r)
		t.Rows = append(t.Rows, row)
	}
	return t
}

func dedupHeader(header []string) []string {
	out := make([]string, len(header))
	seen := make(map[string]int, len(header))
	taken := make(map[string]bool, len(header))
	for i, h := range header {
		name := h
		if n, ok := seen[h]; ok {
			for {
				n++
				name = h + "." + strconv.Itoa(n)
				if !taken[name] {
					break
				}
			}
			seen[h] = n
		} else {
			seen[h] = 0
		}
		taken[name] = true
		out[i] = name
	}
	return out
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.Rows) }

// Has reports whether the column exists.
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column returns every cell of the named column.
func (t *Table) Column(name string) ([]string, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, name)
	}
	out := make([]string, len(t.Rows))
	for r, row := range t.Rows {
		out[r] = row[i]
	}
	return out, nil
}

// Value returns the cell at row/column, or "" if the column does not exist.
func (t *Table) Value(row int, name string) string {
	i, ok := t.index[name]
	if !ok || row < 0 || row >= len(t.Rows) {
		return ""
	}
	return t.Rows[row][i]
}

// Head returns a table holding the first n rows.
func (t *Table) Head(n int) *Table {
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	return NewTable(t.Header, t.Rows[:n])
}

// ParseCSV reads a CSV document whose first record is the header.
func ParseCSV(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, errors.New("parse csv: empty document")
	}
	return NewTable(records[0], records[1:]), nil
}

// ReadCSV loads a CSV file.
func ReadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := ParseCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// WriteCSV writes the table, creating parent directories as needed.
func WriteCSV(path string, t *Table) error {
	return WriteRecords(path, t.Header, t.Rows)
}

// WriteRecords writes a header and rows to path.
func WriteRecords(path string, header []string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	return f.Close()
}
