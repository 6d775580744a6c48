// Package report turns analysis results into CSV files, a workbook, JSON and
// console tables.
package report

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"

	"github.com/vnkhanh/survey-insights/survey"
)

// Sheet is one tabular output. The same sheet is written as a CSV file and as
// a workbook tab.
type Sheet struct {
	Name   string
	File   string
	Header []string
	Rows   [][]any
}

// Records formats the rows as CSV records.
func (s Sheet) Records() [][]string {
	out := make([][]string, len(s.Rows))
	for i, row := range s.Rows {
		rec := make([]string, len(row))
		for j, v := range row {
			rec[j] = formatCell(v)
		}
		out[i] = rec
	}
	return out
}

// WriteCSV writes the sheet to dir/File and returns the path.
func (s Sheet) WriteCSV(dir string) (string, error) {
	path := filepath.Join(dir, s.File)
	if err := survey.WriteRecords(path, s.Header, s.Records()); err != nil {
		return "", fmt.Errorf("write %s: %w", s.File, err)
	}
	return path, nil
}

func formatCell(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case nil:
		return ""
	default:
		return fmt.Sprint(x)
	}
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func round2(v float64) float64 { return math.Round(v*100) / 100 }

// WriteAll writes every sheet into dir and returns the paths in order.
func WriteAll(dir string, sheets []Sheet) ([]string, error) {
	paths := make([]string, 0, len(sheets))
	for _, s := range sheets {
		p, err := s.WriteCSV(dir)
		if err != nil {
			return paths, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}
