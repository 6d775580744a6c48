package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

const maxSheetName = 31

// WriteWorkbook writes every sheet as a tab of one xlsx file.
func WriteWorkbook(path string, sheets []Sheet) error {
	f := excelize.NewFile()
	defer f.Close()

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DCE6F1"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("workbook style: %w", err)
	}

	for i, s := range sheets {
		name := s.Name
		if len(name) > maxSheetName {
			name = name[:maxSheetName]
		}
		if i == 0 {
			err = f.SetSheetName("Sheet1", name)
		} else {
			_, err = f.NewSheet(name)
		}
		if err != nil {
			return fmt.Errorf("sheet %q: %w", name, err)
		}

		cells := make([]any, len(s.Header))
		for j, h := range s.Header {
			cells[j] = h
		}
		if err := f.SetSheetRow(name, "A1", &cells); err != nil {
			return fmt.Errorf("sheet %q header: %w", name, err)
		}
		for r, row := range s.Rows {
			cell, _ := excelize.CoordinatesToCellName(1, r+2)
			if err := f.SetSheetRow(name, cell, &row); err != nil {
				return fmt.Errorf("sheet %q row %d: %w", name, r+1, err)
			}
		}

		if len(s.Header) > 0 {
			last, _ := excelize.CoordinatesToCellName(len(s.Header), 1)
			if err := f.SetCellStyle(name, "A1", last, header); err != nil {
				return fmt.Errorf("sheet %q style: %w", name, err)
			}
			lastCol, _ := excelize.ColumnNumberToName(len(s.Header))
			if err := f.SetColWidth(name, "A", lastCol, 20); err != nil {
				return fmt.Errorf("sheet %q width: %w", name, err)
			}
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
