package survey

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// FetchSheet reads a range of a Google Sheets spreadsheet; the first row is the header.
func FetchSheet(ctx context.Context, spreadsheetID, readRange string, opts ...option.ClientOption) (*Table, error) {
	srv, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets client: %w", err)
	}
	resp, err := srv.Spreadsheets.Values.Get(spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read sheet %s!%s: %w", spreadsheetID, readRange, err)
	}
	return FromValues(resp.Values)
}

// FromValues converts Sheets API cell values to a table.
func FromValues(values [][]interface{}) (*Table, error) {
	if len(values) == 0 {
		return nil, errors.New("sheet is empty")
	}
	toStrings := func(row []interface{}) []string {
		out := make([]string, len(row))
		for i, v := range row {
			if v == nil {
				continue
			}
			out[i] = fmt.Sprint(v)
		}
		return out
	}
	rows := make([][]string, 0, len(values)-1)
	for _, r := range values[1:] {
		rows = append(rows, toStrings(r))
	}
	return NewTable(toStrings(values[0]), rows), nil
}
