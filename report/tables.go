package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vnkhanh/survey-insights/analysis"
)

// trackTables marshals as a JSON object keyed by track, keeping track order.
type trackTables []analysis.TrackTable

func (tt trackTables) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, t := range tt {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(t.Track)
		if err != nil {
			return nil, err
		}
		rows := t.Rows
		if rows == nil {
			rows = []analysis.TrackTableRow{}
		}
		val, err := json.Marshal(rows)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// WriteTrackTables writes the per-track session tables as indented JSON.
func WriteTrackTables(path string, tables []analysis.TrackTable) error {
	b, err := json.MarshalIndent(trackTables(tables), "", "  ")
	if err != nil {
		return fmt.Errorf("encode track tables: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
