package survey

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractScore(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
		ok   bool
	}{
		{"10 (Extremely likely)", 10, true},
		{"9", 9, true},
		{"  0 - Not at all likely", 0, true},
		{"", 0, false},
		{"not sure", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ExtractScore(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCleanSessionName(t *testing.T) {
	assert.Equal(t, "Day 2 Session 3: Building with LLMs", CleanSessionName("  Day 2 Session 3:   Building\twith LLMs "))
	assert.Equal(t, "Unknown Session", CleanSessionName("   "))
}

func TestResponses(t *testing.T) {
	tbl, err := ReadCSV(filepath.Join("testdata", "survey.csv"))
	require.NoError(t, err)

	rs, err := Responses(tbl, Columns{})
	require.NoError(t, err)
	require.Len(t, rs, 10)

	first := rs[0]
	assert.Equal(t, "EXEC", first.Track)
	assert.True(t, first.HasScore)
	assert.Equal(t, 10.0, first.Score)
	assert.Equal(t, "Clear governance insights", first.SecondMotivation)
	assert.Equal(t, "Practical framework for AI transformation in our business", first.FavoriteMotivation)

	last := rs[9]
	assert.False(t, last.HasScore)
	assert.Equal(t, "Communication emails and reminders", last.Improve)

	assert.Equal(t, []string{"EXEC", "PROD", "DEV"}, Tracks(rs))
	assert.Len(t, ByTrack(rs, "DEV"), 4)
}

func TestResponses_MissingRequiredColumn(t *testing.T) {
	tbl := NewTable([]string{"TRACK"}, [][]string{{"EXEC"}})

	_, err := Responses(tbl, DefaultColumns())
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestResponses_CustomColumnsAndNaN(t *testing.T) {
	tbl := NewTable([]string{"Group", "Score", "Improve"}, [][]string{
		{"A", "8", "nan"},
		{"", "10", "More demos"},
	})

	rs, err := Responses(tbl, Columns{Track: "Group", NPS: "Score", Improve: "Improve"})
	require.NoError(t, err)

	assert.Equal(t, "", rs[0].Improve)
	assert.Equal(t, "More demos", rs[1].Improve)
	assert.Equal(t, []string{"A"}, Tracks(rs))
}

func TestColumns_Over(t *testing.T) {
	server := DefaultColumns()
	server.NPS = "Recommend score"

	got := Columns{Track: "Team", NPS: "  "}.Over(server)

	assert.Equal(t, "Team", got.Track)
	assert.Equal(t, "Recommend score", got.NPS)
	assert.Equal(t, server.Improve, got.Improve)
}
