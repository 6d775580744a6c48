package analysis

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Hands On", DisplayName("hands_on"))
	assert.Equal(t, "Track Specific", DisplayName("track_specific"))
	assert.Equal(t, "Time", DisplayName("time"))
}

func TestImprovements_Fixture(t *testing.T) {
	got := Improvements(loadFixture(t), DefaultCategories())

	assert.Equal(t, []CategoryCount{
		{"Structure", 7},
		{"Hands On", 6},
		{"Communication", 3},
		{"Logistics", 2},
		{"Time", 2},
	}, got)
}

func TestImprovementsByTrack_Fixture(t *testing.T) {
	got := ImprovementsByTrack(loadFixture(t), DefaultCategories())

	require.Len(t, got, 3)
	assert.Equal(t, TrackImprovements{Track: "EXEC", Categories: []CategoryCount{
		{"Hands On", 3}, {"Structure", 4},
	}}, got[0])
	assert.Equal(t, TrackImprovements{Track: "PROD", Categories: []CategoryCount{
		{"Structure", 2}, {"Logistics", 2}, {"Time", 1},
	}}, got[1])
	assert.Equal(t, TrackImprovements{Track: "DEV", Categories: []CategoryCount{
		{"Hands On", 3}, {"Structure", 1}, {"Communication", 3}, {"Time", 1},
	}}, got[2])
}

func TestCategorizeImprovements_SkipsBlankAndCountsEachKeyword(t *testing.T) {
	cats := []Category{{Key: "hands_on", Keywords: []string{"demos", "coding"}}, {Key: "food", Keywords: []string{"lunch"}}}

	got := CategorizeImprovements([]string{"", "Coding DEMOS please", "more demos"}, cats)

	assert.Equal(t, []CategoryCount{{"Hands On", 3}}, got)
}

func TestLoadCategories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "categories.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
categories:
  - key: venue
    keywords: [Room, WiFi]
  - key: pace
    keywords: [slow]
`), 0o644))

	cats, err := LoadCategories(path)
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "Venue", cats[0].Name())
	assert.Equal(t, []string{"room", "wifi"}, cats[0].Keywords)
}

func TestLoadCategories_DefaultsAndErrors(t *testing.T) {
	cats, err := LoadCategories("")
	require.NoError(t, err)
	assert.Len(t, cats, 8)

	empty := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("categories: []\n"), 0o644))
	_, err = LoadCategories(empty)
	assert.Error(t, err)

	_, err = LoadCategories(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
