package analysis

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vnkhanh/survey-insights/survey"
)

const (
	sessionStrategy   = "Day 1 Session 2: AI Strategy for Leaders"
	sessionGovernance = "Day 2 Session 1: Data Governance"
	sessionLLMs       = "Day 2 Session 3: Building with LLMs"
)

func loadFixture(t *testing.T) []survey.Response {
	t.Helper()
	tbl, err := survey.ReadCSV(filepath.Join("testdata", "survey.csv"))
	require.NoError(t, err)
	rs, err := survey.Responses(tbl, survey.DefaultColumns())
	require.NoError(t, err)
	return rs
}

func scored(track string, score float64) survey.Response {
	return survey.Response{Track: track, Score: score, HasScore: true}
}
