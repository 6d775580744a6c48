package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnkhanh/survey-insights/survey"
)

func TestTrackFeedbackAnalysis_Fixture(t *testing.T) {
	got := TrackFeedbackAnalysis(loadFixture(t))
	require.Len(t, got, 3)

	exec := got[0]
	assert.Equal(t, "EXEC", exec.Track)
	assert.Equal(t, 3, exec.Participants)
	assert.Equal(t, 2, exec.Promoters)
	assert.Equal(t, 1, exec.Detractors)
	assert.True(t, exec.HasAverage)
	assert.InDelta(t, 25.0/3, exec.AverageScore, 1e-9)
	require.GreaterOrEqual(t, len(exec.Keywords), 3)
	assert.Equal(t, KeywordCount{"session", 8}, exec.Keywords[0])
	assert.Equal(t, KeywordCount{"strategy", 6}, exec.Keywords[1])
	assert.Equal(t, KeywordCount{"insights", 6}, exec.Keywords[2])
	require.Len(t, exec.Reviews, 1)
	assert.True(t, strings.HasPrefix(exec.Reviews[0].Feedback, "The structure and organization"))

	prod := got[1]
	require.Len(t, prod.Reviews, 1)
	assert.Equal(t, 3.0, prod.Reviews[0].Score)

	dev := got[2]
	assert.Equal(t, 4, dev.Participants)
	assert.Empty(t, dev.Reviews, "short detractor feedback is not a comprehensive review")
}

func TestTrackFeedbackAnalysis_LongestReviewsFirst(t *testing.T) {
	long := strings.Repeat("x", 80)
	longer := strings.Repeat("y", 120)
	rs := []survey.Response{
		{Track: "A", Score: 2, HasScore: true, Improve: long},
		{Track: "A", Score: 4, HasScore: true, Improve: longer},
		{Track: "A", Score: 5, HasScore: true, Improve: strings.Repeat("z", 50)},
		{Track: "A", Score: 1, HasScore: true, Improve: long + "!"},
		{Track: "A", Score: 0, HasScore: true, Improve: long + "!!"},
	}

	got := TrackFeedbackAnalysis(rs)

	require.Len(t, got[0].Reviews, 3)
	assert.Equal(t, []int{120, 82, 81}, []int{got[0].Reviews[0].Length, got[0].Reviews[1].Length, got[0].Reviews[2].Length})
}
