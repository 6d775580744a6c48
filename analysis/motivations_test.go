package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnkhanh/survey-insights/survey"
)

func TestAnalyzeSessions_Fixture(t *testing.T) {
	got := AnalyzeSessions(loadFixture(t))
	require.Len(t, got, 3)

	strategy := got[0]
	assert.Equal(t, sessionStrategy, strategy.Session)
	assert.Equal(t, 5, strategy.Mentions)
	assert.Equal(t, 3, strategy.Promoters)
	assert.Equal(t, 2, strategy.Passives)
	assert.InDelta(t, 60, strategy.NPS, 1e-9)
	assert.True(t, strategy.Comprehensive())

	require.Len(t, strategy.Tracks, 3)
	assert.Equal(t, "EXEC", strategy.Tracks[0].Track)
	assert.InDelta(t, 100, strategy.Tracks[0].NPS, 1e-9)
	prod, ok := strategy.Track("PROD")
	require.True(t, ok)
	assert.InDelta(t, 50, prod.NPS, 1e-9)

	require.Len(t, strategy.TopReviews, 3)
	assert.Equal(t, "Practical framework for AI transformation in our business", strategy.TopReviews[0].Text)
	assert.Equal(t, 57, strategy.TopReviews[0].Length)
	assert.Equal(t, "Useful tools", strategy.TopReviews[2].Text)
	assert.NotEmpty(t, strategy.Keywords)

	governance := got[1]
	assert.Equal(t, sessionGovernance, governance.Session)
	assert.InDelta(t, 0, governance.NPS, 1e-9)

	llms := got[2]
	assert.Equal(t, sessionLLMs, llms.Session)
	assert.InDelta(t, 40, llms.NPS, 1e-9)
}

func TestAnalyzeSessions_BestMotivation(t *testing.T) {
	rs := []survey.Response{
		{Track: "A", Score: 9, HasScore: true, Favorite: "Keynote", FavoriteMotivation: "short"},
		{Track: "A", Score: 9, HasScore: true, Favorite: "Keynote", FavoriteMotivation: "a longer reason"},
		{Track: "B", Score: 5, HasScore: true, Favorite: "Panel"},
	}

	got := AnalyzeSessions(rs)

	require.Len(t, got, 2)
	assert.False(t, got[0].Comprehensive())
	assert.Equal(t, "a longer reason", got[0].BestMotivation)
	assert.Equal(t, NoMotivation, got[1].BestMotivation)
	assert.Empty(t, got[0].TopReviews)
}

func TestByMentions(t *testing.T) {
	ss := []*SessionInsight{
		{Session: "a", Counts: Counts{Mentions: 1}},
		{Session: "b", Counts: Counts{Mentions: 3}},
		{Session: "c", Counts: Counts{Mentions: 1}},
	}

	got := ByMentions(ss)

	assert.Equal(t, "b", got[0].Session)
	assert.Equal(t, "a", got[1].Session)
	assert.Equal(t, "a", ss[0].Session, "input is not reordered")
}

func TestAnalyzeTrackMotivations_Fixture(t *testing.T) {
	got := AnalyzeTrackMotivations(loadFixture(t))
	require.Len(t, got, 3)

	exec := got[0]
	assert.Equal(t, 3, exec.Participants)
	assert.InDelta(t, 100.0/3, exec.NPS, 1e-9)
	assert.Equal(t, []SessionCount{{sessionStrategy, 2}, {sessionGovernance, 2}, {sessionLLMs, 1}}, exec.Preferences)

	dev := got[2]
	assert.Equal(t, 4, dev.Participants)
	assert.Equal(t, 1, dev.Promoters)
	assert.Equal(t, 1, dev.Passives)
	assert.Equal(t, 1, dev.Detractors)
	assert.Len(t, dev.Motivations, 2)
	require.NotEmpty(t, dev.Keywords)
	assert.Equal(t, KeywordCount{"practical", 4}, dev.Keywords[0])
	assert.Equal(t, KeywordCount{"technical", 4}, dev.Keywords[1])
}

func TestBuildTrackTables_Fixture(t *testing.T) {
	rs := loadFixture(t)
	tables := BuildTrackTables(AnalyzeSessions(rs), survey.Tracks(rs))
	require.Len(t, tables, 3)

	exec := tables[0]
	assert.Equal(t, "EXEC", exec.Track)
	require.Len(t, exec.Rows, 3)
	assert.Equal(t, sessionStrategy, exec.Rows[0].Session)
	assert.Equal(t, 2, exec.Rows[0].Mentions)
	assert.Equal(t, sessionLLMs, exec.Rows[2].Session)
	assert.Empty(t, exec.Rows[2].TopMotivations, "blank motivations are dropped")
}
