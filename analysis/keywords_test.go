package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeedbackVocabulary_Extract(t *testing.T) {
	got := FeedbackVocabulary.Extract("Hands-on AI workshop with great speakers")

	assert.Equal(t, []string{"hands-on", "ai", "workshop", "speakers", "hands", "workshop", "speakers"}, got)
}

func TestMotivationVocabulary_DropsSessionWords(t *testing.T) {
	got := MotivationVocabulary.Extract("The session on data governance")

	assert.Equal(t, []string{"data", "governance", "data", "governance"}, got)
	assert.Nil(t, MotivationVocabulary.Extract("   "))
}

func TestNewVocabulary_MinLength(t *testing.T) {
	v := NewVocabulary("zzz", 6)

	assert.Equal(t, []string{"longer"}, v.Extract("short longer"))
}

func TestMostCommon(t *testing.T) {
	got := MostCommon([]string{"b", "a", "b", "c", "a", "b"}, 2)
	assert.Equal(t, []KeywordCount{{"b", 3}, {"a", 2}}, got)

	ties := MostCommon([]string{"x", "y", "z"}, 10)
	assert.Equal(t, []KeywordCount{{"x", 1}, {"y", 1}, {"z", 1}}, ties)

	assert.Empty(t, MostCommon(nil, 5))
}
