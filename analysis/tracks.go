package analysis

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/vnkhanh/survey-insights/survey"
)

const (
	// MinReviewLength is the length a detractor suggestion must exceed to count as a comprehensive review.
	MinReviewLength = 50
	topReviews      = 3
	topTrackWords   = 10
)

// Review is a free-text answer ranked by length.
type Review struct {
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
	Length   int     `json:"length"`
}

// TrackFeedback contrasts what promoters praised with what detractors criticized.
type TrackFeedback struct {
	Track        string         `json:"track"`
	Participants int            `json:"participants"`
	Promoters    int            `json:"promoters"`
	Detractors   int            `json:"detractors"`
	AverageScore float64        `json:"average_score"`
	HasAverage   bool           `json:"has_average"`
	Keywords     []KeywordCount `json:"keywords"`
	Reviews      []Review       `json:"reviews"`
}

// TrackFeedbackAnalysis builds, for every track, the top promoter keywords and
// the longest detractor improvement suggestions.
func TrackFeedbackAnalysis(rs []survey.Response) []TrackFeedback {
	var out []TrackFeedback
	for _, track := range survey.Tracks(rs) {
		members := survey.ByTrack(rs, track)
		tf := TrackFeedback{Track: track, Participants: len(members)}

		var words []string
		var reviews []Review
		var sum float64
		var scored int
		for _, r := range members {
			if r.HasScore {
				sum += r.Score
				scored++
			}
			switch Categorize(r.Score, r.HasScore) {
			case Promoter:
				tf.Promoters++
				text := strings.Join([]string{
					r.Valuable, r.FavoriteMotivation, r.SecondMotivation,
					r.Favorite, r.SecondFavorite, r.AnythingElse,
				}, " ")
				words = append(words, FeedbackVocabulary.Extract(text)...)
			case Detractor:
				tf.Detractors++
				if n := utf8.RuneCountInString(r.Improve); n > MinReviewLength {
					reviews = append(reviews, Review{Score: r.Score, Feedback: r.Improve, Length: n})
				}
			}
		}
		if scored > 0 {
			tf.AverageScore = sum / float64(scored)
			tf.HasAverage = true
		}
		tf.Keywords = MostCommon(words, topTrackWords)
		tf.Reviews = longestReviews(reviews, topReviews)
		out = append(out, tf)
	}
	return out
}

func longestReviews(rs []Review, n int) []Review {
	rs = slices.Clone(rs)
	slices.SortStableFunc(rs, func(a, b Review) int { return b.Length - a.Length })
	if len(rs) > n {
		rs = rs[:n]
	}
	return rs
}
