package analysis

import (
	"slices"
	"strings"

	"github.com/vnkhanh/survey-insights/survey"
)

// CategoryCount is the number of keyword mentions in one category.
type CategoryCount struct {
	Category string `json:"category"`
	Mentions int    `json:"mentions"`
}

// TrackImprovements holds the improvement categories raised by one track.
type TrackImprovements struct {
	Track      string          `json:"track"`
	Categories []CategoryCount `json:"categories"`
}

// CategorizeImprovements counts, for every text, each category keyword it
// contains. Categories without mentions are dropped; the rest keep catalogue order.
func CategorizeImprovements(texts []string, cats []Category) []CategoryCount {
	counts := make([]int, len(cats))
	for _, text := range texts {
		if strings.TrimSpace(text) == "" {
			continue
		}
		lower := strings.ToLower(text)
		for i, c := range cats {
			for _, kw := range c.Keywords {
				if strings.Contains(lower, kw) {
					counts[i]++
				}
			}
		}
	}

	var out []CategoryCount
	for i, c := range cats {
		if counts[i] > 0 {
			out = append(out, CategoryCount{Category: c.Name(), Mentions: counts[i]})
		}
	}
	return out
}

// SortByMentions returns a copy ordered by mentions, highest first; ties keep their order.
func SortByMentions(cs []CategoryCount) []CategoryCount {
	out := slices.Clone(cs)
	slices.SortStableFunc(out, func(a, b CategoryCount) int { return b.Mentions - a.Mentions })
	return out
}

// Improvements categorizes every response's improvement suggestion, highest first.
func Improvements(rs []survey.Response, cats []Category) []CategoryCount {
	texts := make([]string, 0, len(rs))
	for _, r := range rs {
		texts = append(texts, r.Improve)
	}
	return SortByMentions(CategorizeImprovements(texts, cats))
}

// ImprovementsByTrack categorizes suggestions separately for every track.
func ImprovementsByTrack(rs []survey.Response, cats []Category) []TrackImprovements {
	var out []TrackImprovements
	for _, track := range survey.Tracks(rs) {
		var texts []string
		for _, r := range survey.ByTrack(rs, track) {
			texts = append(texts, r.Improve)
		}
		out = append(out, TrackImprovements{Track: track, Categories: CategorizeImprovements(texts, cats)})
	}
	return out
}
