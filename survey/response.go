package survey

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Columns names the survey questions the analyses read.
type Columns struct {
	Track              string `mapstructure:"track" yaml:"track" json:"track"`
	NPS                string `mapstructure:"nps" yaml:"nps" json:"nps"`
	Improve            string `mapstructure:"improve" yaml:"improve" json:"improve"`
	Valuable           string `mapstructure:"valuable" yaml:"valuable" json:"valuable"`
	Favorite           string `mapstructure:"favorite" yaml:"favorite" json:"favorite"`
	FavoriteMotivation string `mapstructure:"favorite_motivation" yaml:"favorite_motivation" json:"favorite_motivation"`
	SecondFavorite     string `mapstructure:"second_favorite" yaml:"second_favorite" json:"second_favorite"`
	SecondMotivation   string `mapstructure:"second_motivation" yaml:"second_motivation" json:"second_motivation"`
	AnythingElse       string `mapstructure:"anything_else" yaml:"anything_else" json:"anything_else"`
}

// DefaultColumns matches the training-program feedback form.
func DefaultColumns() Columns {
	return Columns{
		Track:              "TRACK",
		NPS:                "On a scale from 0 to 10. How likely are you to recommend this program to a friend or colleague?",
		Improve:            "What should we improve?",
		Valuable:           "What was the most valuable part of the program?",
		Favorite:           "What session did you enjoy the most?",
		FavoriteMotivation: "What motivated your choice?",
		SecondFavorite:     "What is the second session you enjoyed the most?",
		SecondMotivation:   "What motivated your choice?.1",
		AnythingElse:       "Anything else you want to share with us?",
	}
}

// WithDefaults fills blank names from DefaultColumns.
func (c Columns) WithDefaults() Columns {
	return c.Over(DefaultColumns())
}

// Over returns base with every non-blank name of c applied on top.
func (c Columns) Over(base Columns) Columns {
	fill := func(v *string, def string) {
		if strings.TrimSpace(*v) == "" {
			*v = def
		}
	}
	fill(&c.Track, base.Track)
	fill(&c.NPS, base.NPS)
	fill(&c.Improve, base.Improve)
	fill(&c.Valuable, base.Valuable)
	fill(&c.Favorite, base.Favorite)
	fill(&c.FavoriteMotivation, base.FavoriteMotivation)
	fill(&c.SecondFavorite, base.SecondFavorite)
	fill(&c.SecondMotivation, base.SecondMotivation)
	fill(&c.AnythingElse, base.AnythingElse)
	return c
}

// Response is one respondent. Text fields are trimmed; "" means no answer.
type Response struct {
	Row      int
	Track    string
	RawScore string
	Score    float64
	HasScore bool

	Improve            string
	Valuable           string
	Favorite           string
	FavoriteMotivation string
	SecondFavorite     string
	SecondMotivation   string
	AnythingElse       string
}

var digitsRe = regexp.MustCompile(`\d+`)

// ExtractScore pulls the first run of digits out of answers such as
// "10 (Extremely likely)".
func ExtractScore(raw string) (float64, bool) {
	m := digitsRe.FindString(raw)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

var spaceRe = regexp.MustCompile(`\s+`)

// CleanSessionName trims and collapses whitespace.
func CleanSessionName(name string) string {
	s := strings.TrimSpace(spaceRe.ReplaceAllString(name, " "))
	if s == "" {
		return "Unknown Session"
	}
	return s
}

// Responses maps table rows to responses. Track and NPS columns are required.
func Responses(t *Table, cols Columns) ([]Response, error) {
	cols = cols.WithDefaults()
	for _, req := range []string{cols.Track, cols.NPS} {
		if !t.Has(req) {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, req)
		}
	}

	out := make([]Response, 0, t.Len())
	for i := range t.Rows {
		cell := func(name string) string { return cleanCell(t.Value(i, name)) }
		r := Response{
			Row:                i,
			Track:              cell(cols.Track),
			RawScore:           cell(cols.NPS),
			Improve:            cell(cols.Improve),
			Valuable:           cell(cols.Valuable),
			Favorite:           cell(cols.Favorite),
			FavoriteMotivation: cell(cols.FavoriteMotivation),
			SecondFavorite:     cell(cols.SecondFavorite),
			SecondMotivation:   cell(cols.SecondMotivation),
			AnythingElse:       cell(cols.AnythingElse),
		}
		r.Score, r.HasScore = ExtractScore(r.RawScore)
		out = append(out, r)
	}
	return out, nil
}

// cleanCell trims a cell and treats spreadsheet NaN markers as blank.
func cleanCell(v string) string {
	v = strings.TrimSpace(v)
	switch strings.ToLower(v) {
	case "nan", "n/a", "#n/a":
		return ""
	}
	return v
}

// Tracks returns distinct non-blank tracks in order of first appearance.
func Tracks(rs []Response) []string {
	var out []string
	seen := map[string]bool{}
	for _, r := range rs {
		if r.Track == "" || seen[r.Track] {
			continue
		}
		seen[r.Track] = true
		out = append(out, r.Track)
	}
	return out
}

// ByTrack returns the responses belonging to track.
func ByTrack(rs []Response, track string) []Response {
	var out []Response
	for _, r := range rs {
		if r.Track == track {
			out = append(out, r)
		}
	}
	return out
}
