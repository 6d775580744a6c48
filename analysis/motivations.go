package analysis

import (
	"slices"
	"unicode/utf8"

	"github.com/vnkhanh/survey-insights/survey"
)

const (
	// MinComprehensiveMentions is the number of mentions a session needs before
	// its reviews and keywords are summarized.
	MinComprehensiveMentions = 3
	// NoMotivation stands in when nobody explained their choice.
	NoMotivation = "No motivation provided"

	topSessionWords  = 5
	topMotivationKWs = 10
)

// Motivation is the reason a respondent gave for picking a session.
type Motivation struct {
	Text   string `json:"text"`
	Length int    `json:"length"`
}

// Counts tallies NPS buckets for a group of mentions.
type Counts struct {
	Mentions   int     `json:"mentions"`
	Promoters  int     `json:"promoters"`
	Passives   int     `json:"passives"`
	Detractors int     `json:"detractors"`
	NPS        float64 `json:"nps"`
}

func (c *Counts) add(b Bucket) {
	c.Mentions++
	switch b {
	case Promoter:
		c.Promoters++
	case Passive:
		c.Passives++
	case Detractor:
		c.Detractors++
	}
}

func (c *Counts) finish() {
	c.NPS = NPSFromCounts(c.Promoters, c.Detractors, c.Mentions)
}

// TrackMentions is how one track mentioned a session.
type TrackMentions struct {
	Track string `json:"track"`
	Counts
	Motivations []string `json:"motivations"`
}

// SessionInsight summarizes every mention of a session.
type SessionInsight struct {
	Session string `json:"session"`
	Counts
	Tracks      []*TrackMentions `json:"tracks"`
	Motivations []string         `json:"motivations"`

	// Set when Mentions >= MinComprehensiveMentions.
	TopReviews []Motivation   `json:"top_reviews,omitempty"`
	Keywords   []KeywordCount `json:"keywords,omitempty"`
	// Set otherwise.
	BestMotivation string `json:"best_motivation,omitempty"`
}

// Comprehensive reports whether the session has enough mentions for review ranking.
func (s *SessionInsight) Comprehensive() bool {
	return s.Mentions >= MinComprehensiveMentions
}

// Track returns the mentions from one track.
func (s *SessionInsight) Track(name string) (*TrackMentions, bool) {
	for _, t := range s.Tracks {
		if t.Track == name {
			return t, true
		}
	}
	return nil, false
}

// AnalyzeSessions groups favorite and second-favorite mentions by session.
// Sessions appear in the order first named, favorites before second favorites.
func AnalyzeSessions(rs []survey.Response) []*SessionInsight {
	idx := map[string]*SessionInsight{}
	var out []*SessionInsight

	record := func(r survey.Response, session, motivation string) {
		session = survey.CleanSessionName(session)
		s, ok := idx[session]
		if !ok {
			s = &SessionInsight{Session: session}
			idx[session] = s
			out = append(out, s)
		}
		b := Categorize(r.Score, r.HasScore)
		s.add(b)
		s.Motivations = append(s.Motivations, motivation)

		t, ok := s.Track(r.Track)
		if !ok {
			t = &TrackMentions{Track: r.Track}
			s.Tracks = append(s.Tracks, t)
		}
		t.add(b)
		t.Motivations = append(t.Motivations, motivation)
	}
	for _, r := range rs {
		if r.Favorite != "" {
			record(r, r.Favorite, r.FavoriteMotivation)
		}
	}
	for _, r := range rs {
		if r.SecondFavorite != "" {
			record(r, r.SecondFavorite, r.SecondMotivation)
		}
	}

	for _, s := range out {
		s.finish()
		for _, t := range s.Tracks {
			t.finish()
		}
		ranked := rankMotivations(s.Motivations)
		if s.Comprehensive() {
			s.TopReviews = head(ranked, topReviews)
			var words []string
			for _, m := range s.Motivations {
				words = append(words, MotivationVocabulary.Extract(m)...)
			}
			s.Keywords = MostCommon(words, topSessionWords)
		} else if len(ranked) > 0 {
			s.BestMotivation = ranked[0].Text
		} else {
			s.BestMotivation = NoMotivation
		}
	}
	return out
}

// ByMentions returns the sessions ordered by mentions, highest first.
func ByMentions(ss []*SessionInsight) []*SessionInsight {
	out := slices.Clone(ss)
	slices.SortStableFunc(out, func(a, b *SessionInsight) int { return b.Mentions - a.Mentions })
	return out
}

// rankMotivations drops blank motivations and orders the rest by length, longest first.
func rankMotivations(ms []string) []Motivation {
	var out []Motivation
	for _, m := range ms {
		if m == "" {
			continue
		}
		out = append(out, Motivation{Text: m, Length: utf8.RuneCountInString(m)})
	}
	slices.SortStableFunc(out, func(a, b Motivation) int { return b.Length - a.Length })
	return out
}

func head[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// SessionCount is how often a track picked a session.
type SessionCount struct {
	Session string `json:"session"`
	Count   int    `json:"count"`
}

// TrackMotivation summarizes why a track liked its sessions.
type TrackMotivation struct {
	Track        string `json:"track"`
	Participants int    `json:"participants"`
	Promoters    int    `json:"promoters"`
	Passives     int    `json:"passives"`
	Detractors   int    `json:"detractors"`
	// NPS is computed over all participants, including those without a score.
	NPS         float64        `json:"nps"`
	Motivations []string       `json:"motivations"`
	Keywords    []KeywordCount `json:"keywords"`
	Preferences []SessionCount `json:"preferences"`
}

// AnalyzeTrackMotivations collects motivations and session preferences per track.
func AnalyzeTrackMotivations(rs []survey.Response) []TrackMotivation {
	var out []TrackMotivation
	for _, track := range survey.Tracks(rs) {
		members := survey.ByTrack(rs, track)
		tm := TrackMotivation{Track: track, Participants: len(members)}
		for _, r := range members {
			switch Categorize(r.Score, r.HasScore) {
			case Promoter:
				tm.Promoters++
			case Passive:
				tm.Passives++
			case Detractor:
				tm.Detractors++
			}
		}
		tm.NPS = NPSFromCounts(tm.Promoters, tm.Detractors, tm.Participants)

		prefIdx := map[string]int{}
		collect := func(session, motivation string) {
			if session == "" {
				return
			}
			if motivation != "" {
				tm.Motivations = append(tm.Motivations, motivation)
			}
			name := survey.CleanSessionName(session)
			if i, ok := prefIdx[name]; ok {
				tm.Preferences[i].Count++
				return
			}
			prefIdx[name] = len(tm.Preferences)
			tm.Preferences = append(tm.Preferences, SessionCount{Session: name, Count: 1})
		}
		for _, r := range members {
			collect(r.Favorite, r.FavoriteMotivation)
		}
		for _, r := range members {
			collect(r.SecondFavorite, r.SecondMotivation)
		}
		slices.SortStableFunc(tm.Preferences, func(a, b SessionCount) int { return b.Count - a.Count })

		var words []string
		for _, m := range tm.Motivations {
			words = append(words, MotivationVocabulary.Extract(m)...)
		}
		tm.Keywords = MostCommon(words, topMotivationKWs)
		out = append(out, tm)
	}
	return out
}

// TrackTableRow is one session as seen by one track.
type TrackTableRow struct {
	Session        string       `json:"Session"`
	Mentions       int          `json:"Mentions"`
	NPS            float64      `json:"NPS_Score"`
	Promoters      int          `json:"Promoters"`
	Detractors     int          `json:"Detractors"`
	Passives       int          `json:"Passives"`
	TopMotivations []Motivation `json:"Top_Motivations"`
}

// TrackTable lists every session a track mentioned, most mentioned first.
type TrackTable struct {
	Track string          `json:"track"`
	Rows  []TrackTableRow `json:"rows"`
}

// BuildTrackTables slices the session insights by track.
func BuildTrackTables(sessions []*SessionInsight, tracks []string) []TrackTable {
	var out []TrackTable
	for _, track := range tracks {
		tt := TrackTable{Track: track}
		for _, s := range sessions {
			t, ok := s.Track(track)
			if !ok {
				continue
			}
			tt.Rows = append(tt.Rows, TrackTableRow{
				Session:        s.Session,
				Mentions:       t.Mentions,
				NPS:            t.NPS,
				Promoters:      t.Promoters,
				Detractors:     t.Detractors,
				Passives:       t.Passives,
				TopMotivations: head(rankMotivations(t.Motivations), topReviews),
			})
		}
		slices.SortStableFunc(tt.Rows, func(a, b TrackTableRow) int { return b.Mentions - a.Mentions })
		out = append(out, tt)
	}
	return out
}
