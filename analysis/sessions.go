package analysis

import (
	"slices"
	"strings"

	"github.com/vnkhanh/survey-insights/survey"
)

// SessionPoints is one ranked session.
type SessionPoints struct {
	Session string `json:"session"`
	Points  int    `json:"points"`
	Rank    int    `json:"rank"`
}

// TrackRanking ranks the sessions one track enjoyed.
type TrackRanking struct {
	Track    string          `json:"track"`
	Sessions []SessionPoints `json:"sessions"`
}

// TotalPoints sums the points of every ranked session.
func (t TrackRanking) TotalPoints() int {
	var n int
	for _, s := range t.Sessions {
		n += s.Points
	}
	return n
}

// Top returns the best ranked session, if any.
func (t TrackRanking) Top() (SessionPoints, bool) {
	if len(t.Sessions) == 0 {
		return SessionPoints{}, false
	}
	return t.Sessions[0], true
}

// SessionRankings gives a session one point for each time a track's
// respondents named it as favorite or second favorite. Sessions are ranked by
// points; ties keep the order in which they were first named, favorites first.
func SessionRankings(rs []survey.Response) []TrackRanking {
	var out []TrackRanking
	for _, track := range survey.Tracks(rs) {
		members := survey.ByTrack(rs, track)

		idx := map[string]int{}
		var sessions []SessionPoints
		add := func(name string) {
			if strings.TrimSpace(name) == "" {
				return
			}
			name = survey.CleanSessionName(name)
			if i, ok := idx[name]; ok {
				sessions[i].Points++
				return
			}
			idx[name] = len(sessions)
			sessions = append(sessions, SessionPoints{Session: name, Points: 1})
		}
		for _, r := range members {
			add(r.Favorite)
		}
		for _, r := range members {
			add(r.SecondFavorite)
		}

		slices.SortStableFunc(sessions, func(a, b SessionPoints) int { return b.Points - a.Points })
		for i := range sessions {
			sessions[i].Rank = i + 1
		}
		out = append(out, TrackRanking{Track: track, Sessions: sessions})
	}
	return out
}

// ShortenSessionName makes a session name fit a chart axis. "Day 1 Session 2:
// Title" becomes "Day 1 Session 2\nTitle" with the title cut at 30 runes;
// other names are cut at 40 runes. Only the part up to a second colon is kept
// as the title.
func ShortenSessionName(name string) string {
	if strings.Contains(name, "Day") && strings.Contains(name, "Session") {
		if prefix, rest, ok := strings.Cut(name, ":"); ok {
			title, _, _ := strings.Cut(rest, ":")
			return strings.TrimSpace(prefix) + "\n" + Truncate(strings.TrimSpace(title), 30)
		}
	}
	return Truncate(name, 40)
}

// Truncate cuts s at n runes and appends "..." when it was longer.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
