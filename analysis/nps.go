// Package analysis derives NPS metrics and feedback breakdowns from survey responses.
package analysis

import (
	"errors"

	"github.com/vnkhanh/survey-insights/survey"
)

// ErrNoScores is returned when an NPS is requested over an empty set of scores.
var ErrNoScores = errors.New("no scores")

// Bucket is the NPS group of a single score.
type Bucket string

const (
	Promoter  Bucket = "Promoter"
	Passive   Bucket = "Passive"
	Detractor Bucket = "Detractor"
	Unknown   Bucket = "Unknown"
)

// Categorize places a score in its NPS bucket: 9-10 promoter, 7-8 passive, 0-6 detractor.
func Categorize(score float64, ok bool) Bucket {
	switch {
	case !ok:
		return Unknown
	case score >= 9:
		return Promoter
	case score >= 7:
		return Passive
	default:
		return Detractor
	}
}

// CalculateNPS returns % promoters minus % detractors.
func CalculateNPS(scores []float64) (float64, error) {
	if len(scores) == 0 {
		return 0, ErrNoScores
	}
	var p, d int
	for _, s := range scores {
		switch Categorize(s, true) {
		case Promoter:
			p++
		case Detractor:
			d++
		}
	}
	return NPSFromCounts(p, d, len(scores)), nil
}

// NPSFromCounts computes the NPS from bucket counts; 0 when total is 0.
func NPSFromCounts(promoters, detractors, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(promoters)/float64(total)*100 - float64(detractors)/float64(total)*100
}

// Breakdown counts scores per bucket.
type Breakdown struct {
	Responses  int     `json:"responses"`
	Promoters  int     `json:"promoters"`
	Passives   int     `json:"passives"`
	Detractors int     `json:"detractors"`
	NPS        float64 `json:"nps"`
	Mean       float64 `json:"mean"`

	sum float64
}

func (b *Breakdown) add(score float64) {
	b.Responses++
	b.sum += score
	switch Categorize(score, true) {
	case Promoter:
		b.Promoters++
	case Passive:
		b.Passives++
	default:
		b.Detractors++
	}
}

func (b *Breakdown) finish() {
	b.NPS = NPSFromCounts(b.Promoters, b.Detractors, b.Responses)
	if b.Responses > 0 {
		b.Mean = b.sum / float64(b.Responses)
	}
}

// TrackNPS is the breakdown of one track.
type TrackNPS struct {
	Track string `json:"track"`
	Breakdown
}

// Summary is the overall and per-track NPS picture.
type Summary struct {
	Overall      Breakdown  `json:"overall"`
	Tracks       []TrackNPS `json:"tracks"`
	Histogram    [11]int    `json:"histogram"`
	Scores       []float64  `json:"-"`
	Participants int        `json:"participants"`
}

// Track looks up a track breakdown.
func (s *Summary) Track(name string) (TrackNPS, bool) {
	for _, t := range s.Tracks {
		if t.Track == name {
			return t, true
		}
	}
	return TrackNPS{}, false
}

// Summarize computes the overall NPS and one breakdown per track, tracks in
// order of first appearance. Responses without a score are skipped.
func Summarize(rs []survey.Response) (*Summary, error) {
	s := &Summary{Participants: len(rs)}
	idx := map[string]int{}
	for _, track := range survey.Tracks(rs) {
		idx[track] = len(s.Tracks)
		s.Tracks = append(s.Tracks, TrackNPS{Track: track})
	}

	for _, r := range rs {
		if !r.HasScore {
			continue
		}
		s.Scores = append(s.Scores, r.Score)
		s.Overall.add(r.Score)
		if i, ok := idx[r.Track]; ok {
			s.Tracks[i].add(r.Score)
		}
		if r.Score >= 0 && r.Score <= 10 {
			s.Histogram[int(r.Score)]++
		}
	}
	if s.Overall.Responses == 0 {
		return nil, ErrNoScores
	}

	s.Overall.finish()
	for i := range s.Tracks {
		s.Tracks[i].finish()
	}
	return s, nil
}
