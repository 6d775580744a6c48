package analysis

import (
	"slices"
	"strings"

	"github.com/vnkhanh/survey-insights/survey"
)

// LowScore is a scored response and the improvement it suggested.
type LowScore struct {
	Score    float64 `json:"score"`
	Track    string  `json:"track"`
	Feedback string  `json:"feedback"`
}

// LowestReport lists the lowest scores of a survey.
type LowestReport struct {
	Entries      []LowScore `json:"entries"`
	Participants int        `json:"participants"`
	Min          float64    `json:"min"`
	Max          float64    `json:"max"`
	HasScores    bool       `json:"has_scores"`
}

// LowestScores returns the n lowest scores; equal scores keep response order.
func LowestScores(rs []survey.Response, n int) LowestReport {
	rep := LowestReport{Participants: len(rs)}
	var scored []LowScore
	for _, r := range rs {
		if !r.HasScore {
			continue
		}
		if !rep.HasScores || r.Score < rep.Min {
			rep.Min = r.Score
		}
		if !rep.HasScores || r.Score > rep.Max {
			rep.Max = r.Score
		}
		rep.HasScores = true
		scored = append(scored, LowScore{Score: r.Score, Track: r.Track, Feedback: r.Improve})
	}
	slices.SortStableFunc(scored, func(a, b LowScore) int {
		switch {
		case a.Score < b.Score:
			return -1
		case a.Score > b.Score:
			return 1
		}
		return 0
	})
	if len(scored) > n {
		scored = scored[:n]
	}
	rep.Entries = scored
	return rep
}

// Issue buckets for detractor suggestions, checked in order; the first match wins.
const (
	IssueStructure = "Structure & Organization"
	IssueLogistics = "Logistics & Planning"
	IssueTime      = "Time Management"
	IssueOther     = "Other"
)

var issueRules = []struct {
	issue    string
	keywords []string
}{
	{IssueStructure, []string{"structure", "organization", "itinerary"}},
	{IssueLogistics, []string{"logistics", "planning", "administration"}},
	{IssueTime, []string{"time", "unstructured"}},
}

// ClassifyIssue assigns a suggestion to the first issue bucket whose keywords it contains.
func ClassifyIssue(suggestion string) string {
	lower := strings.ToLower(suggestion)
	for _, rule := range issueRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.issue
			}
		}
	}
	return IssueOther
}

// IssueCount is the number of detractor suggestions in one issue bucket.
type IssueCount struct {
	Issue    string `json:"issue"`
	Mentions int    `json:"mentions"`
}

// LowScorerReport groups what detractors asked to improve.
type LowScorerReport struct {
	Detractors []LowScore   `json:"detractors"`
	Issues     []IssueCount `json:"issues"`
}

// LowScorers collects detractors (score 0-6) and buckets their suggestions.
// Buckets without mentions are omitted.
func LowScorers(rs []survey.Response) LowScorerReport {
	var rep LowScorerReport
	counts := map[string]int{}
	for _, r := range rs {
		if Categorize(r.Score, r.HasScore) != Detractor {
			continue
		}
		rep.Detractors = append(rep.Detractors, LowScore{Score: r.Score, Track: r.Track, Feedback: r.Improve})
		if r.Improve != "" {
			counts[ClassifyIssue(r.Improve)]++
		}
	}
	for _, issue := range []string{IssueStructure, IssueLogistics, IssueTime, IssueOther} {
		if counts[issue] > 0 {
			rep.Issues = append(rep.Issues, IssueCount{Issue: issue, Mentions: counts[issue]})
		}
	}
	return rep
}
