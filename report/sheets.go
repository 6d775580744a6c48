package report

import (
	"fmt"
	"strings"

	"github.com/vnkhanh/survey-insights/analysis"
)

// CSV file names.
const (
	NPSFile                    = "nps_results.csv"
	ImprovementsFile           = "improvement_categories.csv"
	TrackImprovementsFile      = "track_improvements.csv"
	SessionRankingsFile        = "session_rankings.csv"
	LowestFile                 = "lowest_nps.csv"
	LowScorerIssuesFile        = "low_scorer_issues.csv"
	TrackSummaryFile           = "track_summary.csv"
	TrackKeywordsFile          = "track_keywords.csv"
	TrackReviewsFile           = "track_reviews.csv"
	SessionAnalysisFile        = "session_analysis.csv"
	SessionKeywordsFile        = "session_keywords_enhanced.csv"
	SessionReviewsFile         = "session_reviews.csv"
	TrackAnalysisFile          = "track_analysis_enhanced.csv"
	TrackMotivationKeywordFile = "track_motivation_keywords.csv"
	TrackTablesFile            = "track_tables.json"
	WorkbookFile               = "survey_insights.xlsx"
)

const topSessionsListed = 5

// NPSSheet lists the overall NPS followed by one row per track.
func NPSSheet(s *analysis.Summary) Sheet {
	sh := Sheet{
		Name:   "NPS",
		File:   NPSFile,
		Header: []string{"Track", "NPS", "Responses", "Promoters", "Passives", "Detractors"},
	}
	row := func(name string, b analysis.Breakdown) []any {
		return []any{name, round2(b.NPS), b.Responses, b.Promoters, b.Passives, b.Detractors}
	}
	sh.Rows = append(sh.Rows, row("Overall", s.Overall))
	for _, t := range s.Tracks {
		sh.Rows = append(sh.Rows, row(t.Track, t.Breakdown))
	}
	return sh
}

func ImprovementsSheet(cats []analysis.CategoryCount) Sheet {
	sh := Sheet{Name: "Improvements", File: ImprovementsFile, Header: []string{"Category", "Mentions"}}
	for _, c := range cats {
		sh.Rows = append(sh.Rows, []any{c.Category, c.Mentions})
	}
	return sh
}

// TrackImprovementsSheet writes a "None" row for tracks that raised nothing.
func TrackImprovementsSheet(tracks []analysis.TrackImprovements) Sheet {
	sh := Sheet{Name: "Track Improvements", File: TrackImprovementsFile, Header: []string{"Track", "Category", "Mentions"}}
	for _, t := range tracks {
		if len(t.Categories) == 0 {
			sh.Rows = append(sh.Rows, []any{t.Track, "None", 0})
			continue
		}
		for _, c := range t.Categories {
			sh.Rows = append(sh.Rows, []any{t.Track, c.Category, c.Mentions})
		}
	}
	return sh
}

func SessionRankingsSheet(rankings []analysis.TrackRanking) Sheet {
	sh := Sheet{Name: "Session Rankings", File: SessionRankingsFile, Header: []string{"Track", "Session", "Points", "Rank"}}
	for _, tr := range rankings {
		if len(tr.Sessions) == 0 {
			sh.Rows = append(sh.Rows, []any{tr.Track, "None", 0, 0})
			continue
		}
		for _, s := range tr.Sessions {
			sh.Rows = append(sh.Rows, []any{tr.Track, s.Session, s.Points, s.Rank})
		}
	}
	return sh
}

func LowestSheet(rep analysis.LowestReport) Sheet {
	sh := Sheet{Name: "Lowest Scores", File: LowestFile, Header: []string{"NPS_Score", "Track", "Feedback"}}
	for _, e := range rep.Entries {
		sh.Rows = append(sh.Rows, []any{e.Score, e.Track, e.Feedback})
	}
	return sh
}

func LowScorerIssuesSheet(rep analysis.LowScorerReport) Sheet {
	sh := Sheet{Name: "Low Scorer Issues", File: LowScorerIssuesFile, Header: []string{"Issue", "Mentions"}}
	for _, is := range rep.Issues {
		sh.Rows = append(sh.Rows, []any{is.Issue, is.Mentions})
	}
	return sh
}

// TrackFeedbackSheets returns the summary, keyword and review sheets.
func TrackFeedbackSheets(tracks []analysis.TrackFeedback) []Sheet {
	summary := Sheet{
		Name:   "Track Summary",
		File:   TrackSummaryFile,
		Header: []string{"Track", "Total_Participants", "Promoters_Count", "Detractors_Count", "Average_NPS"},
	}
	keywords := Sheet{Name: "Track Keywords", File: TrackKeywordsFile, Header: []string{"Track", "Keyword", "Mentions"}}
	reviews := Sheet{
		Name:   "Track Reviews",
		File:   TrackReviewsFile,
		Header: []string{"Track", "Rank", "NPS_Score", "Feedback_Length", "Feedback"},
	}
	for _, t := range tracks {
		var avg any
		if t.HasAverage {
			avg = round1(t.AverageScore)
		}
		summary.Rows = append(summary.Rows, []any{t.Track, t.Participants, t.Promoters, t.Detractors, avg})
		for _, k := range t.Keywords {
			keywords.Rows = append(keywords.Rows, []any{t.Track, k.Keyword, k.Count})
		}
		for i, r := range t.Reviews {
			reviews.Rows = append(reviews.Rows, []any{t.Track, i + 1, r.Score, r.Length, r.Feedback})
		}
	}
	return []Sheet{summary, keywords, reviews}
}

// SessionSheets returns the session analysis, keyword and review sheets.
// Sessions keep the order they were first named in.
func SessionSheets(sessions []*analysis.SessionInsight) []Sheet {
	main := Sheet{
		Name:   "Sessions",
		File:   SessionAnalysisFile,
		Header: []string{"Session", "Total_Mentions", "NPS_Score", "Promoters", "Detractors", "Passives", "Track_Breakdown"},
	}
	keywords := Sheet{Name: "Session Keywords", File: SessionKeywordsFile, Header: []string{"Session", "Keyword", "Mentions"}}
	reviews := Sheet{Name: "Session Reviews", File: SessionReviewsFile, Header: []string{"Session", "Review_Rank", "Motivation", "Length"}}

	for _, s := range sessions {
		breakdown := make([]string, 0, len(s.Tracks))
		for _, t := range s.Tracks {
			breakdown = append(breakdown, fmt.Sprintf("%s: %d", t.Track, t.Mentions))
		}
		main.Rows = append(main.Rows, []any{
			s.Session, s.Mentions, round2(s.NPS), s.Promoters, s.Detractors, s.Passives, strings.Join(breakdown, "; "),
		})

		if !s.Comprehensive() {
			reviews.Rows = append(reviews.Rows, []any{s.Session, 1, s.BestMotivation, len([]rune(s.BestMotivation))})
			continue
		}
		for _, k := range s.Keywords {
			keywords.Rows = append(keywords.Rows, []any{s.Session, k.Keyword, k.Count})
		}
		for i, m := range s.TopReviews {
			reviews.Rows = append(reviews.Rows, []any{s.Session, i + 1, m.Text, m.Length})
		}
	}
	return []Sheet{main, keywords, reviews}
}

// TrackMotivationSheets returns the track analysis and motivation keyword sheets.
func TrackMotivationSheets(tracks []analysis.TrackMotivation) []Sheet {
	main := Sheet{
		Name:   "Track Analysis",
		File:   TrackAnalysisFile,
		Header: []string{"Track", "Total_Participants", "NPS_Score", "Promoters", "Detractors", "Passives", "Top_Sessions"},
	}
	keywords := Sheet{Name: "Track Motivation Keywords", File: TrackMotivationKeywordFile, Header: []string{"Track", "Keyword", "Mentions"}}

	for _, t := range tracks {
		prefs := t.Preferences[:min(len(t.Preferences), topSessionsListed)]
		top := make([]string, len(prefs))
		for i, p := range prefs {
			top[i] = fmt.Sprintf("%s: %d", p.Session, p.Count)
		}
		main.Rows = append(main.Rows, []any{
			t.Track, t.Participants, round2(t.NPS), t.Promoters, t.Detractors, t.Passives, strings.Join(top, "; "),
		})
		for _, k := range t.Keywords {
			keywords.Rows = append(keywords.Rows, []any{t.Track, k.Keyword, k.Count})
		}
	}
	return []Sheet{main, keywords}
}
