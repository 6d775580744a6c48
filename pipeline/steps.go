package pipeline

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/vnkhanh/survey-insights/analysis"
	"github.com/vnkhanh/survey-insights/charts"
	"github.com/vnkhanh/survey-insights/report"
	"github.com/vnkhanh/survey-insights/survey"
)

func (r *Runner) importStep(context.Context) error {
	var res *survey.ImportResult
	if r.opts.Table != nil {
		res = &survey.ImportResult{Table: r.opts.Table, Source: r.opts.Source}
		if r.opts.Backup != "" {
			if err := survey.WriteCSV(r.opts.Backup, r.opts.Table); err != nil {
				return fmt.Errorf("save backup: %w", err)
			}
		}
	} else {
		var err error
		res, err = survey.Import(r.opts.Source, r.opts.Backup)
		if err != nil {
			return err
		}
	}
	if res.FromBackup {
		r.log.Warnw("source not found, using backup", "source", r.opts.Source, "backup", res.Source)
	}

	rs, err := survey.Responses(res.Table, r.opts.Columns)
	if err != nil {
		return err
	}
	r.res.Import = res
	r.res.Responses = rs
	r.res.Tracks = survey.Tracks(rs)
	responsesImported.Add(float64(len(rs)))
	r.log.Infow("survey imported", "source", res.Source, "rows", res.Table.Len(), "columns", len(res.Table.Header), "tracks", r.res.Tracks)
	if r.opts.Console != nil {
		r.opts.Console.Import(res)
	}
	return nil
}

func (r *Runner) summary() (*analysis.Summary, error) {
	if r.res.Summary == nil {
		s, err := analysis.Summarize(r.res.Responses)
		if err != nil {
			return nil, err
		}
		r.res.Summary = s
	}
	return r.res.Summary, nil
}

func (r *Runner) improvements() []analysis.CategoryCount {
	if r.res.Improvements == nil {
		r.res.Improvements = analysis.Improvements(r.res.Responses, r.opts.Categories)
		if r.res.Improvements == nil {
			r.res.Improvements = []analysis.CategoryCount{}
		}
	}
	return r.res.Improvements
}

func (r *Runner) trackImprovements() []analysis.TrackImprovements {
	if r.res.TrackImprovements == nil {
		r.res.TrackImprovements = analysis.ImprovementsByTrack(r.res.Responses, r.opts.Categories)
		if r.res.TrackImprovements == nil {
			r.res.TrackImprovements = []analysis.TrackImprovements{}
		}
	}
	return r.res.TrackImprovements
}

func (r *Runner) rankings() []analysis.TrackRanking {
	if r.res.Rankings == nil {
		r.res.Rankings = analysis.SessionRankings(r.res.Responses)
		if r.res.Rankings == nil {
			r.res.Rankings = []analysis.TrackRanking{}
		}
	}
	return r.res.Rankings
}

func (r *Runner) lowest() analysis.LowestReport {
	if r.res.Lowest == nil {
		rep := analysis.LowestScores(r.res.Responses, r.opts.LowestCount)
		r.res.Lowest = &rep
	}
	return *r.res.Lowest
}

func (r *Runner) lowScorers() analysis.LowScorerReport {
	if r.res.LowScorers == nil {
		rep := analysis.LowScorers(r.res.Responses)
		r.res.LowScorers = &rep
	}
	return *r.res.LowScorers
}

func (r *Runner) trackFeedback() []analysis.TrackFeedback {
	if r.res.TrackFeedback == nil {
		r.res.TrackFeedback = analysis.TrackFeedbackAnalysis(r.res.Responses)
		if r.res.TrackFeedback == nil {
			r.res.TrackFeedback = []analysis.TrackFeedback{}
		}
	}
	return r.res.TrackFeedback
}

func (r *Runner) sessions() []*analysis.SessionInsight {
	if r.res.Sessions == nil {
		r.res.Sessions = analysis.AnalyzeSessions(r.res.Responses)
		if r.res.Sessions == nil {
			r.res.Sessions = []*analysis.SessionInsight{}
		}
		r.res.TrackTables = analysis.BuildTrackTables(r.res.Sessions, r.res.Tracks)
	}
	return r.res.Sessions
}

func (r *Runner) trackMotivations() []analysis.TrackMotivation {
	if r.res.TrackMotivations == nil {
		r.res.TrackMotivations = analysis.AnalyzeTrackMotivations(r.res.Responses)
		if r.res.TrackMotivations == nil {
			r.res.TrackMotivations = []analysis.TrackMotivation{}
		}
	}
	return r.res.TrackMotivations
}

func (r *Runner) npsStep(context.Context) error {
	s, err := r.summary()
	if err != nil {
		return err
	}
	r.log.Infow("nps computed", "nps", s.Overall.NPS, "responses", s.Overall.Responses, "mean", s.Overall.Mean)
	path, err := report.NPSSheet(s).WriteCSV(r.opts.CSVDir)
	if err != nil {
		return err
	}
	r.addArtifact(path)
	if r.opts.Console != nil {
		r.opts.Console.NPS(s)
	}
	return nil
}

func (r *Runner) improvementsStep(context.Context) error {
	return r.writeSheets(report.ImprovementsSheet(r.improvements()))
}

func (r *Runner) trackImprovementsStep(context.Context) error {
	return r.writeSheets(report.TrackImprovementsSheet(r.trackImprovements()))
}

func (r *Runner) sessionsStep(context.Context) error {
	return r.writeSheets(report.SessionRankingsSheet(r.rankings()))
}

func (r *Runner) lowestStep(context.Context) error {
	rep := r.lowest()
	if rep.HasScores {
		r.log.Infow("score range", "min", rep.Min, "max", rep.Max, "participants", rep.Participants)
	}
	return r.writeSheets(report.LowestSheet(rep))
}

func (r *Runner) lowScorersStep(context.Context) error {
	rep := r.lowScorers()
	r.log.Infow("low scorers", "detractors", len(rep.Detractors))
	return r.writeSheets(report.LowScorerIssuesSheet(rep))
}

func (r *Runner) trackFeedbackStep(context.Context) error {
	return r.writeSheets(report.TrackFeedbackSheets(r.trackFeedback())...)
}

func (r *Runner) sessionAnalysisStep(context.Context) error {
	sheets := append(report.SessionSheets(r.sessions()), report.TrackMotivationSheets(r.trackMotivations())...)
	if err := r.writeSheets(sheets...); err != nil {
		return err
	}
	path := filepath.Join(r.opts.CSVDir, report.TrackTablesFile)
	if err := report.WriteTrackTables(path, r.res.TrackTables); err != nil {
		return err
	}
	r.addArtifact(path)
	return nil
}

// chartsStep records drawing failures as warnings; the CSV outputs already
// written stay valid without the images.
func (r *Runner) chartsStep(ctx context.Context) error {
	data := charts.Data{
		Improvements:      r.improvements(),
		TrackImprovements: r.trackImprovements(),
		Rankings:          r.rankings(),
		Sessions:          r.sessions(),
		Tracks:            r.res.Tracks,
		TrackMotivations:  r.trackMotivations(),
	}
	low := r.lowScorers()
	data.LowScorers = &low
	if s, err := r.summary(); err == nil {
		data.Summary = s
	} else {
		r.res.Warnings = append(r.res.Warnings, "nps charts skipped: "+err.Error())
	}

	paths, err := charts.NewRenderer(r.opts.ImagesDir).RenderAll(ctx, data)
	for _, name := range chartOrder {
		if p, ok := paths[name]; ok {
			r.addArtifact(p)
		}
	}
	if err != nil {
		if ctx.Err() != nil {
			return err
		}
		r.log.Warnw("charts incomplete", "error", err)
		r.res.Warnings = append(r.res.Warnings, "charts: "+err.Error())
	}
	return nil
}

var chartOrder = []string{
	charts.NPSAnalysisFile, charts.NPSDistributionFile, charts.ImprovementCloudFile,
	charts.TrackImprovementsFile, charts.SessionRankingsFile, charts.LowScorersFile,
	charts.SessionPopularityFile, charts.MotivationAnalysisFile, charts.TrackComparisonFile,
}

// sheets builds every tabular output; used for the workbook.
func (r *Runner) sheets() ([]report.Sheet, error) {
	s, err := r.summary()
	if err != nil {
		return nil, err
	}
	out := []report.Sheet{
		report.NPSSheet(s),
		report.ImprovementsSheet(r.improvements()),
		report.TrackImprovementsSheet(r.trackImprovements()),
		report.SessionRankingsSheet(r.rankings()),
		report.LowestSheet(r.lowest()),
		report.LowScorerIssuesSheet(r.lowScorers()),
	}
	out = append(out, report.TrackFeedbackSheets(r.trackFeedback())...)
	out = append(out, report.SessionSheets(r.sessions())...)
	out = append(out, report.TrackMotivationSheets(r.trackMotivations())...)
	return out, nil
}

func (r *Runner) workbookStep(context.Context) error {
	sheets, err := r.sheets()
	if err != nil {
		return err
	}
	path := filepath.Join(r.opts.CSVDir, report.WorkbookFile)
	if err := report.WriteWorkbook(path, sheets); err != nil {
		return err
	}
	r.addArtifact(path)
	return nil
}

func (r *Runner) publishStep(ctx context.Context) error {
	if r.opts.Publisher == nil {
		r.log.Debugw("no publisher configured")
		return nil
	}
	for i, a := range r.res.Artifacts {
		url, err := r.opts.Publisher.Publish(ctx, r.opts.PublishFolder, a.Path)
		if err != nil {
			return fmt.Errorf("publish %s: %w", a.Name, err)
		}
		r.res.Artifacts[i].URL = url
	}
	r.log.Infow("artifacts published", "count", len(r.res.Artifacts), "folder", r.opts.PublishFolder)
	return nil
}
