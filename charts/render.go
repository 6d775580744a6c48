package charts

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/vnkhanh/survey-insights/analysis"
)

// Data is everything the charts are drawn from. Nil or empty parts skip the
// charts that need them.
type Data struct {
	Summary           *analysis.Summary
	Improvements      []analysis.CategoryCount
	TrackImprovements []analysis.TrackImprovements
	Rankings          []analysis.TrackRanking
	LowScorers        *analysis.LowScorerReport
	Sessions          []*analysis.SessionInsight
	Tracks            []string
	TrackMotivations  []analysis.TrackMotivation
}

// RenderAll draws every chart Data allows, concurrently. It returns the
// written paths keyed by file name; the first error wins.
func (r *Renderer) RenderAll(ctx context.Context, d Data) (map[string]string, error) {
	var (
		mu  sync.Mutex
		out = map[string]string{}
	)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	run := func(name string, draw func() (string, error)) {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			path, err := draw()
			if err != nil {
				return err
			}
			mu.Lock()
			out[name] = path
			mu.Unlock()
			return nil
		})
	}

	if d.Summary != nil {
		run(NPSAnalysisFile, func() (string, error) { return r.NPSAnalysis(d.Summary) })
		run(NPSDistributionFile, func() (string, error) { return r.NPSDistribution(d.Summary) })
	}
	if d.Improvements != nil {
		run(ImprovementCloudFile, func() (string, error) { return r.ImprovementCloud(d.Improvements) })
	}
	if d.TrackImprovements != nil {
		run(TrackImprovementsFile, func() (string, error) { return r.TrackImprovements(d.TrackImprovements) })
	}
	if d.Rankings != nil {
		run(SessionRankingsFile, func() (string, error) { return r.SessionRankings(d.Rankings) })
	}
	if d.LowScorers != nil {
		run(LowScorersFile, func() (string, error) { return r.LowScorers(*d.LowScorers) })
	}
	if d.Sessions != nil {
		run(SessionPopularityFile, func() (string, error) { return r.SessionPopularity(d.Sessions, d.Tracks) })
		run(MotivationAnalysisFile, func() (string, error) { return r.MotivationAnalysis(d.Sessions) })
	}
	if d.TrackMotivations != nil {
		run(TrackComparisonFile, func() (string, error) { return r.TrackComparison(d.TrackMotivations) })
	}

	if err := g.Wait(); err != nil {
		return out, err
	}
	return out, nil
}
