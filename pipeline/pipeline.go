// Package pipeline runs the survey analysis steps in order and collects their outputs.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/vnkhanh/survey-insights/analysis"
	"github.com/vnkhanh/survey-insights/report"
	"github.com/vnkhanh/survey-insights/survey"
)

// Step names.
const (
	StepImport            = "import"
	StepNPS               = "nps"
	StepImprovements      = "improvements"
	StepTrackImprovements = "track-improvements"
	StepSessions          = "sessions"
	StepLowest            = "lowest"
	StepLowScorers        = "low-scorers"
	StepTrackFeedback     = "track-feedback"
	StepSessionAnalysis   = "session-analysis"
	StepCharts            = "charts"
	StepWorkbook          = "workbook"
	StepPublish           = "publish"
)

// Steps is the order Run executes steps in.
var Steps = []string{
	StepImport, StepNPS, StepImprovements, StepTrackImprovements, StepSessions,
	StepLowest, StepLowScorers, StepTrackFeedback, StepSessionAnalysis,
	StepCharts, StepWorkbook, StepPublish,
}

// ErrUnknownStep is returned by RunStep for names not in Steps.
var ErrUnknownStep = errors.New("unknown step")

// Publisher uploads a local file and returns where it can be fetched.
type Publisher interface {
	Publish(ctx context.Context, folder, localPath string) (string, error)
}

// Options configure a Runner.
type Options struct {
	// Source is read by the import step, falling back to Backup. A non-nil
	// Table is used as is and neither file is touched.
	Source string
	Backup string
	Table  *survey.Table

	CSVDir      string
	ImagesDir   string
	Columns     survey.Columns
	Categories  []analysis.Category
	LowestCount int

	SkipCharts   bool
	SkipWorkbook bool

	// Publisher is optional; without it the publish step does nothing.
	Publisher     Publisher
	PublishFolder string

	// Console, when set, receives a human readable rendering of each step.
	Console *report.Console
}

// Artifact is a file the pipeline wrote.
type Artifact struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
	Path string `json:"path"`
	URL  string `json:"url,omitempty"`
}

// Result holds everything computed so far. Fields stay nil until the step
// that needs them has run.
type Result struct {
	Import            *survey.ImportResult
	Responses         []survey.Response
	Tracks            []string
	Summary           *analysis.Summary
	Improvements      []analysis.CategoryCount
	TrackImprovements []analysis.TrackImprovements
	Rankings          []analysis.TrackRanking
	Lowest            *analysis.LowestReport
	LowScorers        *analysis.LowScorerReport
	TrackFeedback     []analysis.TrackFeedback
	Sessions          []*analysis.SessionInsight
	TrackMotivations  []analysis.TrackMotivation
	TrackTables       []analysis.TrackTable

	Artifacts []Artifact
	// Warnings are failures that did not stop the run, such as a chart that could not be drawn.
	Warnings []string
}

// Artifact returns the artifact with the given file name.
func (r *Result) Artifact(name string) (Artifact, bool) {
	for _, a := range r.Artifacts {
		if a.Name == name {
			return a, true
		}
	}
	return Artifact{}, false
}

// Runner executes steps against one survey.
type Runner struct {
	opts  Options
	log   *zap.SugaredLogger
	res   *Result
	steps map[string]func(context.Context) error
}

// New returns a runner; zero options fall back to the usual defaults.
func New(opts Options, log *zap.SugaredLogger) *Runner {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if opts.CSVDir == "" {
		opts.CSVDir = "csv"
	}
	if opts.ImagesDir == "" {
		opts.ImagesDir = "images"
	}
	if opts.Categories == nil {
		opts.Categories = analysis.DefaultCategories()
	}
	if opts.LowestCount <= 0 {
		opts.LowestCount = 5
	}
	opts.Columns = opts.Columns.WithDefaults()

	r := &Runner{opts: opts, log: log, res: &Result{}}
	r.steps = map[string]func(context.Context) error{
		StepImport:            r.importStep,
		StepNPS:               r.npsStep,
		StepImprovements:      r.improvementsStep,
		StepTrackImprovements: r.trackImprovementsStep,
		StepSessions:          r.sessionsStep,
		StepLowest:            r.lowestStep,
		StepLowScorers:        r.lowScorersStep,
		StepTrackFeedback:     r.trackFeedbackStep,
		StepSessionAnalysis:   r.sessionAnalysisStep,
		StepCharts:            r.chartsStep,
		StepWorkbook:          r.workbookStep,
		StepPublish:           r.publishStep,
	}
	return r
}

// Result returns what has been computed so far.
func (r *Runner) Result() *Result {
	return r.res
}

// Run executes every step in order and stops at the first failure.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	for _, name := range Steps {
		if name == StepCharts && r.opts.SkipCharts {
			continue
		}
		if name == StepWorkbook && r.opts.SkipWorkbook {
			continue
		}
		if err := r.exec(ctx, name); err != nil {
			return r.res, err
		}
	}
	return r.res, nil
}

// RunStep executes one step, importing the survey first when needed.
func (r *Runner) RunStep(ctx context.Context, name string) (*Result, error) {
	if _, ok := r.steps[name]; !ok {
		return r.res, fmt.Errorf("%w %q (want one of %s)", ErrUnknownStep, name, strings.Join(Steps, ", "))
	}
	if name != StepImport && r.res.Import == nil {
		if err := r.exec(ctx, StepImport); err != nil {
			return r.res, err
		}
	}
	return r.res, r.exec(ctx, name)
}

func (r *Runner) exec(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	start := time.Now()
	before := len(r.res.Artifacts)
	r.log.Debugw("step started", "step", name)

	err := r.steps[name](ctx)
	d := time.Since(start)
	stepDuration.WithLabelValues(name).Observe(d.Seconds())
	if err != nil {
		stepTotal.WithLabelValues(name, "error").Inc()
		r.log.Errorw("step failed", "step", name, "duration", d, "error", err)
		return fmt.Errorf("%s: %w", name, err)
	}
	stepTotal.WithLabelValues(name, "ok").Inc()

	var outputs []string
	for _, a := range r.res.Artifacts[before:] {
		outputs = append(outputs, a.Path)
	}
	r.log.Infow("step finished", "step", name, "duration", d, "outputs", outputs)
	return nil
}

func (r *Runner) addArtifact(path string) {
	name := filepath.Base(path)
	kind := strings.TrimPrefix(filepath.Ext(name), ".")
	artifactsWritten.WithLabelValues(kind).Inc()
	for i, a := range r.res.Artifacts {
		if a.Name == name {
			r.res.Artifacts[i] = Artifact{Name: name, Kind: kind, Path: path}
			return
		}
	}
	r.res.Artifacts = append(r.res.Artifacts, Artifact{Name: name, Kind: kind, Path: path})
}

func (r *Runner) writeSheets(sheets ...report.Sheet) error {
	for _, s := range sheets {
		path, err := s.WriteCSV(r.opts.CSVDir)
		if err != nil {
			return err
		}
		r.addArtifact(path)
		if r.opts.Console != nil {
			r.opts.Console.Table(s)
		}
	}
	return nil
}
