package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/vnkhanh/survey-insights/charts"
	"github.com/vnkhanh/survey-insights/report"
	"github.com/vnkhanh/survey-insights/survey"
)

func newRunner(t *testing.T, mutate func(*Options)) (*Runner, Options) {
	t.Helper()
	dir := t.TempDir()
	opts := Options{
		Source:    filepath.Join("testdata", "survey.csv"),
		Backup:    filepath.Join(dir, "csv", "imported_data.csv"),
		CSVDir:    filepath.Join(dir, "csv"),
		ImagesDir: filepath.Join(dir, "images"),
	}
	if mutate != nil {
		mutate(&opts)
	}
	return New(opts, zaptest.NewLogger(t).Sugar()), opts
}

type fakePublisher struct {
	folders []string
	files   []string
	err     error
}

func (f *fakePublisher) Publish(_ context.Context, folder, localPath string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.folders = append(f.folders, folder)
	f.files = append(f.files, filepath.Base(localPath))
	return "https://files.example/" + folder + "/" + filepath.Base(localPath), nil
}

func TestRun_WritesEveryOutput(t *testing.T) {
	r, opts := newRunner(t, nil)

	res, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)

	require.NotNil(t, res.Summary)
	assert.InDelta(t, 11.11, res.Summary.Overall.NPS, 0.01)
	assert.Equal(t, []string{"EXEC", "PROD", "DEV"}, res.Tracks)
	assert.Len(t, res.Responses, 10)

	csvs := []string{
		report.NPSFile, report.ImprovementsFile, report.TrackImprovementsFile,
		report.SessionRankingsFile, report.LowestFile, report.LowScorerIssuesFile,
		report.TrackSummaryFile, report.TrackKeywordsFile, report.TrackReviewsFile,
		report.SessionAnalysisFile, report.SessionKeywordsFile, report.SessionReviewsFile,
		report.TrackAnalysisFile, report.TrackMotivationKeywordFile, report.TrackTablesFile,
		report.WorkbookFile,
	}
	for _, name := range csvs {
		a, ok := res.Artifact(name)
		require.True(t, ok, name)
		assert.FileExists(t, filepath.Join(opts.CSVDir, name))
		assert.Equal(t, filepath.Join(opts.CSVDir, name), a.Path)
	}
	for _, name := range chartOrder {
		_, ok := res.Artifact(name)
		assert.True(t, ok, name)
		assert.FileExists(t, filepath.Join(opts.ImagesDir, name))
	}
	assert.FileExists(t, opts.Backup)

	a, _ := res.Artifact(charts.NPSAnalysisFile)
	assert.Equal(t, "png", a.Kind)
	assert.Empty(t, a.URL)
}

func TestRun_SkipChartsAndWorkbook(t *testing.T) {
	r, opts := newRunner(t, func(o *Options) {
		o.SkipCharts = true
		o.SkipWorkbook = true
	})

	res, err := r.Run(context.Background())
	require.NoError(t, err)
	_, ok := res.Artifact(report.WorkbookFile)
	assert.False(t, ok)
	assert.NoDirExists(t, opts.ImagesDir)
}

func TestRunStep_ImportsFirst(t *testing.T) {
	r, opts := newRunner(t, nil)

	res, err := r.RunStep(context.Background(), StepNPS)
	require.NoError(t, err)
	require.NotNil(t, res.Import)
	require.NotNil(t, res.Summary)
	assert.FileExists(t, filepath.Join(opts.CSVDir, report.NPSFile))
	assert.Nil(t, res.Improvements)

	tbl, err := survey.ReadCSV(filepath.Join(opts.CSVDir, report.NPSFile))
	require.NoError(t, err)
	assert.Equal(t, "Overall", tbl.Rows[0][0])
	assert.Equal(t, 4, tbl.Len())
}

func TestRunStep_Unknown(t *testing.T) {
	r, _ := newRunner(t, nil)

	_, err := r.RunStep(context.Background(), "wordcloud")
	require.ErrorIs(t, err, ErrUnknownStep)
	assert.Nil(t, r.Result().Import)
}

func TestRun_MissingSource(t *testing.T) {
	r, _ := newRunner(t, func(o *Options) { o.Source = filepath.Join(t.TempDir(), "nope.csv") })

	_, err := r.Run(context.Background())
	require.ErrorIs(t, err, survey.ErrSourceNotFound)
	assert.Contains(t, err.Error(), "import: ")
}

func TestRun_UsesProvidedTable(t *testing.T) {
	tbl, err := survey.ReadCSV(filepath.Join("testdata", "survey.csv"))
	require.NoError(t, err)
	r, opts := newRunner(t, func(o *Options) {
		o.Source = "upload.csv"
		o.Table = tbl
		o.SkipCharts = true
	})

	res, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "upload.csv", res.Import.Source)
	assert.FileExists(t, opts.Backup)
}

func TestRun_MissingScoreColumn(t *testing.T) {
	tbl := survey.NewTable([]string{"TRACK", "Other"}, [][]string{{"EXEC", "x"}})
	r, _ := newRunner(t, func(o *Options) { o.Table = tbl; o.Backup = "" })

	_, err := r.Run(context.Background())
	require.ErrorIs(t, err, survey.ErrMissingColumn)
}

func TestRun_Publishes(t *testing.T) {
	pub := &fakePublisher{}
	r, _ := newRunner(t, func(o *Options) {
		o.SkipCharts = true
		o.Publisher = pub
		o.PublishFolder = "job-1"
	})

	res, err := r.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, pub.files, len(res.Artifacts))
	for _, a := range res.Artifacts {
		assert.Equal(t, "https://files.example/job-1/"+a.Name, a.URL)
	}
	assert.Contains(t, pub.files, report.WorkbookFile)
}

func TestRun_PublishFailure(t *testing.T) {
	r, _ := newRunner(t, func(o *Options) {
		o.SkipCharts = true
		o.Publisher = &fakePublisher{err: errors.New("bucket gone")}
	})

	_, err := r.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "publish: publish nps_results.csv: bucket gone")
}

func TestRun_CanceledContext(t *testing.T) {
	r, opts := newRunner(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	_, statErr := os.Stat(opts.CSVDir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRun_Console(t *testing.T) {
	out := filepath.Join(t.TempDir(), "console.txt")
	f, err := os.Create(out)
	require.NoError(t, err)
	defer f.Close()

	r, _ := newRunner(t, func(o *Options) {
		o.SkipCharts = true
		o.Console = report.NewConsole(f)
	})
	_, err = r.Run(context.Background())
	require.NoError(t, err)

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(b), "Overall NPS")
	assert.Contains(t, string(b), "Improvement")
}
