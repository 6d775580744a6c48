package controllers

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	"github.com/vnkhanh/survey-insights/config"
	"github.com/vnkhanh/survey-insights/models"
	"github.com/vnkhanh/survey-insights/store"
	"github.com/vnkhanh/survey-insights/survey"
	"github.com/vnkhanh/survey-insights/utils"
)

func setupRunDB(t *testing.T) *store.Store {
	t.Helper()
	db, err := config.OpenDB(config.DatabaseConfig{Driver: "sqlite", DSN: filepath.Join(t.TempDir(), "runs.db")})
	require.NoError(t, err)
	prevDB, prevSettings := config.DB, settings
	config.DB = db
	config.SetLogger(zaptest.NewLogger(t))
	Configure(RunSettings{RunsDir: t.TempDir(), LowestCount: 5, Columns: survey.DefaultColumns()})
	t.Cleanup(func() {
		config.DB, settings = prevDB, prevSettings
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return store.New(db)
}

func queueRun(t *testing.T, s *store.Store, jobID string) string {
	t.Helper()
	dir := filepath.Join(settings.RunsDir, jobID)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	csv, err := os.ReadFile(filepath.Join("..", "analysis", "testdata", "survey.csv"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, inputFile), csv, 0o644))
	require.NoError(t, s.CreateRun(&models.AnalysisRun{JobID: jobID, OutputDir: dir}))
	return dir
}

func quickOptions() *utils.RunOptions {
	skip, workbook, publish := true, false, false
	return &utils.RunOptions{SkipCharts: &skip, Workbook: &workbook, Publish: &publish}
}

func TestProcessRun_Done(t *testing.T) {
	s := setupRunDB(t)
	dir := queueRun(t, s, "job-ok")

	runs.Add(1)
	processRun("job-ok", dir, quickOptions())

	run, err := s.GetRun("job-ok")
	require.NoError(t, err)
	assert.Equal(t, models.RunDone, run.Status)
	rows, err := s.Responses("job-ok")
	require.NoError(t, err)
	assert.Len(t, rows, 10)
	assert.Zero(t, active.Load())
}

func TestProcessRun_CannotStart(t *testing.T) {
	s := setupRunDB(t)
	dir := queueRun(t, s, "job-stuck")
	require.NoError(t, config.DB.Callback().Update().Before("gorm:update").Register("test:fail_processing", func(tx *gorm.DB) {
		if m, ok := tx.Statement.Dest.(map[string]interface{}); ok && m["status"] == models.RunProcessing {
			tx.AddError(errors.New("db unavailable"))
		}
	}))

	runs.Add(1)
	processRun("job-stuck", dir, quickOptions())

	run, err := s.GetRun("job-stuck")
	require.NoError(t, err)
	assert.Equal(t, models.RunFailed, run.Status)
	require.NotNil(t, run.ErrorMsg)
	assert.Contains(t, *run.ErrorMsg, "db unavailable")
	rows, err := s.Responses("job-stuck")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestPipelineOptions_ColumnsSitOnServerColumns(t *testing.T) {
	server := survey.DefaultColumns()
	server.NPS = "Recommend score"
	prev := settings
	t.Cleanup(func() { settings = prev })
	Configure(RunSettings{Columns: server, LowestCount: 5})

	upload, err := utils.ParseRunOptions([]byte(`{"columns":{"track":"Team"}}`))
	require.NoError(t, err)
	opts := utils.MergeRunOptions(settings.Defaults, upload)

	got := pipelineOptions("job-1", "runs/job-1", opts)

	assert.Equal(t, "Team", got.Columns.Track)
	assert.Equal(t, "Recommend score", got.Columns.NPS)
	assert.Equal(t, server.Improve, got.Columns.Improve)
	assert.Equal(t, filepath.Join("runs/job-1", inputFile), got.Source)
}

func TestPipelineOptions_NoUploadColumns(t *testing.T) {
	server := survey.DefaultColumns()
	server.Track = "Cohort"
	prev := settings
	t.Cleanup(func() { settings = prev })
	Configure(RunSettings{Columns: server})

	got := pipelineOptions("job-2", "runs/job-2", &utils.RunOptions{})

	assert.Equal(t, "Cohort", got.Columns.Track)
	assert.False(t, got.SkipCharts)
	assert.False(t, got.SkipWorkbook)
	assert.Nil(t, got.Publisher)
}
