package controllers

import (
	"sync"
	"sync/atomic"

	"github.com/vnkhanh/survey-insights/analysis"
	"github.com/vnkhanh/survey-insights/pipeline"
	"github.com/vnkhanh/survey-insights/survey"
	"github.com/vnkhanh/survey-insights/utils"
)

// RunSettings are the server-wide defaults every uploaded run starts from.
type RunSettings struct {
	RunsDir        string
	MaxUploadBytes int64
	LowestCount    int
	Columns        survey.Columns
	Categories     []analysis.Category
	// Publisher is nil when artifact publishing is not configured.
	Publisher pipeline.Publisher
	// Defaults are applied under the options sent with each upload.
	Defaults *utils.RunOptions
}

var (
	settings = RunSettings{
		RunsDir:        "runs",
		MaxUploadBytes: 10 << 20,
		LowestCount:    5,
	}
	runs sync.WaitGroup
	// active counts runs between MarkProcessing and their final status.
	active atomic.Int64
)

// Configure replaces the run defaults. Call it before serving requests.
func Configure(s RunSettings) {
	if s.RunsDir == "" {
		s.RunsDir = "runs"
	}
	if s.MaxUploadBytes <= 0 {
		s.MaxUploadBytes = 10 << 20
	}
	settings = s
}

// WaitForRuns blocks until every run started by CreateRun has finished.
func WaitForRuns() {
	runs.Wait()
}
