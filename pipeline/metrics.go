package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// stepTotal counts pipeline steps by step and result
	stepTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "survey_pipeline_step_total",
		Help: "Pipeline steps executed by step and result",
	}, []string{"step", "result"})

	stepDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "survey_pipeline_step_duration_seconds",
		Help:    "Pipeline step duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 14),
	}, []string{"step"})

	responsesImported = promauto.NewCounter(prometheus.CounterOpts{
		Name: "survey_responses_imported_total",
		Help: "Survey responses read by the import step",
	})

	artifactsWritten = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "survey_artifacts_written_total",
		Help: "Files written by kind",
	}, []string{"kind"})
)
