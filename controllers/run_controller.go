package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vnkhanh/survey-insights/config"
	"github.com/vnkhanh/survey-insights/middleware"
	"github.com/vnkhanh/survey-insights/models"
	"github.com/vnkhanh/survey-insights/pipeline"
	"github.com/vnkhanh/survey-insights/store"
	"github.com/vnkhanh/survey-insights/utils"
)

const (
	inputFile  = "input.csv"
	runTimeout = 10 * time.Minute
)

// POST /api/runs
func CreateRun(c *gin.Context) {
	if c.Request.ContentLength > settings.MaxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"message": "File is too large"})
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, settings.MaxUploadBytes)

	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"message": "File is too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": "A CSV file is required in the file field"})
		return
	}
	if !strings.EqualFold(filepath.Ext(fh.Filename), ".csv") {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Only .csv exports are accepted"})
		return
	}

	opts, err := utils.ParseRunOptions([]byte(c.PostForm("options")))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Invalid options", "error": err.Error()})
		return
	}
	opts = utils.MergeRunOptions(settings.Defaults, opts)
	optsJSON, err := utils.RunOptionsJSON(opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Cannot encode options"})
		return
	}

	jobID := uuid.New().String()
	dir := filepath.Join(settings.RunsDir, jobID)
	if err := c.SaveUploadedFile(fh, filepath.Join(dir, inputFile)); err != nil {
		config.Log.Errorw("save upload failed", "job_id", jobID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Cannot store the upload"})
		return
	}

	run := models.AnalysisRun{
		JobID:       jobID,
		SourceName:  fh.Filename,
		CreatedBy:   middleware.Subject(c),
		Status:      models.RunQueued,
		OptionsJSON: optsJSON,
		OutputDir:   dir,
	}
	if err := store.New(config.DB).CreateRun(&run); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "DB error"})
		return
	}

	runs.Add(1)
	go processRun(jobID, dir, opts)

	c.JSON(http.StatusAccepted, gin.H{
		"job_id": jobID,
		"status": models.RunQueued,
	})
}

// GET /api/runs
func ListRuns(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit = min(max(limit, 1), 100)
	offset = max(offset, 0)

	owner := middleware.Subject(c)
	if middleware.IsAdmin(c) {
		owner = ""
	}
	list, total, err := store.New(config.DB).ListRuns(owner, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "DB error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"runs":   list,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

// GET /api/runs/:job_id
func GetRun(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.Run(c))
}

// GET /api/runs/:job_id/nps
func GetRunNPS(c *gin.Context) {
	run := middleware.Run(c)
	if run.Status != models.RunDone {
		c.JSON(http.StatusConflict, gin.H{
			"message": "Run has not finished",
			"status":  run.Status,
			"error":   run.ErrorMsg,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"job_id":       run.JobID,
		"nps":          run.OverallNPS,
		"mean":         run.MeanScore,
		"responses":    run.Responses,
		"participants": run.Participants,
		"tracks":       run.Tracks,
	})
}

// GET /api/runs/:job_id/responses
func ListRunResponses(c *gin.Context) {
	run := middleware.Run(c)
	rows, err := store.New(config.DB).Responses(run.JobID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "DB error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"responses": rows, "total": len(rows)})
}

// processRun runs the pipeline for an uploaded survey and records the outcome.
func processRun(jobID, dir string, opts *utils.RunOptions) {
	defer runs.Done()
	log := config.Log.With("job_id", jobID)
	s := store.New(config.DB)

	active.Add(1)
	defer active.Add(-1)

	err := s.MarkProcessing(jobID)
	var res *pipeline.Result
	if err == nil {
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()
		res, err = pipeline.New(pipelineOptions(jobID, dir, opts), log).Run(ctx)
	}
	if err == nil {
		err = s.Complete(jobID, res.Summary, artifactModels(res.Artifacts), res.Responses)
	}
	if err != nil {
		log.Errorw("run failed", "error", err)
		if merr := s.MarkFailed(jobID, err); merr != nil {
			log.Errorw("cannot mark run failed", "error", merr)
		}
		return
	}
	for _, w := range res.Warnings {
		log.Warnw("run warning", "warning", w)
	}
	log.Infow("run done", "nps", res.Summary.Overall.NPS, "artifacts", len(res.Artifacts))
}

func pipelineOptions(jobID, dir string, opts *utils.RunOptions) pipeline.Options {
	o := pipeline.Options{
		Source:        filepath.Join(dir, inputFile),
		CSVDir:        filepath.Join(dir, "csv"),
		ImagesDir:     filepath.Join(dir, "images"),
		Columns:       settings.Columns,
		Categories:    settings.Categories,
		LowestCount:   settings.LowestCount,
		SkipCharts:    utils.Bool(opts.SkipCharts, false),
		SkipWorkbook:  !utils.Bool(opts.Workbook, true),
		PublishFolder: jobID,
	}
	if opts.LowestCount.Value != nil {
		o.LowestCount = *opts.LowestCount.Value
	}
	if opts.Columns != nil {
		o.Columns = opts.Columns.Over(settings.Columns)
	}
	if settings.Publisher != nil && utils.Bool(opts.Publish, true) {
		o.Publisher = settings.Publisher
	}
	return o
}

func artifactModels(as []pipeline.Artifact) []models.Artifact {
	out := make([]models.Artifact, 0, len(as))
	for _, a := range as {
		m := models.Artifact{Name: a.Name, Kind: a.Kind, Path: a.Path}
		if fi, err := os.Stat(a.Path); err == nil {
			m.Size = fi.Size()
		}
		if a.URL != "" {
			url := a.URL
			m.PublicURL = &url
		}
		out = append(out, m)
	}
	return out
}

func runError(c *gin.Context, err error) {
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"message": fmt.Sprintf("DB error: %v", err)})
}
