// Package store persists analysis runs, their track scores, artifacts and imported rows.
package store

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/vnkhanh/survey-insights/analysis"
	"github.com/vnkhanh/survey-insights/models"
	"github.com/vnkhanh/survey-insights/survey"
)

// ErrNotFound is returned when a run or artifact does not exist.
var ErrNotFound = errors.New("not found")

const responseBatch = 100

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// CreateRun inserts a queued run.
func (s *Store) CreateRun(run *models.AnalysisRun) error {
	if run.Status == "" {
		run.Status = models.RunQueued
	}
	return s.db.Create(run).Error
}

// GetRun loads a run with its tracks and artifacts.
func (s *Store) GetRun(jobID string) (*models.AnalysisRun, error) {
	var run models.AnalysisRun
	err := s.db.
		Preload("Tracks", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Artifacts", func(db *gorm.DB) *gorm.DB { return db.Order("name") }).
		First(&run, "job_id = ?", jobID).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &run, nil
}

// ListRuns returns runs newest first, with the total count. A non-empty
// createdBy limits the list to that user's runs.
func (s *Store) ListRuns(createdBy string, limit, offset int) ([]models.AnalysisRun, int64, error) {
	q := s.db.Model(&models.AnalysisRun{})
	if createdBy != "" {
		q = q.Where("created_by = ?", createdBy)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var runs []models.AnalysisRun
	err := q.Order("created_at desc").Order("job_id").Limit(limit).Offset(offset).Find(&runs).Error
	return runs, total, err
}

func (s *Store) setStatus(jobID string, fields map[string]interface{}) error {
	res := s.db.Model(&models.AnalysisRun{}).Where("job_id = ?", jobID).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) MarkProcessing(jobID string) error {
	return s.setStatus(jobID, map[string]interface{}{"status": models.RunProcessing})
}

// MarkFailed records why a run stopped.
func (s *Store) MarkFailed(jobID string, cause error) error {
	return s.setStatus(jobID, map[string]interface{}{
		"status":      models.RunFailed,
		"error_msg":   cause.Error(),
		"finished_at": time.Now(),
	})
}

// Complete stores the NPS summary, artifacts and imported rows and marks the
// run done. Nothing is kept when any part fails.
func (s *Store) Complete(jobID string, sum *analysis.Summary, artifacts []models.Artifact, rs []survey.Response) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		fields := map[string]interface{}{
			"status":      models.RunDone,
			"finished_at": time.Now(),
		}
		if sum != nil {
			fields["participants"] = sum.Participants
			fields["responses"] = sum.Overall.Responses
			fields["overall_nps"] = sum.Overall.NPS
			fields["mean_score"] = sum.Overall.Mean

			if err := tx.Where("job_id = ?", jobID).Delete(&models.TrackScore{}).Error; err != nil {
				return err
			}
			scores := make([]models.TrackScore, len(sum.Tracks))
			for i, t := range sum.Tracks {
				scores[i] = models.TrackScore{
					JobID:      jobID,
					Position:   i,
					Track:      t.Track,
					NPS:        t.NPS,
					Responses:  t.Responses,
					Promoters:  t.Promoters,
					Passives:   t.Passives,
					Detractors: t.Detractors,
					Mean:       t.Mean,
				}
			}
			if len(scores) > 0 {
				if err := tx.Create(&scores).Error; err != nil {
					return fmt.Errorf("save track scores: %w", err)
				}
			}
		}

		for i := range artifacts {
			artifacts[i].JobID = jobID
		}
		if len(artifacts) > 0 {
			if err := tx.Create(&artifacts).Error; err != nil {
				return fmt.Errorf("save artifacts: %w", err)
			}
		}

		if err := saveResponses(tx, jobID, rs); err != nil {
			return fmt.Errorf("save responses: %w", err)
		}

		res := tx.Model(&models.AnalysisRun{}).Where("job_id = ?", jobID).Updates(fields)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func saveResponses(tx *gorm.DB, jobID string, rs []survey.Response) error {
	if len(rs) == 0 {
		return nil
	}
	rows := make([]models.Response, len(rs))
	for i, r := range rs {
		rows[i] = models.NewResponse(jobID, r)
	}
	return tx.CreateInBatches(&rows, responseBatch).Error
}

// Responses returns the stored rows of a run in file order.
func (s *Store) Responses(jobID string) ([]models.Response, error) {
	var rows []models.Response
	err := s.db.Where("job_id = ?", jobID).Order("row_index").Find(&rows).Error
	return rows, err
}

// Artifact looks up one artifact of a run by file name.
func (s *Store) Artifact(jobID, name string) (*models.Artifact, error) {
	var a models.Artifact
	if err := s.db.First(&a, "job_id = ? AND name = ?", jobID, name).Error; err != nil {
		return nil, notFound(err)
	}
	return &a, nil
}

// SetShareToken stores the hash of the run's share token, replacing any earlier one.
func (s *Store) SetShareToken(jobID, hash string) error {
	return s.setStatus(jobID, map[string]interface{}{"share_token_hash": hash})
}
