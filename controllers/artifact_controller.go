package controllers

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/survey-insights/config"
	"github.com/vnkhanh/survey-insights/middleware"
	"github.com/vnkhanh/survey-insights/models"
	"github.com/vnkhanh/survey-insights/store"
	"github.com/vnkhanh/survey-insights/utils"
)

// GET /api/runs/:job_id/artifacts
func ListArtifacts(c *gin.Context) {
	run := middleware.Run(c)
	artifacts := run.Artifacts
	if artifacts == nil {
		artifacts = []models.Artifact{}
	}
	c.JSON(http.StatusOK, gin.H{
		"job_id":    run.JobID,
		"status":    run.Status,
		"artifacts": artifacts,
	})
}

// GET /api/runs/:job_id/artifacts/:name and GET /api/shared/:job_id/artifacts/:name.
// Files that are gone locally but were published redirect to their public URL.
func DownloadArtifact(c *gin.Context) {
	run := middleware.Run(c)
	a, err := store.New(config.DB).Artifact(run.JobID, c.Param("name"))
	if err != nil {
		runError(c, err)
		return
	}
	if _, err := os.Stat(a.Path); err != nil {
		if a.PublicURL != nil {
			c.Redirect(http.StatusFound, *a.PublicURL)
			return
		}
		c.JSON(http.StatusGone, gin.H{"message": "Artifact file is no longer available"})
		return
	}
	if a.Kind == "png" {
		c.File(a.Path)
		return
	}
	c.FileAttachment(a.Path, a.Name)
}

// POST /api/runs/:job_id/share
// Issues a new read-only token; earlier tokens stop working.
func ShareRun(c *gin.Context) {
	run := middleware.Run(c)

	token, err := utils.GenerateShareToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Cannot create token"})
		return
	}
	hash, err := utils.HashShareToken(token)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Cannot create token"})
		return
	}
	if err := store.New(config.DB).SetShareToken(run.JobID, hash); err != nil {
		runError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"job_id":    run.JobID,
		"token":     token,
		"share_url": fmt.Sprintf("/api/shared/%s/artifacts/{name}?token=%s", run.JobID, token),
	})
}
