package controllers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/survey-insights/config"
)

// GET /health
func HealthCheck(c *gin.Context) {
	response := gin.H{
		"status":      "ok",
		"db":          "ok",
		"runs_dir":    "ok",
		"active_runs": active.Load(),
	}
	healthy := true

	if err := pingDB(); err != "" {
		response["db"] = err
		healthy = false
	}
	if err := os.MkdirAll(settings.RunsDir, 0o755); err != nil {
		response["runs_dir"] = "error: " + err.Error()
		healthy = false
	}

	if !healthy {
		response["status"] = "degraded"
		c.JSON(http.StatusServiceUnavailable, response)
		return
	}
	c.JSON(http.StatusOK, response)
}

func pingDB() string {
	if config.DB == nil {
		return "error: not connected"
	}
	sqlDB, err := config.DB.DB()
	if err != nil {
		return "error: cannot get DB instance"
	}
	if err := sqlDB.Ping(); err != nil {
		return "error: cannot connect to DB"
	}
	return ""
}
