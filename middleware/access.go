package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/survey-insights/config"
	"github.com/vnkhanh/survey-insights/models"
	"github.com/vnkhanh/survey-insights/store"
	"github.com/vnkhanh/survey-insights/utils"
)

const (
	HeaderShareToken = "X-Share-Token"
	CtxRun           = "runObj"
)

func loadRun(c *gin.Context) (*models.AnalysisRun, bool) {
	run, err := store.New(config.DB).GetRun(c.Param("job_id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "Run not found"})
			return nil, false
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Cannot read run"})
		return nil, false
	}
	return run, true
}

func isOwner(c *gin.Context, run *models.AnalysisRun) bool {
	sub := Subject(c)
	return sub != "" && (run.CreatedBy == sub || IsAdmin(c))
}

// CheckRunOwner loads the run into the context; only its creator or an admin
// may pass.
func CheckRunOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		run, ok := loadRun(c)
		if !ok {
			return
		}
		if !isOwner(c, run) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Not allowed to access this run"})
			return
		}
		c.Set(CtxRun, run)
		c.Next()
	}
}

// CheckRunReader passes if (1) the JWT subject owns the run or (2) a valid
// share token is sent in the X-Share-Token header or the token query parameter.
func CheckRunReader() gin.HandlerFunc {
	return func(c *gin.Context) {
		run, ok := loadRun(c)
		if !ok {
			return
		}
		if isOwner(c, run) {
			c.Set(CtxRun, run)
			c.Next()
			return
		}

		token := c.GetHeader(HeaderShareToken)
		if token == "" {
			token = c.Query("token")
		}
		if token != "" && utils.VerifyShareToken(run.ShareTokenHash, token) {
			c.Set(CtxRun, run)
			c.Next()
			return
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Missing or invalid share token"})
	}
}

// Run returns the run loaded by CheckRunOwner or CheckRunReader.
func Run(c *gin.Context) *models.AnalysisRun {
	return c.MustGet(CtxRun).(*models.AnalysisRun)
}
