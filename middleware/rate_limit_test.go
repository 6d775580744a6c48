package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func limitedRouter(perMin, burst int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/runs", RateLimitRunsCreate(perMin, burst), func(c *gin.Context) {
		c.Status(http.StatusAccepted)
	})
	return r
}

func post(r *gin.Engine, ip string) int {
	req := httptest.NewRequest(http.MethodPost, "/runs", nil)
	req.RemoteAddr = ip + ":1234"
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec.Code
}

func TestRateLimitRunsCreate_Burst(t *testing.T) {
	r := limitedRouter(1, 2)

	assert.Equal(t, http.StatusAccepted, post(r, "10.0.0.1"))
	assert.Equal(t, http.StatusAccepted, post(r, "10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, post(r, "10.0.0.1"))
	// Other clients have their own budget.
	assert.Equal(t, http.StatusAccepted, post(r, "10.0.0.2"))
}

func TestRateLimitRunsCreate_Disabled(t *testing.T) {
	r := limitedRouter(0, 0)

	for range 20 {
		assert.Equal(t, http.StatusAccepted, post(r, "10.0.0.1"))
	}
}
