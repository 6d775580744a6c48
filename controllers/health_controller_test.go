package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnkhanh/survey-insights/config"
)

func health(t *testing.T) (int, map[string]any) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	HealthCheck(c)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestHealthCheck_OK(t *testing.T) {
	setupRunDB(t)

	code, body := health(t)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])
	assert.EqualValues(t, 0, body["active_runs"])
	assert.DirExists(t, settings.RunsDir)
}

func TestHealthCheck_NoDB(t *testing.T) {
	prevDB, prevSettings := config.DB, settings
	t.Cleanup(func() { config.DB, settings = prevDB, prevSettings })
	config.DB = nil
	Configure(RunSettings{RunsDir: filepath.Join(t.TempDir(), "runs")})

	code, body := health(t)

	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "degraded", body["status"])
	assert.Equal(t, "error: not connected", body["db"])
	assert.Equal(t, "ok", body["runs_dir"])
}
