package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/vnkhanh/survey-insights/models"
	"github.com/vnkhanh/survey-insights/survey"
)

func TestLoadEnv_Defaults(t *testing.T) {
	cfg, err := LoadEnv()
	require.NoError(t, err)

	assert.Equal(t, "csv", cfg.CSVDir)
	assert.Equal(t, "images", cfg.ImagesDir)
	assert.Equal(t, "csv/imported_data.csv", cfg.Backup)
	assert.Equal(t, 5, cfg.LowestCount)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, survey.DefaultColumns(), cfg.Columns)
	assert.False(t, cfg.Storage.Enabled())
	assert.Equal(t, 10, cfg.Server.RateLimitPerMin)
	assert.Equal(t, 5, cfg.Server.RateLimitBurst)
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "survey.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
csv_dir: out/csv
columns:
  track: Cohort
database:
  driver: postgres
  host: db.internal
server:
  rate_limit_per_min: 30
`), 0o644))
	t.Setenv("SURVEY_IMAGES_DIR", "out/img")
	t.Setenv("DB_USER", "analyst")
	t.Setenv("JWT_SECRET", "s3cret")

	v, err := New()
	require.NoError(t, err)
	cfg, err := Load(v, path)
	require.NoError(t, err)

	assert.Equal(t, "out/csv", cfg.CSVDir)
	assert.Equal(t, "out/img", cfg.ImagesDir)
	assert.Equal(t, "Cohort", cfg.Columns.Track)
	assert.Equal(t, survey.DefaultColumns().NPS, cfg.Columns.NPS)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "analyst", cfg.Database.User)
	assert.Equal(t, "s3cret", cfg.Server.JWTSecret)
	assert.Equal(t, 30, cfg.Server.RateLimitPerMin)
	assert.Equal(t, 5, cfg.Server.RateLimitBurst)
}

func TestLoad_MissingFile(t *testing.T) {
	v, err := New()
	require.NoError(t, err)

	_, err = Load(v, filepath.Join(t.TempDir(), "nope.yaml"))

	assert.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SURVEY_TEST_DOTENV=from-file\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("SURVEY_TEST_DOTENV") })

	require.NoError(t, LoadDotEnv(path, filepath.Join(t.TempDir(), "missing.env")))

	assert.Equal(t, "from-file", os.Getenv("SURVEY_TEST_DOTENV"))
}

func TestNewLogger(t *testing.T) {
	l, err := NewLogger("debug", true)
	require.NoError(t, err)
	assert.NotNil(t, l)

	_, err = NewLogger("loud", false)
	assert.Error(t, err)
}

func TestDialector(t *testing.T) {
	_, err := DatabaseConfig{Driver: "mysql"}.Dialector()
	assert.Error(t, err)

	d, err := DatabaseConfig{Driver: "postgres", Host: "h", Name: "n"}.Dialector()
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())
}

func TestConnectDB_SQLite(t *testing.T) {
	SetLogger(zaptest.NewLogger(t))
	t.Cleanup(func() { DB = nil })

	require.NoError(t, ConnectDB(DatabaseConfig{DSN: filepath.Join(t.TempDir(), "test.db")}))

	assert.True(t, DB.Migrator().HasTable(&models.AnalysisRun{}))
	assert.True(t, DB.Migrator().HasTable(&models.Response{}))
}
