// Package config loads settings and holds the process-wide database and logger.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/vnkhanh/survey-insights/survey"
)

// Config is the full application configuration.
type Config struct {
	Source         string         `mapstructure:"source"`
	Backup         string         `mapstructure:"backup"`
	CSVDir         string         `mapstructure:"csv_dir"`
	ImagesDir      string         `mapstructure:"images_dir"`
	CategoriesFile string         `mapstructure:"categories_file"`
	LowestCount    int            `mapstructure:"lowest_count"`
	Columns        survey.Columns `mapstructure:"columns"`
	Database       DatabaseConfig `mapstructure:"database"`
	Log            LogConfig      `mapstructure:"log"`
	Server         ServerConfig   `mapstructure:"server"`
	Sheets         SheetsConfig   `mapstructure:"sheets"`
	Storage        StorageConfig  `mapstructure:"storage"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	Dev   bool   `mapstructure:"dev"`
}

// ServerConfig configures the HTTP API.
//
// JWTSecret is a secret and should not be logged.
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	JWTSecret      string   `mapstructure:"jwt_secret"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	RunsDir        string   `mapstructure:"runs_dir"`
	MaxUploadMB    int64    `mapstructure:"max_upload_mb"`
	SkipCharts     bool     `mapstructure:"skip_charts"`
	// RateLimitPerMin caps run uploads per client IP; 0 turns the limit off.
	RateLimitPerMin int `mapstructure:"rate_limit_per_min"`
	RateLimitBurst  int `mapstructure:"rate_limit_burst"`
}

// SheetsConfig points at a Google Sheet to import instead of a CSV file.
type SheetsConfig struct {
	SpreadsheetID   string `mapstructure:"spreadsheet_id"`
	Range           string `mapstructure:"range"`
	APIKey          string `mapstructure:"api_key"`
	CredentialsFile string `mapstructure:"credentials_file"`
}

// StorageConfig is the Supabase bucket artifacts are published to.
// An empty URL disables publishing.
type StorageConfig struct {
	URL    string `mapstructure:"url"`
	Key    string `mapstructure:"key"`
	Bucket string `mapstructure:"bucket"`
}

// Enabled reports whether artifacts should be published.
func (s StorageConfig) Enabled() bool {
	return s.URL != "" && s.Key != "" && s.Bucket != ""
}

var defaults = map[string]any{
	"source":                    "data.csv",
	"backup":                    "csv/imported_data.csv",
	"csv_dir":                   "csv",
	"images_dir":                "images",
	"categories_file":           "",
	"lowest_count":              5,
	"database.driver":           "sqlite",
	"database.dsn":              "",
	"log.level":                 "info",
	"log.dev":                   false,
	"server.port":               "8080",
	"server.allowed_origins":    []string{"http://localhost:5173"},
	"server.runs_dir":           "runs",
	"server.max_upload_mb":      10,
	"server.skip_charts":        false,
	"server.rate_limit_per_min": 10,
	"server.rate_limit_burst":   5,
	"sheets.spreadsheet_id":     "",
	"sheets.range":              "A:Z",
	"sheets.api_key":            "",
	"sheets.credentials_file":   "",
	"storage.bucket":            "survey-insights",
}

func columnDefaults() map[string]string {
	c := survey.DefaultColumns()
	return map[string]string{
		"columns.track":               c.Track,
		"columns.nps":                 c.NPS,
		"columns.improve":             c.Improve,
		"columns.valuable":            c.Valuable,
		"columns.favorite":            c.Favorite,
		"columns.favorite_motivation": c.FavoriteMotivation,
		"columns.second_favorite":     c.SecondFavorite,
		"columns.second_motivation":   c.SecondMotivation,
		"columns.anything_else":       c.AnythingElse,
	}
}

// envBindings maps config keys to environment variables. The first name is
// the preferred one; later names are the plain names deployments already use.
var envBindings = map[string][]string{
	"database.host":     {"SURVEY_DATABASE_HOST", "DB_HOST"},
	"database.port":     {"SURVEY_DATABASE_PORT", "DB_PORT"},
	"database.user":     {"SURVEY_DATABASE_USER", "DB_USER"},
	"database.password": {"SURVEY_DATABASE_PASSWORD", "DB_PASSWORD"},
	"database.name":     {"SURVEY_DATABASE_NAME", "DB_NAME"},
	"server.port":       {"SURVEY_SERVER_PORT", "PORT"},
	"server.jwt_secret": {"SURVEY_SERVER_JWT_SECRET", "JWT_SECRET"},
	"storage.url":       {"SURVEY_STORAGE_URL", "SUPABASE_URL"},
	"storage.key":       {"SURVEY_STORAGE_KEY", "SUPABASE_KEY"},
}

// New returns a viper instance with defaults, SURVEY_* environment variables
// and the legacy bindings applied. Flags may be bound to it before Load.
func New() (*viper.Viper, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	for k, val := range columnDefaults() {
		v.SetDefault(k, val)
	}
	v.SetEnvPrefix("SURVEY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, envs := range envBindings {
		if err := v.BindEnv(slices.Insert(slices.Clone(envs), 0, key)...); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// LoadDotEnv loads .env into the environment when present. Variables that are
// already set win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// Load reads filePath into v when the file exists and unmarshals the result.
// Environment variables override file values.
func Load(v *viper.Viper, filePath string) (*Config, error) {
	if filePath != "" {
		v.SetConfigFile(filePath)
		if _, err := os.Stat(filePath); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Columns = cfg.Columns.WithDefaults()
	if cfg.LowestCount <= 0 {
		cfg.LowestCount = 5
	}
	return cfg, nil
}

// LoadEnv builds the config from defaults and the environment only.
func LoadEnv() (*Config, error) {
	v, err := New()
	if err != nil {
		return nil, err
	}
	return Load(v, "")
}
