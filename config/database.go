package config

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vnkhanh/survey-insights/models"
)

// DB is the shared connection used by the HTTP handlers.
var DB *gorm.DB

// DatabaseConfig selects sqlite (default) or postgres.
//
// Password is a secret and should not be logged.
type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"`
	DSN      string `mapstructure:"dsn"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
}

const defaultSQLitePath = "survey_insights.db"

// Dialector returns the gorm dialector for the configured driver. A postgres
// DSN is assembled from the host fields when DSN is empty.
func (c DatabaseConfig) Dialector() (gorm.Dialector, error) {
	switch c.Driver {
	case "", "sqlite":
		dsn := c.DSN
		if dsn == "" {
			dsn = defaultSQLitePath
		}
		return sqlite.Open(dsn), nil
	case "postgres":
		dsn := c.DSN
		if dsn == "" {
			port := c.Port
			if port == "" {
				port = "5432"
			}
			dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
				c.Host, c.User, c.Password, c.Name, port)
		}
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", c.Driver)
	}
}

// OpenDB connects and migrates the schema.
func OpenDB(c DatabaseConfig) (*gorm.DB, error) {
	dialector, err := c.Dialector()
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the tables.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.AnalysisRun{},
		&models.TrackScore{},
		&models.Artifact{},
		&models.Response{},
	)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// ConnectDB opens the database and stores it in DB.
func ConnectDB(c DatabaseConfig) error {
	db, err := OpenDB(c)
	if err != nil {
		return err
	}
	DB = db
	driver := c.Driver
	if driver == "" {
		driver = "sqlite"
	}
	Log.Infow("connected to database", "driver", driver)
	return nil
}
