package database

import (
	"fmt"
	"time"

	"github.com/vladimiradmaev/cgm-simulator/internal/config"
	"github.com/vladimiradmaev/cgm-simulator/internal/database/migrations"
	"github.com/vladimiradmaev/cgm-simulator/internal/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	TelegramID int64 `gorm:"uniqueIndex"`
	Username   string
	FirstName  string
	LastName   string
}

// GlucoseReading is a stored CGM sample
type GlucoseReading struct {
	gorm.Model
	UserID      uint `gorm:"index:idx_glucose_readings_user_taken,priority:1"`
	User        User
	Value       float64
	Unit        string `gorm:"size:16;default:'mg/dL'"`
	ReadingType string `gorm:"size:32"`
	Source      string `gorm:"size:16"`
	DeviceID    string `gorm:"size:64"`
	Trend       string `gorm:"size:32"`
	AlertType   string `gorm:"size:16"`
	IsLive      bool
	Notes       string
	TakenAt     time.Time `gorm:"index:idx_glucose_readings_user_taken,priority:2"`
}

// DSN builds a libpq connection string from cfg
func DSN(cfg config.DBConfig) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)
}

func NewPostgresDB(cfg config.DBConfig) (*gorm.DB, error) {
	return Open(DSN(cfg))
}

// Open connects to dsn and brings the schema up to date
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Tables first, the SQL migrations add constraints on top of them
	if err := db.AutoMigrate(&User{}, &GlucoseReading{}); err != nil {
		return nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	if err := migrations.LoadSQLMigrations(); err != nil {
		return nil, fmt.Errorf("failed to load migrations: %w", err)
	}

	if err := migrations.RunMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("Database connection established and migrations completed")
	return db, nil
}
