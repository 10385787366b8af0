package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/vladimiradmaev/cgm-simulator/internal/logger"
)

type Config struct {
	TelegramToken string
	MetricsAddr   string
	DB            DBConfig
	Redis         RedisConfig
	Logger        LoggerConfig
	Simulation    SimulationConfig
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig is optional: an empty Host keeps bot state in memory
type RedisConfig struct {
	Host string
	Port string
}

// Enabled reports whether a Redis host is configured
func (c RedisConfig) Enabled() bool {
	return c.Host != ""
}

type LoggerConfig struct {
	Level      logger.LogLevel
	OutputPath string
	Format     string
}

// SimulationConfig bounds and parameterizes CGM simulation runs
type SimulationConfig struct {
	Interval    time.Duration
	MaxHours    int
	DeviceID    string
	Seed        int64 // 0 derives a seed from the clock per run
	Strict      bool
	PreviewSize int
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return logger.LevelDebug
	case "info":
		return logger.LevelInfo
	case "warn", "warning":
		return logger.LevelWarn
	case "error":
		return logger.LevelError
	default:
		return logger.LevelInfo
	}
}

func Load() (*Config, error) {
	var errs []error

	intervalMinutes, err := strconv.Atoi(getEnvOrDefault("SIM_INTERVAL_MINUTES", "5"))
	if err != nil {
		errs = append(errs, fmt.Errorf("SIM_INTERVAL_MINUTES: %w", err))
	}
	maxHours, err := strconv.Atoi(getEnvOrDefault("SIM_MAX_HOURS", "72"))
	if err != nil {
		errs = append(errs, fmt.Errorf("SIM_MAX_HOURS: %w", err))
	}
	seed, err := strconv.ParseInt(getEnvOrDefault("SIM_SEED", "0"), 10, 64)
	if err != nil {
		errs = append(errs, fmt.Errorf("SIM_SEED: %w", err))
	}
	strict, err := strconv.ParseBool(getEnvOrDefault("SIM_STRICT", "false"))
	if err != nil {
		errs = append(errs, fmt.Errorf("SIM_STRICT: %w", err))
	}
	previewSize, err := strconv.Atoi(getEnvOrDefault("SIM_PREVIEW_SIZE", "10"))
	if err != nil {
		errs = append(errs, fmt.Errorf("SIM_PREVIEW_SIZE: %w", err))
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	cfg := &Config{
		TelegramToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		MetricsAddr:   getEnvOrDefault("METRICS_ADDR", ":9090"),
		DB: DBConfig{
			Host:     getEnvOrDefault("DB_HOST", "localhost"),
			Port:     getEnvOrDefault("DB_PORT", "5432"),
			User:     getEnvOrDefault("DB_USER", "postgres"),
			Password: getEnvOrDefault("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrDefault("DB_NAME", "cgm_simulator"),
			SSLMode:  getEnvOrDefault("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host: os.Getenv("REDIS_HOST"),
			Port: getEnvOrDefault("REDIS_PORT", "6379"),
		},
		Logger: LoggerConfig{
			Level:      parseLogLevel(getEnvOrDefault("LOG_LEVEL", "info")),
			OutputPath: getEnvOrDefault("LOG_OUTPUT", "stdout"),
			Format:     getEnvOrDefault("LOG_FORMAT", "json"),
		},
		Simulation: SimulationConfig{
			Interval:    time.Duration(intervalMinutes) * time.Minute,
			MaxHours:    maxHours,
			DeviceID:    getEnvOrDefault("SIM_DEVICE_ID", "sim-cgm-001"),
			Seed:        seed,
			Strict:      strict,
			PreviewSize: previewSize,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges that parsing alone cannot catch
func (c *Config) Validate() error {
	var errs []error
	if c.Simulation.Interval <= 0 {
		errs = append(errs, errors.New("SIM_INTERVAL_MINUTES must be positive"))
	}
	if c.Simulation.MaxHours <= 0 {
		errs = append(errs, errors.New("SIM_MAX_HOURS must be positive"))
	}
	if c.Simulation.PreviewSize < 0 {
		errs = append(errs, errors.New("SIM_PREVIEW_SIZE must not be negative"))
	}
	if c.DB.Host == "" || c.DB.DBName == "" {
		errs = append(errs, errors.New("DB_HOST and DB_NAME are required"))
	}
	return errors.Join(errs...)
}

// LoggerSettings converts the logger section for logger.InitWithConfig
func (c *Config) LoggerSettings() logger.Config {
	return logger.Config{
		Level:      c.Logger.Level,
		OutputPath: c.Logger.OutputPath,
		Format:     c.Logger.Format,
	}
}
