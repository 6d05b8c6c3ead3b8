package config

import (
	"fmt"
	"log/slog"

	"github.com/harishmogili21/Nutrisense-Nutrition-Assistant/models"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Config holds everything the app reads from the environment. The two API
// keys are optional: a missing key disables the dependent feature instead of
// stopping the process.
type Config struct {
	Port                   int     `envconfig:"PORT" default:"8080"`
	DatabasePath           string  `envconfig:"DATABASE_PATH" default:"nutrisense_data.db"`
	MistralAPIKey          string  `envconfig:"MISTRAL_API_KEY"`
	MistralModel           string  `envconfig:"MISTRAL_MODEL" default:"mistral-large-latest"`
	ExaAPIKey              string  `envconfig:"EXA_API_KEY"`
	DefaultCalorieEstimate float64 `envconfig:"DEFAULT_CALORIE_ESTIMATE" default:"250"`
	LogLevel               string  `envconfig:"LOG_LEVEL" default:"info"`
}

var DB *gorm.DB

func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}

	if cfg.MistralAPIKey == "" {
		slog.Warn("MISTRAL_API_KEY not configured, AI advice and calorie estimation disabled")
	}
	if cfg.ExaAPIKey == "" {
		slog.Warn("EXA_API_KEY not configured, restaurant search disabled")
	}

	return cfg, nil
}

func InitDB(path string) error {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to open database %s: %w", path, err)
	}

	if err := db.AutoMigrate(
		&models.UserPreference{},
		&models.FoodLogEntry{},
	); err != nil {
		return fmt.Errorf("AutoMigrate failed: %w", err)
	}

	DB = db
	return nil
}
