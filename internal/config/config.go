package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	BotToken string
	Database DatabaseConfig
	Review   ReviewConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// ReviewConfig holds the scheduling limits for review sessions
type ReviewConfig struct {
	DailyLimit              int
	NewCardsPerDay          int
	IncludeNewCards         bool
	EnableKeyboardShortcuts bool
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	dailyLimit, err := getEnvInt("REVIEW_DAILY_LIMIT", 50)
	if err != nil {
		return nil, err
	}
	newPerDay, err := getEnvInt("REVIEW_NEW_CARDS_PER_DAY", 10)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		BotToken: os.Getenv("BOT_TOKEN"),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "recall"),
			User:     getEnv("DB_USER", "recall"),
			Password: os.Getenv("DB_PASSWORD"),
		},
		Review: ReviewConfig{
			DailyLimit:              dailyLimit,
			NewCardsPerDay:          newPerDay,
			IncludeNewCards:         getEnvBool("REVIEW_INCLUDE_NEW_CARDS", true),
			EnableKeyboardShortcuts: getEnvBool("REVIEW_KEYBOARD_SHORTCUTS", true),
		},
	}

	// Validate required fields
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}
	if cfg.Database.Password == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}
	if cfg.Review.DailyLimit < 1 {
		return nil, fmt.Errorf("REVIEW_DAILY_LIMIT must be at least 1")
	}
	if cfg.Review.NewCardsPerDay < 0 {
		return nil, fmt.Errorf("REVIEW_NEW_CARDS_PER_DAY cannot be negative")
	}

	return cfg, nil
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
