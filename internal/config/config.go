package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
)

// ErrInvalid marks a configuration validation failure. The wrapped message
// lists every violation so a bad deployment fails with one readable error.
var ErrInvalid = errors.New("invalid configuration")

// Notion ids are 32 hex characters, optionally dash-separated as a UUID.
var databaseIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-?[0-9a-fA-F]{4}-?[0-9a-fA-F]{4}-?[0-9a-fA-F]{4}-?[0-9a-fA-F]{12}$`)

type Config struct {
	NotionToken      string
	NotionDatabaseID string
	PostgresURL      string
	LogLevel         string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file successfully")
	}

	cfg := &Config{
		NotionToken:      getEnv("NOTION_TOKEN", ""),
		NotionDatabaseID: getEnv("NOTION_DATABASE_ID", ""),
		PostgresURL:      getEnv("POSTGRES_URL", ""),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field and aggregates all violations into a single
// error rather than stopping at the first one.
func (c *Config) Validate() error {
	var violations []string

	if c.NotionToken == "" {
		violations = append(violations, "NOTION_TOKEN is required")
	}

	if c.NotionDatabaseID == "" {
		violations = append(violations, "NOTION_DATABASE_ID is required")
	} else if !databaseIDPattern.MatchString(c.NotionDatabaseID) {
		violations = append(violations, fmt.Sprintf("NOTION_DATABASE_ID %q is not a Notion database id", c.NotionDatabaseID))
	}

	if c.PostgresURL == "" {
		violations = append(violations, "POSTGRES_URL is required")
	} else if !strings.HasPrefix(c.PostgresURL, "postgres://") && !strings.HasPrefix(c.PostgresURL, "postgresql://") {
		violations = append(violations, fmt.Sprintf("POSTGRES_URL %q must use a postgres:// or postgresql:// scheme", c.PostgresURL))
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		violations = append(violations, fmt.Sprintf("LOG_LEVEL %q must be one of debug, info, warn, error", c.LogLevel))
	}

	if len(violations) > 0 {
		return fmt.Errorf("%w:\n  - %s", ErrInvalid, strings.Join(violations, "\n  - "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
