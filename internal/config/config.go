// Package config loads the process configuration from the environment.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything the server needs to talk to Notion.
type Config struct {
	// APIKey is the Notion integration token.
	APIKey string
	// ParentPageID is the default parent page for newly created pages.
	ParentPageID string
	// LogLevel is a logrus level name; defaults to "info".
	LogLevel string
}

// Load reads the configuration from a .env file (if present) and the
// process environment. Missing required values are a startup-fatal error.
func Load() (*Config, error) {
	// A missing .env file is fine; environment variables may be set directly.
	_ = godotenv.Load()

	apiKey := os.Getenv("NOTION_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("NOTION_API_KEY is not set")
	}

	parentID := os.Getenv("NOTION_PARENT_PAGE_ID")
	if parentID == "" {
		return nil, fmt.Errorf("NOTION_PARENT_PAGE_ID is not set")
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	return &Config{
		APIKey:       apiKey,
		ParentPageID: parentID,
		LogLevel:     logLevel,
	}, nil
}
