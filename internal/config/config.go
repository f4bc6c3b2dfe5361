package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds the configuration for the application.
type Config struct {
	DataDir        string
	DatabasePath   string
	StorageBackend string
	DefaultUserID  string

	GeminiAPIKey string
	GroqAPIKey   string

	// Telegram Config
	TelegramBotToken       string
	TelegramWebhookURL     string
	TelegramAllowedUserIDs []int64
	TelegramAdminID        int64
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}

	databasePath := os.Getenv("DATABASE_PATH")
	if databasePath == "" {
		databasePath = filepath.Join(dataDir, "meal-planner.db")
	}

	backend := os.Getenv("STORAGE_BACKEND")
	if backend == "" {
		backend = "sqlite"
	}
	if backend != "sqlite" && backend != "file" {
		return nil, fmt.Errorf("invalid STORAGE_BACKEND %q: must be sqlite or file", backend)
	}

	defaultUserID := os.Getenv("DEFAULT_USER_ID")
	if defaultUserID == "" {
		defaultUserID = "anonymous"
	}

	// AI keys are optional; without any the planner falls back to its
	// built-in catalog.
	geminiAPIKey := os.Getenv("GEMINI_API_KEY")
	groqAPIKey := os.Getenv("GROQ_API_KEY")

	// Telegram Config (Optional for CLI, required for Bot)
	telegramBotToken := os.Getenv("TELEGRAM_BOT_TOKEN")
	telegramWebhookURL := os.Getenv("TELEGRAM_WEBHOOK_URL")

	var allowedIDs []int64
	if raw := os.Getenv("TELEGRAM_ALLOWED_USER_IDS"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid TELEGRAM_ALLOWED_USER_IDS entry %q: %w", part, err)
			}
			allowedIDs = append(allowedIDs, id)
		}
	}

	var adminID int64
	if raw := os.Getenv("TELEGRAM_ADMIN_ID"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_ADMIN_ID %q: %w", raw, err)
		}
		adminID = id
	}

	return &Config{
		DataDir:                dataDir,
		DatabasePath:           databasePath,
		StorageBackend:         backend,
		DefaultUserID:          defaultUserID,
		GeminiAPIKey:           geminiAPIKey,
		GroqAPIKey:             groqAPIKey,
		TelegramBotToken:       telegramBotToken,
		TelegramWebhookURL:     telegramWebhookURL,
		TelegramAllowedUserIDs: allowedIDs,
		TelegramAdminID:        adminID,
	}, nil
}

// RequireTelegram validates the fields the bot needs.
func (c *Config) RequireTelegram() error {
	if c.TelegramBotToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable not set")
	}
	if c.TelegramWebhookURL == "" {
		return fmt.Errorf("TELEGRAM_WEBHOOK_URL environment variable not set")
	}
	return nil
}

// AllowsTelegramUser reports whether the given Telegram user may use the bot.
// An empty allowlist permits everyone.
func (c *Config) AllowsTelegramUser(id int64) bool {
	if len(c.TelegramAllowedUserIDs) == 0 {
		return true
	}
	for _, allowed := range c.TelegramAllowedUserIDs {
		if allowed == id {
			return true
		}
	}
	return false
}
