// internal/infra/config/config.go
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the environment-resolved settings for the storefront session
// runtime.
type Config struct {
	// SnapshotDBPath is the sqlite file backing the persisted session
	// snapshot (cart / wishlist / user documents).
	SnapshotDBPath string

	// MallAPIBaseURL points at the mall cart API. When set, the HTTP
	// collaborator is used.
	MallAPIBaseURL string

	// Firestore direct-read deployment (used only when MallAPIBaseURL is
	// empty and a project id is present).
	FirestoreProjectID       string
	FirestoreCredentialsFile string

	// Logging
	LogLevel  string
	LogPretty bool
}

// Load reads environment variables into a Config. A .env file in the working
// directory is applied first, best-effort (local development convenience).
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		SnapshotDBPath: getenvDefault("ATELIER_SNAPSHOT_DB", "atelier-session.db"),
		MallAPIBaseURL: strings.TrimSpace(os.Getenv("MALL_API_BASE_URL")),

		FirestoreProjectID:       strings.TrimSpace(os.Getenv("FIRESTORE_PROJECT_ID")),
		FirestoreCredentialsFile: strings.TrimSpace(os.Getenv("FIRESTORE_CREDENTIALS_FILE")),

		LogLevel:  getenvDefault("LOG_LEVEL", "info"),
		LogPretty: strings.EqualFold(os.Getenv("LOG_PRETTY"), "true"),
	}
}

func getenvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
