package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds process-level settings read once at startup. Everything that
// can change at runtime (site title, password, snapshot schedule) lives in
// the settings table instead.
type Config struct {
	Port              string
	DBPath            string
	SessionSecret     string
	JWTSecret         string
	ImageUploadURL    string
	ImageUploadPreset string
	SnapshotDir       string
}

func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:              getEnv("PORT", "37371"),
		DBPath:            getEnv("DB_PATH", "dailybuzz.db"),
		SessionSecret:     getEnv("SESSION_SECRET", "secret-key-should-be-changed"),
		JWTSecret:         getEnv("JWT_SECRET", "jwt-secret-should-be-changed"),
		ImageUploadURL:    getEnv("IMAGE_UPLOAD_URL", ""),
		ImageUploadPreset: getEnv("IMAGE_UPLOAD_PRESET", ""),
		SnapshotDir:       getEnv("SNAPSHOT_DIR", "snapshots"),
	}
}

func getEnv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}
