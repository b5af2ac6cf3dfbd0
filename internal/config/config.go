// Package config loads application configuration from the environment,
// optionally seeded from a .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Backend   BackendConfig
	ImageHost ImageHostConfig
	Session   SessionConfig
}

// ServerConfig configures the HTTP server and local state.
type ServerConfig struct {
	Addr      string
	CachePath string
	LogPath   string
}

// BackendConfig points at the external managed backend.
type BackendConfig struct {
	URL    string
	APIKey string
	// PollInterval drives the activity-log watcher that stands in for the
	// backend's realtime insert feed.
	PollInterval time.Duration
}

// ImageHostConfig configures the external image host used for handover
// photos. Uploads are optional; an empty public key disables them.
type ImageHostConfig struct {
	UploadURL  string
	PublicKey  string
	PrivateKey string
	Folder     string
}

// SessionConfig configures client-enforced session expiry.
type SessionConfig struct {
	InactivityTimeout time.Duration
}

// Load reads configuration from the environment. If a .env file exists in
// the working directory it is loaded first; a missing file is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Addr:      getEnv("ADDR", ":8080"),
			CachePath: getEnv("CACHE_PATH", "peminjaman.sqlite3"),
			LogPath:   getEnv("LOG_PATH", ""),
		},
		Backend: BackendConfig{
			URL:          getEnv("BACKEND_URL", ""),
			APIKey:       getEnv("BACKEND_API_KEY", ""),
			PollInterval: getEnvDuration("BACKEND_POLL_INTERVAL", 10*time.Second),
		},
		ImageHost: ImageHostConfig{
			UploadURL:  getEnv("IMAGEKIT_UPLOAD_URL", "https://upload.imagekit.io/api/v1/files/upload"),
			PublicKey:  getEnv("IMAGEKIT_PUBLIC_KEY", ""),
			PrivateKey: getEnv("IMAGEKIT_PRIVATE_KEY", ""),
			Folder:     getEnv("IMAGEKIT_FOLDER", "/peminjaman-teknisi"),
		},
		Session: SessionConfig{
			InactivityTimeout: getEnvDuration("SESSION_TIMEOUT", 30*time.Minute),
		},
	}

	if cfg.Backend.URL == "" {
		return nil, fmt.Errorf("BACKEND_URL is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	// Accept bare seconds as well.
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
