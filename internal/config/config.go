// Package config loads application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"
	_ "time/tzdata" // Embed zone database for scratch container

	"github.com/joho/godotenv"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	ListenAddr     string
	DBPath         string
	BaseURL        string
	TemplatePath   string
	Location       *time.Location
	MaxUploadBytes int64
}

// LoadDotEnv loads variables from path into the process environment without
// overriding values that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Load reads configuration from environment variables and returns a validated Config.
// All variables are optional:
// CERTLINK_LISTEN_ADDR (:3000), CERTLINK_DB_PATH (data.db),
// CERTLINK_BASE_URL (http://localhost:3000/api?hash=), CERTLINK_TEMPLATE_PATH
// (embedded default), CERTLINK_TIMEZONE (UTC), CERTLINK_MAX_UPLOAD_BYTES (32 MiB).
func Load() (*Config, error) {
	listenAddr := ":3000"
	if v, ok := os.LookupEnv("CERTLINK_LISTEN_ADDR"); ok && v != "" {
		listenAddr = v
	}

	dbPath := "data.db"
	if v, ok := os.LookupEnv("CERTLINK_DB_PATH"); ok && v != "" {
		dbPath = v
	}

	baseURL := "http://localhost:3000/api?hash="
	if v, ok := os.LookupEnv("CERTLINK_BASE_URL"); ok && v != "" {
		baseURL = v
	}

	location := time.UTC
	if v, ok := os.LookupEnv("CERTLINK_TIMEZONE"); ok && v != "" {
		loc, err := time.LoadLocation(v)
		if err != nil {
			return nil, fmt.Errorf("CERTLINK_TIMEZONE has invalid location %q: %w", v, err)
		}
		location = loc
	}

	maxUpload := int64(32 << 20)
	if v, ok := os.LookupEnv("CERTLINK_MAX_UPLOAD_BYTES"); ok && v != "" {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("CERTLINK_MAX_UPLOAD_BYTES has invalid size %q: %w", v, err)
		}
		if parsed <= 0 {
			return nil, fmt.Errorf("CERTLINK_MAX_UPLOAD_BYTES must be positive, got %d", parsed)
		}
		maxUpload = parsed
	}

	return &Config{
		ListenAddr:     listenAddr,
		DBPath:         dbPath,
		BaseURL:        baseURL,
		TemplatePath:   os.Getenv("CERTLINK_TEMPLATE_PATH"),
		Location:       location,
		MaxUploadBytes: maxUpload,
	}, nil
}
