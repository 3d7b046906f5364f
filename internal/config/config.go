package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Remote document service
	DocsBaseURL  string
	DriveBaseURL string
	AccessToken  string
	HTTPTimeout  time.Duration
	MaxRetries   int

	// Auth
	DocstabAPIKey string

	// Multi-tab fan-out
	MaxConcurrentTabs int

	// Upload limits (import endpoint)
	MaxUploadBytes int64

	// PDF import
	PDFFallbackPdftotext bool
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8091"),

		DocsBaseURL:  envOr("DOCS_BASE_URL", "https://docs.googleapis.com"),
		DriveBaseURL: envOr("DRIVE_BASE_URL", "https://www.googleapis.com"),
		AccessToken:  os.Getenv("GOOGLE_ACCESS_TOKEN"),
		HTTPTimeout:  envDuration("HTTP_TIMEOUT", 30*time.Second),
		MaxRetries:   envInt("MAX_RETRIES", 3),

		DocstabAPIKey: os.Getenv("DOCSTAB_API_KEY"),

		MaxConcurrentTabs: envInt("MAX_CONCURRENT_TABS", 4),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = 30 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 3
	}
	if cfg.MaxConcurrentTabs <= 0 {
		cfg.MaxConcurrentTabs = 4
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}

	return cfg
}

func (c Config) Validate() error {
	if c.AccessToken == "" {
		return fmt.Errorf("GOOGLE_ACCESS_TOKEN is required")
	}
	if c.DocstabAPIKey == "" {
		return fmt.Errorf("DOCSTAB_API_KEY is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
