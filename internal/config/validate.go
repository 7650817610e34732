package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.AccessTokenTTL <= 0 {
		return fmt.Errorf("auth.access_token_ttl must be > 0 (got %v)", c.Auth.AccessTokenTTL)
	}

	if err := c.Listing.validate(); err != nil {
		return fmt.Errorf("listing: %w", err)
	}
	if err := c.Storage.validate(); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.Log.validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}

	if c.RateLimit.Enabled && (c.RateLimit.ReadPerMinute <= 0 || c.RateLimit.WritePerMinute <= 0) {
		return fmt.Errorf("rate_limit: per-minute limits must be > 0 when enabled")
	}

	return nil
}

func (l *ListingConfig) validate() error {
	if l.TTL <= 0 {
		return fmt.Errorf("ttl must be > 0 (got %v)", l.TTL)
	}
	if l.MaxImages < 0 {
		return fmt.Errorf("max_images must be >= 0 (got %d)", l.MaxImages)
	}
	if l.MaxPageSize <= 0 {
		return fmt.Errorf("max_page_size must be > 0 (got %d)", l.MaxPageSize)
	}
	if l.DefaultPageSize <= 0 || l.DefaultPageSize > l.MaxPageSize {
		return fmt.Errorf("default_page_size must be in [1, %d] (got %d)", l.MaxPageSize, l.DefaultPageSize)
	}
	if l.SearchPageSize <= 0 || l.SearchPageSize > l.MaxPageSize {
		return fmt.Errorf("search_page_size must be in [1, %d] (got %d)", l.MaxPageSize, l.SearchPageSize)
	}
	if l.MaxUploadBytes <= 0 {
		return fmt.Errorf("max_upload_bytes must be > 0 (got %d)", l.MaxUploadBytes)
	}
	return nil
}

func (s *StorageConfig) validate() error {
	if strings.TrimSpace(s.Bucket) == "" {
		return fmt.Errorf("bucket is required")
	}
	if (s.AccessKey == "") != (s.SecretKey == "") {
		return fmt.Errorf("access_key and secret_key must be set together")
	}
	return nil
}

func (l *LogConfig) validate() error {
	switch strings.ToLower(l.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown level %q", l.Level)
	}
	switch strings.ToLower(l.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("unknown format %q", l.Format)
	}
	return nil
}
