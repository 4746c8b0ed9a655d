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
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl must be > 0 (got %v)", c.Auth.TokenTTL)
	}
	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		return fmt.Errorf("auth.bcrypt_cost must be between 4 and 31 (got %d)", c.Auth.BcryptCost)
	}

	if err := c.Storage.validate(); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.Entries.validate(); err != nil {
		return fmt.Errorf("entries: %w", err)
	}
	if err := c.AI.validate(); err != nil {
		return fmt.Errorf("ai: %w", err)
	}

	if c.RateLimit.AuthPerMinute < 0 {
		return fmt.Errorf("rate_limit.auth_per_minute must be >= 0 (got %d)", c.RateLimit.AuthPerMinute)
	}
	if c.RateLimit.AIPerMinute < 0 {
		return fmt.Errorf("rate_limit.ai_per_minute must be >= 0 (got %d)", c.RateLimit.AIPerMinute)
	}

	return nil
}

func (s *StorageConfig) validate() error {
	s.Driver = strings.ToLower(strings.TrimSpace(s.Driver))
	switch s.Driver {
	case StorageLocal:
		if s.LocalDir == "" {
			return fmt.Errorf("local_dir is required for the local driver")
		}
	case StorageS3:
		if s.S3Bucket == "" {
			return fmt.Errorf("s3_bucket is required for the s3 driver")
		}
	default:
		return fmt.Errorf("unknown driver %q (want %q or %q)", s.Driver, StorageLocal, StorageS3)
	}
	return nil
}

func (e *EntriesConfig) validate() error {
	if e.RecentViewsLimit <= 0 || e.RecentViewsLimit > 20 {
		return fmt.Errorf("recent_views_limit must be between 1 and 20 (got %d)", e.RecentViewsLimit)
	}
	if e.MaxUploadBytes <= 0 {
		return fmt.Errorf("max_upload_bytes must be > 0 (got %d)", e.MaxUploadBytes)
	}
	return nil
}

func (a *AIConfig) validate() error {
	if a.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %v)", a.Timeout)
	}
	if a.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be > 0 (got %d)", a.MaxTokens)
	}
	if a.RetryBase <= 0 {
		return fmt.Errorf("retry_base must be > 0 (got %v)", a.RetryBase)
	}
	return nil
}
