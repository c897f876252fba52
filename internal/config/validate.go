package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

// Validation constants define acceptable bounds for configuration values
const (
	// Token validation
	minTokenLength = 50 // Discord tokens are typically 50+ characters

	// IdleTimeout validation
	minIdleTimeout = 30 * time.Second
	maxIdleTimeout = 24 * time.Hour

	// Resolver validation
	minResolverTimeout = 1 * time.Second
	maxResolverTimeout = 2 * time.Minute
	maxResolveWait     = 15 * time.Second // Discord interactions expire after 15 minutes, but users give up much sooner

	// HistoryLimit validation
	minHistoryLimit = 1
	maxHistoryLimit = 25 // Embed field limit
)

// Validate checks if the configuration values are valid and within acceptable ranges.
// It returns all validation errors at once using errors.Join.
//
// Validated fields:
//   - Token: Must be at least 50 characters (Discord token format)
//   - IdleTimeout: Must be between 30s and 24h
//   - ResolverTimeout: Must be between 1s and 2m
//   - ResolveWait: Must be between 0 and 15s
//   - ResolverRateLimit: Must be positive
//   - ResolverBaseURL: Must be an absolute http(s) URL
//   - HistoryLimit: Must be between 1 and 25
//   - HistoryRetention: Must not be negative (0 keeps history forever)
//   - RedisDB: Must not be negative
func (c *Config) Validate() error {
	var errs []error

	if err := c.validateToken(); err != nil {
		errs = append(errs, err)
	}

	if err := c.validateIdleTimeout(); err != nil {
		errs = append(errs, err)
	}

	if err := c.validateResolver(); err != nil {
		errs = append(errs, err)
	}

	if err := c.validateHistoryLimit(); err != nil {
		errs = append(errs, err)
	}

	if c.HistoryRetention < 0 {
		errs = append(errs, fmt.Errorf("HISTORY_RETENTION must not be negative, got %v", c.HistoryRetention))
	}

	if c.RedisDB < 0 {
		errs = append(errs, fmt.Errorf("REDIS_DB must not be negative, got %d", c.RedisDB))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  %w", errors.Join(errs...))
	}

	return nil
}

// validateToken ensures the Discord token is present and has valid length
func (c *Config) validateToken() error {
	if c.Token == "" {
		return fmt.Errorf("DISCORD_TOKEN is required but not set")
	}

	if len(c.Token) < minTokenLength {
		return fmt.Errorf(
			"DISCORD_TOKEN appears invalid (too short: %d chars, expected %d+)",
			len(c.Token), minTokenLength,
		)
	}

	return nil
}

func (c *Config) validateIdleTimeout() error {
	if c.IdleTimeout < minIdleTimeout {
		return fmt.Errorf(
			"IDLE_TIMEOUT must be at least %v, got %v (hint: default is 7m)",
			minIdleTimeout, c.IdleTimeout,
		)
	}

	if c.IdleTimeout > maxIdleTimeout {
		return fmt.Errorf("IDLE_TIMEOUT must be at most %v, got %v", maxIdleTimeout, c.IdleTimeout)
	}

	return nil
}

func (c *Config) validateResolver() error {
	var errs []error

	if c.ResolverTimeout < minResolverTimeout || c.ResolverTimeout > maxResolverTimeout {
		errs = append(errs, fmt.Errorf(
			"RESOLVER_TIMEOUT must be between %v and %v, got %v",
			minResolverTimeout, maxResolverTimeout, c.ResolverTimeout,
		))
	}

	if c.ResolveWait < 0 || c.ResolveWait > maxResolveWait {
		errs = append(errs, fmt.Errorf(
			"RESOLVE_WAIT must be between 0 and %v, got %v",
			maxResolveWait, c.ResolveWait,
		))
	}

	if c.ResolverRateLimit <= 0 {
		errs = append(errs, fmt.Errorf("RESOLVER_RATE_LIMIT must be positive, got %v", c.ResolverRateLimit))
	}

	u, err := url.Parse(c.ResolverBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("RESOLVER_BASE_URL must be an absolute http(s) URL, got %q", c.ResolverBaseURL))
	}

	return errors.Join(errs...)
}

func (c *Config) validateHistoryLimit() error {
	if c.HistoryLimit < minHistoryLimit || c.HistoryLimit > maxHistoryLimit {
		return fmt.Errorf(
			"HISTORY_LIMIT must be between %d and %d, got %d",
			minHistoryLimit, maxHistoryLimit, c.HistoryLimit,
		)
	}

	return nil
}
