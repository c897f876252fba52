package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Token             string
	DiscordGuildID    string
	IdleTimeout       time.Duration
	ResolveWait       time.Duration
	ResolverTimeout   time.Duration
	ResolverRateLimit float64
	ResolverBaseURL   string
	DatabaseURL       string
	RedisAddr         string
	RedisPassword     string
	RedisDB           int
	MetadataCacheTTL  time.Duration
	MetricsAddr       string
	HistoryLimit      int
	HistoryRetention  time.Duration
	CleanupCommands   bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	token := readSecret("discord_token")
	if token == "" {
		token = os.Getenv("DISCORD_TOKEN")
	}
	if token == "" {
		return nil, fmt.Errorf("DISCORD_TOKEN is not set (via secret or env var)")
	}

	dbURL := readSecret("database_url")
	if dbURL == "" {
		dbURL = os.Getenv("DATABASE_URL")
	}

	redisPassword := readSecret("redis_password")
	if redisPassword == "" {
		redisPassword = os.Getenv("REDIS_PASSWORD")
	}

	cfg := &Config{
		Token:             token,
		DiscordGuildID:    envString("DISCORD_GUILD_ID", ""),
		IdleTimeout:       envDuration("IDLE_TIMEOUT", 420*time.Second),
		ResolveWait:       envDuration("RESOLVE_WAIT", 5*time.Second),
		ResolverTimeout:   envDuration("RESOLVER_TIMEOUT", 10*time.Second),
		ResolverRateLimit: envFloat("RESOLVER_RATE_LIMIT", 2),
		ResolverBaseURL:   envString("RESOLVER_BASE_URL", "https://www.youtube.com"),
		DatabaseURL:       dbURL,
		RedisAddr:         envString("REDIS_ADDR", ""),
		RedisPassword:     redisPassword,
		RedisDB:           envInt("REDIS_DB", 0),
		MetadataCacheTTL:  envDuration("METADATA_CACHE_TTL", 24*time.Hour),
		MetricsAddr:       envString("METRICS_ADDR", ":2112"),
		HistoryLimit:      envInt("HISTORY_LIMIT", 10),
		HistoryRetention:  envDuration("HISTORY_RETENTION", 0),
		CleanupCommands:   envBool("CLEANUP_COMMANDS", true),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

var secretsDir = "/run/secrets/"

func readSecret(name string) string {
	data, err := os.ReadFile(secretsDir + name)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
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

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
