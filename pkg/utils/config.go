package utils

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type AuthConfig struct {
	JWTSecret   string
	JWTIssuer   string
	JWTDuration time.Duration
}

type CMSConfig struct {
	BaseURL      string
	Token        string
	Locale       string
	FallbackFile string
}

type Config struct {
	Addr      string
	SyncAddr  string
	LogMode   string
	CacheTTL  time.Duration
	Collation string
	PageSize  int
	CMS       CMSConfig
	Auth      AuthConfig
}

// LoadConfig reads PRACTICEHUB_* variables, using dev defaults for anything
// missing or unparseable.
func LoadConfig() Config {
	return Config{
		Addr:      env("PRACTICEHUB_ADDR", ":8080"),
		SyncAddr:  envAllowEmpty("PRACTICEHUB_SYNC_ADDR", ":7070"),
		LogMode:   env("PRACTICEHUB_LOG_MODE", "dev"),
		CacheTTL:  envDuration("PRACTICEHUB_CACHE_TTL", 5*time.Minute),
		Collation: env("PRACTICEHUB_COLLATION", "hu"),
		PageSize:  envInt("PRACTICEHUB_PAGE_SIZE", 12),
		CMS: CMSConfig{
			BaseURL:      env("PRACTICEHUB_CMS_URL", ""),
			Token:        env("PRACTICEHUB_CMS_TOKEN", ""),
			Locale:       env("PRACTICEHUB_CMS_LOCALE", "hu"),
			FallbackFile: env("PRACTICEHUB_FALLBACK_FILE", "data/practices.yaml"),
		},
		Auth: LoadAuthConfig(),
	}
}

func LoadAuthConfig() AuthConfig {
	// dev default (change for production)
	secret := env("PRACTICEHUB_JWT_SECRET", "dev-secret-change-me")
	issuer := env("PRACTICEHUB_JWT_ISSUER", "practicehub")
	hours := envInt("PRACTICEHUB_JWT_TTL_HOURS", 24)
	return AuthConfig{
		JWTSecret:   secret,
		JWTIssuer:   issuer,
		JWTDuration: time.Duration(hours) * time.Hour,
	}
}

func env(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// envAllowEmpty lets an explicitly empty variable disable a feature.
func envAllowEmpty(key, def string) string {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	return strings.TrimSpace(v)
}

func envInt(key string, def int) int {
	n, err := strconv.Atoi(env(key, ""))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(env(key, ""))
	if err != nil || d <= 0 {
		return def
	}
	return d
}
