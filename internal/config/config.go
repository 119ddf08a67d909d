package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config carries everything cmd/api needs, read once at startup.
type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string
	AdminAPIKey string
	CORSOrigin  string

	// AnalysisSeed seeds the report generator so runs can be reproduced.
	// Zero means seed from the clock.
	AnalysisSeed int64

	RateLimitAuth    int
	RateLimitAnalyze int
}

// Load reads configuration from the environment. A .env file in the
// working directory is merged in first if present.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:             "8080",
		CORSOrigin:       "*",
		RateLimitAuth:    10,
		RateLimitAnalyze: 60,
	}

	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		cfg.Port = v
	}
	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	cfg.JWTSecret = strings.TrimSpace(os.Getenv("JWT_SECRET"))
	cfg.AdminAPIKey = strings.TrimSpace(os.Getenv("ADMIN_API_KEY"))
	if v := strings.TrimSpace(os.Getenv("CORS_ORIGIN")); v != "" {
		cfg.CORSOrigin = v
	}

	if v := strings.TrimSpace(os.Getenv("ANALYSIS_SEED")); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return Config{}, errors.New("ANALYSIS_SEED must be an integer")
		}
		cfg.AnalysisSeed = seed
	}
	if cfg.AnalysisSeed == 0 {
		cfg.AnalysisSeed = time.Now().UnixNano()
	}

	if v := strings.TrimSpace(os.Getenv("RATE_LIMIT_AUTH_MAX")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			cfg.RateLimitAuth = parsed
		}
	}
	if v := strings.TrimSpace(os.Getenv("RATE_LIMIT_ANALYZE_MAX")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			cfg.RateLimitAnalyze = parsed
		}
	}

	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is not set")
	}
	return cfg, nil
}
