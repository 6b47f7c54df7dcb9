package config

import (
	"encoding/base64"
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// App
	Env string // dev / staging / prod
	// HTTP
	HTTPAddr string
	// Auth / Security
	TokenSecret string // base64, >= 256 bits decoded
	TokenTTL    time.Duration
	BcryptCost  int

	// Infrastructure
	DBAddr        string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Login / register abuse control
	AuthRateLimit  int
	AuthRateWindow time.Duration

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		Env:      getEnv("ENV", "dev"),
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
	}

	// The signing secret is required and checked here so a weak key kills
	// the process at startup instead of surfacing as a runtime error.
	cfg.TokenSecret = os.Getenv("TOKEN_SECRET")
	if cfg.TokenSecret == "" {
		return nil, fmt.Errorf("missing required env var: TOKEN_SECRET")
	}
	key, err := base64.StdEncoding.DecodeString(cfg.TokenSecret)
	if err != nil {
		return nil, fmt.Errorf("TOKEN_SECRET must be base64: %w", err)
	}
	if len(key) < 32 {
		return nil, fmt.Errorf("TOKEN_SECRET must decode to at least 32 bytes, got %d", len(key))
	}

	ttl, err := getDuration("TOKEN_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}
	cfg.TokenTTL = ttl

	cost, err := getInt("BCRYPT_COST", 12)
	if err != nil {
		return nil, err
	}
	cfg.BcryptCost = cost

	// The identity store is required outside dev; dev falls back to the
	// in-memory store when DB_ADDR is unset.
	cfg.DBAddr = os.Getenv("DB_ADDR")
	if cfg.DBAddr == "" && cfg.Env != "dev" {
		return nil, fmt.Errorf("missing required env var: DB_ADDR")
	}

	// Redis is optional; without it the rate limiter is disabled.
	cfg.RedisAddr = os.Getenv("REDIS_ADDR")
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	rdb, err := getInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}
	cfg.RedisDB = rdb

	limit, err := getInt("AUTH_RATE_LIMIT", 10)
	if err != nil {
		return nil, err
	}
	cfg.AuthRateLimit = limit

	window, err := getDuration("AUTH_RATE_WINDOW", time.Minute)
	if err != nil {
		return nil, err
	}
	cfg.AuthRateWindow = window

	rt, err := getDuration("HTTP_READ_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.HTTPReadTimeout = rt

	wt, err := getDuration("HTTP_WRITE_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.HTTPWriteTimeout = wt

	it, err := getDuration("HTTP_IDLE_TIMEOUT", time.Minute)
	if err != nil {
		return nil, err
	}
	cfg.HTTPIdleTimeout = it

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %q: %w", key, v, err)
	}
	return d, nil
}

func getInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid integer for %s: %q: %w", key, v, err)
	}
	return n, nil
}
