package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries the process-level settings the bank needs at startup.
// Values come from the environment, optionally seeded from a .env file.
type Config struct {
	JWTSecret   []byte
	TokenTTL    time.Duration
	BcryptCost  int
	RateTimeout time.Duration
}

const (
	defaultTokenTTL    = 24 * time.Hour
	defaultRateTimeout = 5 * time.Second
)

// Load reads configuration from the environment. A missing .env file is
// not an error; a missing JWT secret falls back to a development-only
// default and is loudly logged.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg := Config{
		JWTSecret:   []byte(os.Getenv("JWT_SECRET_KEY")),
		TokenTTL:    defaultTokenTTL,
		BcryptCost:  0, // 0 selects the bcrypt default
		RateTimeout: defaultRateTimeout,
	}

	if len(cfg.JWTSecret) == 0 {
		log.Println("WARNING: JWT_SECRET_KEY not set. Using insecure development default. DO NOT USE IN PRODUCTION!")
		cfg.JWTSecret = []byte("insecure-development-secret")
	}

	if raw := os.Getenv("TOKEN_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil || ttl <= 0 {
			log.Printf("Invalid TOKEN_TTL %q, using default %s", raw, defaultTokenTTL)
		} else {
			cfg.TokenTTL = ttl
		}
	}

	if raw := os.Getenv("BCRYPT_COST"); raw != "" {
		cost, err := strconv.Atoi(raw)
		if err != nil {
			log.Printf("Invalid BCRYPT_COST %q, using bcrypt default", raw)
		} else {
			cfg.BcryptCost = cost
		}
	}

	if raw := os.Getenv("RATE_TIMEOUT"); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil || timeout <= 0 {
			log.Printf("Invalid RATE_TIMEOUT %q, using default %s", raw, defaultRateTimeout)
		} else {
			cfg.RateTimeout = timeout
		}
	}

	return cfg
}
