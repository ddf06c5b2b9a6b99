// Package config
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// MinJWTSecretLength is the shortest HS256 secret accepted, in bytes.
const MinJWTSecretLength = 32

var (
	ErrMissingJWTSecret = errors.New("JWT_SECRET is mandatory")
	ErrWeakJWTSecret    = fmt.Errorf("JWT_SECRET must be at least %d bytes", MinJWTSecretLength)
	ErrInvalidHashCost  = fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
)

type Config struct {
	Address        string
	AllowedOrigins []string
	DatabaseURL    string
	AutoMigrate    bool
	RedisURL       string
	JWTSecret      string
	JWTExpiry      time.Duration
	LogLevel       string
	LogFormat      string

	BcryptCost      int
	HashConcurrency int

	LoginMaxAttempts int
	LoginLockout     time.Duration
}

func Load() *Config {
	_ = godotenv.Load()

	// Logs
	logLevel := getEnv("LOG_LEVEL", "info")
	logFormat := getEnv("LOG_FORMAT", "text")

	// Server HTTP Address
	addr := getEnv("HTTP_ADDR", ":3000")

	// Server Allowed Origins
	var origins []string
	rawOrigins := os.Getenv("ALLOWED_ORIGINS")
	if rawOrigins != "" {
		parts := strings.SplitSeq(rawOrigins, ",")
		for o := range parts {
			if trimmed := strings.TrimSpace(o); trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
	}

	// Storage, an empty URL selects the in-memory user store
	databaseURL := getEnv("DATABASE_URL", "")
	autoMigrate := getBool("AUTO_MIGRATE", false)

	// Redis, an empty URL disables login lockout
	redisURL := getEnv("REDIS_URL", "")

	// JWT Secret and Expiry
	jwtSecret := getEnv("JWT_SECRET", "")
	jwtExpiry := getDuration("JWT_EXPIRY", time.Hour)

	// Password hashing
	bcryptCost := getInt("BCRYPT_COST", bcrypt.DefaultCost)
	hashConcurrency := getInt("HASH_CONCURRENCY", runtime.GOMAXPROCS(0))

	// Login lockout
	loginMaxAttempts := getInt("LOGIN_MAX_ATTEMPTS", 5)
	loginLockout := getDuration("LOGIN_LOCKOUT", 15*time.Minute)

	return &Config{
		LogLevel:  logLevel,
		LogFormat: logFormat,

		Address:        addr,
		AllowedOrigins: origins,
		DatabaseURL:    databaseURL,
		AutoMigrate:    autoMigrate,
		RedisURL:       redisURL,
		JWTSecret:      jwtSecret,
		JWTExpiry:      jwtExpiry,

		BcryptCost:      bcryptCost,
		HashConcurrency: hashConcurrency,

		LoginMaxAttempts: loginMaxAttempts,
		LoginLockout:     loginLockout,
	}
}

// Validate reports configuration the server must refuse to start with.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return ErrMissingJWTSecret
	}
	if len(c.JWTSecret) < MinJWTSecretLength {
		return ErrWeakJWTSecret
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return ErrInvalidHashCost
	}
	if c.HashConcurrency < 1 {
		return errors.New("HASH_CONCURRENCY must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if raw := os.Getenv(key); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			return n
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if raw := os.Getenv(key); raw != "" {
		if b, err := strconv.ParseBool(raw); err == nil {
			return b
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if raw := os.Getenv(key); raw != "" {
		if duration, err := time.ParseDuration(raw); err == nil && duration > 0 {
			return duration
		}
	}
	return fallback
}
