package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
)

// Config holds all runtime configuration for the attendance backend.
type Config struct {
	Port        string
	AppEnv      string
	DatabaseURL string

	// SessionSecret signs the user_session cookie. Required in production;
	// a fixed dev key is substituted otherwise so local setups work out of
	// the box.
	SessionSecret string

	// AttendanceTZ is the canonical zone for the "today" boundary and the
	// late cutoff, independent of server locale.
	AttendanceTZ string

	// LateCutoff is a "HH:MM:SS" local time-of-day. Check-ins strictly
	// after it are classified Terlambat.
	LateCutoff string

	// LoginRatePerMin caps login attempts per client IP.
	LoginRatePerMin int
}

const devSessionSecret = "absensi-dev-secret-do-not-use-in-prod"

var (
	ErrMissingDatabaseURL   = errors.New("DATABASE_URL is empty")
	ErrMissingSessionSecret = errors.New("SESSION_SECRET is required when APP_ENV=production")
	ErrBadLateCutoff        = errors.New("LATE_CUTOFF must be HH:MM:SS")
)

func get(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// LoadFromEnv loads configuration from environment variables.
//
// Environment variables:
//   - PORT: HTTP listen port (default "5050")
//   - APP_ENV: "dev" or "production" (default "dev")
//   - DATABASE_URL: Postgres DSN (required)
//   - SESSION_SECRET: HMAC key for the session cookie (required in production)
//   - ATTENDANCE_TZ: IANA zone for attendance dates (default "Asia/Jakarta")
//   - LATE_CUTOFF: late-arrival cutoff, HH:MM:SS (default "08:30:00")
//   - LOGIN_RATE_PER_MIN: login attempts allowed per IP per minute (default 10)
func LoadFromEnv() Config {
	cfg := Config{
		Port:          get("PORT", "5050"),
		AppEnv:        strings.ToLower(get("APP_ENV", "dev")),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		AttendanceTZ:  get("ATTENDANCE_TZ", "Asia/Jakarta"),
		LateCutoff:    get("LATE_CUTOFF", "08:30:00"),
	}

	cfg.LoginRatePerMin = 10
	if v, err := strconv.Atoi(get("LOGIN_RATE_PER_MIN", "10")); err == nil && v > 0 {
		cfg.LoginRatePerMin = v
	}

	if cfg.SessionSecret == "" && !cfg.IsProduction() {
		cfg.SessionSecret = devSessionSecret
	}

	return cfg
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.DatabaseURL == "" {
		return ErrMissingDatabaseURL
	}
	if c.SessionSecret == "" {
		return ErrMissingSessionSecret
	}
	if len(c.LateCutoff) != 8 || c.LateCutoff[2] != ':' || c.LateCutoff[5] != ':' {
		return ErrBadLateCutoff
	}
	return nil
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}
