package config

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in one pass.
type ValidationErrors []ValidationError

func (errs ValidationErrors) Error() string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "\n")
}

var validLogLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "error": true, "fatal": true, "disabled": true,
}

// ValidateConfig checks if the configuration meets the requirements for its environment
func ValidateConfig(cfg *Config) error {
	var errs ValidationErrors
	add := func(field, msg string) {
		errs = append(errs, ValidationError{Field: field, Message: msg})
	}

	if port, err := strconv.Atoi(cfg.ServerPort); err != nil || port < 1 || port > 65535 {
		add("SERVER_PORT", fmt.Sprintf("must be a port number, got %q", cfg.ServerPort))
	}
	if cfg.CorpusPath == "" {
		add("CORPUS_PATH", "is required")
	}

	switch cfg.DBDriver {
	case DriverSQLite:
		if cfg.SQLitePath == "" {
			add("SQLITE_PATH", "is required for the sqlite driver")
		}
	case DriverPostgres:
		for _, f := range [][2]string{
			{"DB_HOST", cfg.DBHost},
			{"DB_PORT", cfg.DBPort},
			{"DB_USER", cfg.DBUser},
			{"DB_NAME", cfg.DBName},
		} {
			if f[1] == "" {
				add(f[0], "is required for the postgres driver")
			}
		}
		if cfg.DBPassword == "" && (cfg.Environment == Production || cfg.Environment == CI) {
			add("DB_PASSWORD", "db_password secret is required")
		}
	default:
		add("DB_DRIVER", fmt.Sprintf("must be %q or %q, got %q", DriverSQLite, DriverPostgres, cfg.DBDriver))
	}

	if cfg.JWTSecret == "" {
		if cfg.Environment == CI {
			add("JWT_SECRET", "environment variable is required in CI environment")
		} else {
			add("JWT_SECRET", "jwt_secret secret is required")
		}
	}

	if cfg.CacheTTL <= 0 {
		add("CACHE_TTL", "must be positive")
	}
	if cfg.RateLimitPerMinute < 0 {
		add("RATE_LIMIT_PER_MINUTE", "must not be negative")
	}
	if !validLogLevels[cfg.LogLevel] {
		add("LOG_LEVEL", fmt.Sprintf("unknown level %q", cfg.LogLevel))
	}
	if cfg.LogFormat != "json" && cfg.LogFormat != "console" {
		add("LOG_FORMAT", fmt.Sprintf("must be json or console, got %q", cfg.LogFormat))
	}
	if cfg.Environment == Production && len(cfg.CORSOrigins) == 0 {
		add("CORS_ORIGINS", "is required in production")
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
