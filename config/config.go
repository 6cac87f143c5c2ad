package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerPort string
	ServerHost string

	// Recipe corpus and engine tuning
	CorpusPath   string
	EngineConfig string

	// Database configuration
	DBDriver   string
	SQLitePath string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration. Caching and rate limiting are disabled when
	// neither RedisURL nor RedisHost is set.
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string

	CORSOrigins        []string
	CacheTTL           time.Duration
	RateLimitPerMinute int

	LogLevel  string
	LogFormat string

	AWSRegion string
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()

	switch env {
	case Development, Test:
		// .env is optional outside of CI and production
		if err := godotenv.Load(envFile()); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	case CI, Production:
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	cfg, err := fromEnv(env)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s configuration: %w", env, err)
	}

	// Validate the configuration
	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func envFile() string {
	if path := os.Getenv("ENV_FILE"); path != "" {
		return path
	}
	return ".env"
}

func fromEnv(env Environment) (*Config, error) {
	cfg := &Config{
		Environment:  env,
		ServerPort:   getEnv("SERVER_PORT", "8000"),
		ServerHost:   getEnv("SERVER_HOST", "0.0.0.0"),
		CorpusPath:   getEnv("CORPUS_PATH", "data/recipes.csv"),
		EngineConfig: getEnv("ENGINE_CONFIG", "config/engine.yaml"),
		DBDriver:     strings.ToLower(getEnv("DB_DRIVER", DriverSQLite)),
		SQLitePath:   getEnv("SQLITE_PATH", "mealplanner.db"),
		DBHost:       getEnv("DB_HOST", "localhost"),
		DBPort:       getEnv("DB_PORT", "5432"),
		DBUser:       getEnv("DB_USER", "postgres"),
		DBName:       getEnv("DB_NAME", "mealplanner"),
		DBSSLMode:    getEnv("DB_SSL_MODE", "disable"),
		RedisHost:    os.Getenv("REDIS_HOST"),
		RedisPort:    getEnv("REDIS_PORT", "6379"),
		RedisURL:     os.Getenv("REDIS_URL"),
		CORSOrigins:  splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		LogLevel:     strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:    strings.ToLower(getEnv("LOG_FORMAT", "json")),
		AWSRegion:    getEnv("AWS_REGION", "us-east-1"),
	}

	var err error
	if cfg.RedisDB, err = getEnvAsInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.RateLimitPerMinute, err = getEnvAsInt("RATE_LIMIT_PER_MINUTE", 60); err != nil {
		return nil, err
	}
	if cfg.CacheTTL, err = getEnvAsDuration("CACHE_TTL", 10*time.Minute); err != nil {
		return nil, err
	}

	// In CI sensitive values come from environment variables only; everywhere
	// else a Docker secret takes precedence over the environment.
	if env == CI {
		cfg.DBPassword = os.Getenv("DB_PASSWORD")
		cfg.JWTSecret = os.Getenv("JWT_SECRET")
		cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	} else {
		cfg.DBPassword = secretOrEnv("db_password", "DB_PASSWORD")
		cfg.JWTSecret = secretOrEnv("jwt_secret", "JWT_SECRET")
		cfg.RedisPassword = secretOrEnv("redis_password", "REDIS_PASSWORD")
	}

	return cfg, nil
}

// Addr is the listen address of the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.ServerHost, c.ServerPort)
}

// PostgresDSN builds a lib/pq connection string from the DB_* settings.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// RedisEnabled reports whether a Redis endpoint is configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, ValidationError{Field: key, Message: fmt.Sprintf("must be an integer, got %q", v)}
	}
	return n, nil
}

// getEnvAsDuration accepts Go durations ("90s") or a plain number of seconds.
func getEnvAsDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, ValidationError{Field: key, Message: fmt.Sprintf("must be a duration, got %q", v)}
	}
	return d, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func secretOrEnv(secret, envVar string) string {
	if v := readSecret(secret); v != "" {
		return v
	}
	return os.Getenv(envVar)
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
