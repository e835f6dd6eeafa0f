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

// Store drivers understood by the database package
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMongo    = "mongo"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort     string
	ServerHost     string
	AllowedOrigins []string

	// Storage selection
	StoreDriver string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Mongo configuration
	MongoURI      string
	MongoDatabase string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret  string
	TokenTTL   time.Duration
	CookieName string

	// Image storage
	S3Bucket  string
	AWSRegion string

	LogLevel string
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()

	// A missing .env file is fine, the environment may already be populated
	if env == Development || env == Test {
		_ = godotenv.Load()
	}

	cfg := defaults()

	switch env {
	case CI, Development, Test:
		loadFromEnv(cfg)
	case Production:
		loadFromEnv(cfg)
		loadSecrets(cfg)
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// DSN returns the postgres connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// SQLiteDSN returns SQLitePath with foreign key enforcement switched on
func (c *Config) SQLiteDSN() string {
	if strings.Contains(c.SQLitePath, "_foreign_keys=") {
		return c.SQLitePath
	}
	sep := "?"
	if strings.Contains(c.SQLitePath, "?") {
		sep = "&"
	}
	return c.SQLitePath + sep + "_foreign_keys=on"
}

// Addr returns the listen address of the HTTP server
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

func defaults() *Config {
	return &Config{
		ServerPort:     "8080",
		ServerHost:     "",
		AllowedOrigins: []string{"http://localhost:5173"},
		StoreDriver:    DriverSQLite,
		DBHost:         "localhost",
		DBPort:         "5432",
		DBUser:         "postgres",
		DBName:         "recipeshare",
		DBSSLMode:      "disable",
		SQLitePath:     "recipeshare.db",
		MongoDatabase:  "recipeshare",
		RedisDB:        0,
		TokenTTL:       24 * time.Hour,
		CookieName:     "auth",
		LogLevel:       "info",
	}
}

// loadFromEnv overlays every variable that is set on top of cfg
func loadFromEnv(cfg *Config) {
	setString(&cfg.ServerPort, "SERVER_PORT")
	setString(&cfg.ServerHost, "SERVER_HOST")
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		cfg.AllowedOrigins = splitList(origins)
	}
	setString(&cfg.StoreDriver, "STORE_DRIVER")
	setString(&cfg.DBHost, "DB_HOST")
	setString(&cfg.DBPort, "DB_PORT")
	setString(&cfg.DBUser, "DB_USER")
	setString(&cfg.DBPassword, "DB_PASSWORD")
	setString(&cfg.DBName, "DB_NAME")
	setString(&cfg.DBSSLMode, "DB_SSL_MODE")
	setString(&cfg.SQLitePath, "SQLITE_PATH")
	setString(&cfg.MongoURI, "MONGO_URI")
	setString(&cfg.MongoDatabase, "MONGO_DATABASE")
	setString(&cfg.RedisHost, "REDIS_HOST")
	setString(&cfg.RedisPort, "REDIS_PORT")
	setString(&cfg.RedisPassword, "REDIS_PASSWORD")
	setString(&cfg.RedisURL, "REDIS_URL")
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RedisDB = n
		}
	}
	setString(&cfg.JWTSecret, "JWT_SECRET")
	if v := os.Getenv("TOKEN_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.TokenTTL = d
		}
	}
	setString(&cfg.CookieName, "COOKIE_NAME")
	setString(&cfg.S3Bucket, "S3_BUCKET_NAME")
	setString(&cfg.AWSRegion, "AWS_REGION")
	setString(&cfg.LogLevel, "LOG_LEVEL")
}

// loadSecrets reads sensitive values from Docker secrets, overriding the environment
func loadSecrets(cfg *Config) {
	setSecret(&cfg.DBUser, "db_user")
	setSecret(&cfg.DBPassword, "db_password")
	setSecret(&cfg.MongoURI, "mongo_uri")
	setSecret(&cfg.RedisPassword, "redis_password")
	setSecret(&cfg.RedisURL, "redis_url")
	setSecret(&cfg.JWTSecret, "jwt_secret")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setSecret(dst *string, name string) {
	if v := readSecret(name); v != "" {
		*dst = v
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
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
