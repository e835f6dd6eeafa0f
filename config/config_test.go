package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("ENV", "test")
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_USER", "chef")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "recipes")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.StoreDriver)
	assert.Equal(t, "db", cfg.DBHost)
	assert.Equal(t, "5433", cfg.DBPort)
	assert.Equal(t, "chef", cfg.DBUser)
	assert.Equal(t, "secret", cfg.DBPassword)
	assert.Equal(t, "recipes", cfg.DBName)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
	assert.Contains(t, cfg.DSN(), "dbname=recipes")
}

func TestLoadConfigWithDefaults(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("ENV", "development")
	for _, key := range []string{"STORE_DRIVER", "SERVER_PORT", "JWT_SECRET", "SQLITE_PATH", "TOKEN_TTL"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.StoreDriver)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "recipeshare.db", cfg.SQLitePath)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.NotEmpty(t, cfg.JWTSecret)
}

func TestValidateConfigProduction(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("CI", "")

	cfg := defaults()
	cfg.StoreDriver = DriverMongo

	err := ValidateConfig(cfg)
	require.Error(t, err)

	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))

	fields := make([]string, 0, len(verrs))
	for _, ve := range verrs {
		fields = append(fields, ve.Field)
	}
	assert.Contains(t, fields, "MONGO_URI")
	assert.Contains(t, fields, "JWT_SECRET")
}

func TestValidateConfigUnknownDriver(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("ENV", "development")
	cfg := defaults()
	cfg.StoreDriver = "cassandra"

	err := ValidateConfig(cfg)
	assert.ErrorContains(t, err, "STORE_DRIVER")
}

func TestLoadSecrets(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "jwt_secret"), []byte("from-secret\n"), 0o600))
	t.Setenv("SECRETS_DIR", dir)

	cfg := defaults()
	cfg.JWTSecret = "from-env"
	loadSecrets(cfg)

	assert.Equal(t, "from-secret", cfg.JWTSecret)
}

func TestSQLiteDSN(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"recipeshare.db", "recipeshare.db?_foreign_keys=on"},
		{"file:recipes.db?cache=shared", "file:recipes.db?cache=shared&_foreign_keys=on"},
		{"recipes.db?_foreign_keys=off", "recipes.db?_foreign_keys=off"},
	}
	for _, tt := range tests {
		cfg := &Config{SQLitePath: tt.path}
		assert.Equal(t, tt.want, cfg.SQLiteDSN())
	}
}

func TestIsProduction(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("ENV", "production")
	assert.True(t, IsProduction())

	t.Setenv("ENV", "development")
	assert.False(t, IsProduction())

	t.Setenv("CI", "true")
	t.Setenv("ENV", "production")
	assert.False(t, IsProduction())
}

func TestParseEnvironment(t *testing.T) {
	assert.Equal(t, Production, ParseEnvironment("Production"))
	assert.Equal(t, Test, ParseEnvironment("test"))
	assert.Equal(t, Development, ParseEnvironment(""))
	assert.Equal(t, Development, ParseEnvironment("staging"))
}
