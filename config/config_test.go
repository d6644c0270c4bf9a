package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate clears every variable LoadConfig reads and points SECRETS_DIR at an empty directory.
func isolate(t *testing.T) string {
	t.Helper()
	for _, key := range []string{
		"CI", "ENV", "SERVER_PORT", "SERVER_HOST", "CORS_ORIGINS", "DB_DRIVER", "DB_HOST", "DB_PORT",
		"DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSL_MODE", "SQLITE_PATH", "REDIS_HOST", "REDIS_PORT",
		"REDIS_PASSWORD", "REDIS_DB", "REDIS_URL", "JWT_SECRET", "APP_TIMEZONE", "FOOD_CATALOG_PATH",
		"FOOD_CATALOG_S3_BUCKET", "FOOD_CATALOG_S3_KEY", "AWS_REGION", "LEADERBOARD_RECONCILE_CRON",
		"MEAL_LOG_RATE_LIMIT", "FORUM_POST_RATE_LIMIT", "TEST_DB_PASSWORD", "TEST_JWT_SECRET",
		"TEST_REDIS_PASSWORD", "TEST_REDIS_URL",
	} {
		t.Setenv(key, "")
	}
	dir := t.TempDir()
	t.Setenv("SECRETS_DIR", dir)
	return dir
}

func TestLoadConfigWithDefaults(t *testing.T) {
	isolate(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, Development, cfg.Environment)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "glycofit", cfg.DBName)
	assert.Equal(t, "disable", cfg.DBSSLMode)
	assert.Equal(t, defaultJWTSecret, cfg.JWTSecret)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
	assert.Equal(t, 60, cfg.MealLogRateLimit)
	assert.False(t, cfg.RedisEnabled())
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("SQLITE_PATH", "/tmp/glycofit.db")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	t.Setenv("APP_TIMEZONE", "Asia/Kolkata")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("FORUM_POST_RATE_LIMIT", "3")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "/tmp/glycofit.db", cfg.SQLitePath)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, "Asia/Kolkata", cfg.Timezone)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, 3, cfg.ForumPostRateLimit)
	assert.True(t, cfg.RedisEnabled())
}

func TestLoadConfigProductionRequiresSecrets(t *testing.T) {
	isolate(t)
	t.Setenv("ENV", "production")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PASSWORD")
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadConfigProductionReadsDockerSecrets(t *testing.T) {
	dir := isolate(t)
	t.Setenv("ENV", "production")
	for name, value := range map[string]string{
		"db_password": "s3cret\n",
		"jwt_secret":  "prod-jwt",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(value), 0o600))
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, Production, cfg.Environment)
	assert.Equal(t, "s3cret", cfg.DBPassword)
	assert.Equal(t, "prod-jwt", cfg.JWTSecret)
}

func TestLoadConfigCIUsesTestSecrets(t *testing.T) {
	isolate(t)
	t.Setenv("CI", "true")
	t.Setenv("TEST_DB_PASSWORD", "ci-pass")
	t.Setenv("TEST_JWT_SECRET", "ci-jwt")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, CI, cfg.Environment)
	assert.Equal(t, "ci-pass", cfg.DBPassword)
	assert.Equal(t, "ci-jwt", cfg.JWTSecret)
}

func TestValidateConfigCollectsAllErrors(t *testing.T) {
	cfg := &Config{
		Environment:              Development,
		ServerPort:               "8080",
		DBDriver:                 "mysql",
		JWTSecret:                "x",
		Timezone:                 "Nowhere/City",
		LeaderboardReconcileCron: "every night",
		MealLogRateLimit:         0,
		ForumPostRateLimit:       5,
	}

	err := ValidateConfig(cfg)
	require.Error(t, err)
	for _, field := range []string{"DB_DRIVER", "APP_TIMEZONE", "LEADERBOARD_RECONCILE_CRON", "MEAL_LOG_RATE_LIMIT"} {
		assert.Contains(t, err.Error(), field)
	}
	assert.NotContains(t, err.Error(), "FORUM_POST_RATE_LIMIT")
}
