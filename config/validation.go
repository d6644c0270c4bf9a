package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks every setting and reports all problems at once
func ValidateConfig(cfg *Config) error {
	var errs []ValidationError
	add := func(field, format string, args ...interface{}) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if cfg.ServerPort == "" {
		add("SERVER_PORT", "is required")
	}

	switch cfg.DBDriver {
	case DriverPostgres:
		if cfg.DBHost == "" {
			add("DB_HOST", "is required for postgres")
		}
		if cfg.DBName == "" {
			add("DB_NAME", "is required for postgres")
		}
		if cfg.DBUser == "" {
			add("DB_USER", "is required for postgres")
		}
		if cfg.DBPassword == "" && (cfg.Environment == Production || cfg.Environment == CI) {
			add("DB_PASSWORD", "db_password secret is required in %s", cfg.Environment)
		}
	case DriverSQLite:
		if cfg.SQLitePath == "" {
			add("SQLITE_PATH", "is required for sqlite")
		}
	default:
		add("DB_DRIVER", "unsupported driver %q", cfg.DBDriver)
	}

	if cfg.JWTSecret == "" {
		add("JWT_SECRET", "jwt_secret secret is required")
	} else if cfg.Environment == Production && cfg.JWTSecret == defaultJWTSecret {
		add("JWT_SECRET", "development secret must not be used in production")
	}

	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		add("APP_TIMEZONE", "unknown zone %q", cfg.Timezone)
	}
	if _, err := cron.ParseStandard(cfg.LeaderboardReconcileCron); err != nil {
		add("LEADERBOARD_RECONCILE_CRON", "invalid schedule: %v", err)
	}
	if cfg.MealLogRateLimit <= 0 {
		add("MEAL_LOG_RATE_LIMIT", "must be a positive integer")
	}
	if cfg.ForumPostRateLimit <= 0 {
		add("FORUM_POST_RATE_LIMIT", "must be a positive integer")
	}

	if len(errs) == 0 {
		return nil
	}
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return fmt.Errorf("configuration validation failed:\n%s", strings.Join(msgs, "\n"))
}

// RedisEnabled reports whether a Redis endpoint is configured
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}
