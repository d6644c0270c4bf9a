package database_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/glycofit/backend/config"
	"github.com/glycofit/backend/internal/database"
	"github.com/glycofit/backend/internal/models"
	"github.com/glycofit/backend/internal/testhelpers"
)

func TestRunMigrationsSQLite(t *testing.T) {
	db := testhelpers.SetupSQLite(t)

	for _, m := range models.AllModels() {
		assert.True(t, db.Migrator().HasTable(m), "%T", m)
	}

	// Running again is a no-op.
	require.NoError(t, database.RunMigrations(db, zap.NewNop()))
	require.NoError(t, database.HealthCheck(context.Background(), db))
}

func TestNewSQLite(t *testing.T) {
	cfg := &config.Config{DBDriver: config.DriverSQLite, SQLitePath: t.TempDir() + "/glycofit.db"}

	db, err := database.New(cfg, zap.NewNop())
	require.NoError(t, err)
	defer database.Close(db)

	assert.Equal(t, "sqlite", db.Dialector.Name())
	require.NoError(t, database.HealthCheck(context.Background(), db))
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	_, err := database.New(&config.Config{DBDriver: "oracle"}, zap.NewNop())
	assert.Error(t, err)
}

func TestRunMigrationsPostgres(t *testing.T) {
	db := testhelpers.SetupPostgres(t)

	var applied []string
	require.NoError(t, db.Table("schema_migrations").Order("name").Pluck("name", &applied).Error)
	assert.Equal(t, []string{"001_leaderboard_ranking.sql", "002_forum_search.sql"}, applied)

	// Running again must not re-apply files.
	require.NoError(t, database.RunMigrations(db, zap.NewNop()))
}
