package migrate_test

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/growly/growly-web/pkg/config"
	"github.com/growly/growly-web/pkg/migrate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestEmbeddedMigrationsAreValid(t *testing.T) {
	for _, driver := range []string{config.DBDriverSQLite, config.DBDriverPostgres} {
		fsys, err := migrate.Files(driver)
		require.NoError(t, err)
		require.NoError(t, migrate.ValidateFS(fsys), driver)

		names, err := fs.Glob(fsys, "*.sql")
		require.NoError(t, err)
		assert.Len(t, names, 2, driver)
	}
}

func TestDialectsShareVersions(t *testing.T) {
	lite, err := migrate.Files(config.DBDriverSQLite)
	require.NoError(t, err)
	pg, err := migrate.Files(config.DBDriverPostgres)
	require.NoError(t, err)

	liteNames, _ := fs.Glob(lite, "*.sql")
	pgNames, _ := fs.Glob(pg, "*.sql")
	assert.Equal(t, liteNames, pgNames)
}

func TestSchemaCarriesConstraints(t *testing.T) {
	fsys, err := migrate.Files(config.DBDriverSQLite)
	require.NoError(t, err)
	data, err := fs.ReadFile(fsys, "20250101000000_init_schema.sql")
	require.NoError(t, err)
	content := string(data)

	for _, sub := range []string{
		"CREATE UNIQUE INDEX idx_users_email ON users (email)",
		"CHECK (rating BETWEEN 1 AND 5)",
		"CHECK (price >= 0)",
		"CREATE UNIQUE INDEX idx_targets_user_id ON targets (user_id)",
		"CREATE UNIQUE INDEX idx_statuses_user_id ON statuses (user_id)",
		"DROP TABLE users",
	} {
		assert.Contains(t, content, sub)
	}
}

func TestRunUpDownAgainstSQLite(t *testing.T) {
	conn, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	ctx := context.Background()
	report, err := migrate.Run(ctx, sqlDB, config.DBDriverSQLite, "up")
	require.NoError(t, err)
	assert.Len(t, report, 2)

	var plans int64
	require.NoError(t, conn.Table("plans").Count(&plans).Error)
	assert.Equal(t, int64(3), plans)

	status, err := migrate.Run(ctx, sqlDB, config.DBDriverSQLite, "status")
	require.NoError(t, err)
	require.Len(t, status, 2)
	assert.True(t, strings.HasSuffix(status[0], "applied"))

	_, err = migrate.Run(ctx, sqlDB, config.DBDriverSQLite, "down")
	require.NoError(t, err)
	require.NoError(t, conn.Table("plans").Count(&plans).Error)
	assert.Equal(t, int64(0), plans)

	require.NoError(t, migrate.MigrateToVersion(ctx, sqlDB, config.DBDriverSQLite, "20250101000100"))
	require.NoError(t, conn.Table("plans").Count(&plans).Error)
	assert.Equal(t, int64(3), plans)

	_, err = migrate.Run(ctx, sqlDB, config.DBDriverSQLite, "redo")
	assert.Error(t, err)
}

func TestCreateSQLMigrationWritesEveryDialect(t *testing.T) {
	root := t.TempDir()
	now := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)

	paths, err := migrate.CreateSQLMigration(root, "Add Coupons!", now)
	require.NoError(t, err)
	require.Len(t, paths, 2)
	for _, p := range paths {
		assert.Equal(t, "20250304050607_add_coupons.sql", filepath.Base(p))
		b, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.Contains(t, string(b), "-- +goose Up")
	}
	require.NoError(t, migrate.ValidateDir(root))

	_, err = migrate.CreateSQLMigration(root, "Add Coupons!", now)
	assert.Error(t, err)

	_, err = migrate.CreateSQLMigration(root, "!!!", now)
	assert.Error(t, err)
}
