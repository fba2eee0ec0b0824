package migrate

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"github.com/growly/growly-web/pkg/config"
	"github.com/pressly/goose/v3"
)

// DefaultDir is the on-disk root used by the create and validate commands.
const DefaultDir = "pkg/migrate/migrations"

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var embedded embed.FS

// Dialect maps a configured driver name onto goose's dialect and the
// embedded directory holding its migrations.
func Dialect(driver string) (goose.Dialect, string, error) {
	switch strings.ToLower(driver) {
	case config.DBDriverSQLite:
		return goose.DialectSQLite3, "migrations/sqlite", nil
	case config.DBDriverPostgres:
		return goose.DialectPostgres, "migrations/postgres", nil
	default:
		return "", "", fmt.Errorf("no migrations for driver %q", driver)
	}
}

// Files returns the embedded migrations for driver.
func Files(driver string) (fs.FS, error) {
	_, dir, err := Dialect(driver)
	if err != nil {
		return nil, err
	}
	return fs.Sub(embedded, dir)
}

func newProvider(db *sql.DB, driver string) (*goose.Provider, error) {
	if db == nil {
		return nil, fmt.Errorf("db is required")
	}
	dialect, _, err := Dialect(driver)
	if err != nil {
		return nil, err
	}
	fsys, err := Files(driver)
	if err != nil {
		return nil, err
	}
	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return nil, fmt.Errorf("goose provider: %w", err)
	}
	return provider, nil
}

// Run executes up, down or status against the embedded migrations and
// returns a printable report.
func Run(ctx context.Context, db *sql.DB, driver string, command string) ([]string, error) {
	provider, err := newProvider(db, driver)
	if err != nil {
		return nil, err
	}

	var report []string
	switch command {
	case "up":
		results, err := provider.Up(ctx)
		if err != nil {
			return nil, fmt.Errorf("goose up: %w", err)
		}
		for _, r := range results {
			report = append(report, fmt.Sprintf("applied %d (%s)", r.Source.Version, r.Duration))
		}
	case "down":
		result, err := provider.Down(ctx)
		if err != nil {
			return nil, fmt.Errorf("goose down: %w", err)
		}
		if result != nil {
			report = append(report, fmt.Sprintf("rolled back %d", result.Source.Version))
		}
	case "status":
		statuses, err := provider.Status(ctx)
		if err != nil {
			return nil, fmt.Errorf("goose status: %w", err)
		}
		for _, s := range statuses {
			report = append(report, fmt.Sprintf("%d\t%s", s.Source.Version, s.State))
		}
	default:
		return nil, fmt.Errorf("unknown migrate command %q", command)
	}
	return report, nil
}

// MigrateToVersion migrates up/down to the requested version by comparing current DB version.
func MigrateToVersion(ctx context.Context, db *sql.DB, driver string, targetVersion string) error {
	if targetVersion == "" {
		return fmt.Errorf("targetVersion is required")
	}

	target, err := strconv.ParseInt(targetVersion, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid version %q (expected YYYYMMDDHHMMSS): %w", targetVersion, err)
	}

	provider, err := newProvider(db, driver)
	if err != nil {
		return err
	}

	current, err := provider.GetDBVersion(ctx)
	if err != nil {
		return fmt.Errorf("get db version: %w", err)
	}

	switch {
	case current == target:
		return nil
	case current < target:
		if _, err := provider.UpTo(ctx, target); err != nil {
			return fmt.Errorf("goose up-to %d: %w", target, err)
		}
	default:
		if _, err := provider.DownTo(ctx, target); err != nil {
			return fmt.Errorf("goose down-to %d: %w", target, err)
		}
	}
	return nil
}
