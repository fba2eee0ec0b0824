package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/growly/growly-web/pkg/config"
	"github.com/growly/growly-web/pkg/db"
	"github.com/growly/growly-web/pkg/logger"
	"github.com/growly/growly-web/pkg/migrate"
	"github.com/joho/godotenv"
)

type options struct {
	cmd     string
	dir     string
	name    string
	version string
}

func main() {
	logg := logger.New(logger.Options{ServiceName: "migrate"})
	_ = godotenv.Load()

	var opts options
	flag.StringVar(&opts.cmd, "cmd", "up", "migration command: up|down|status|version|create|validate")
	flag.StringVar(&opts.dir, "dir", migrate.DefaultDir, "migrations root for create and validate")
	flag.StringVar(&opts.name, "name", "", "migration name (for create)")
	flag.StringVar(&opts.version, "version", "", "target version (YYYYMMDDHHMMSS) for -cmd=version")
	flag.Parse()

	// create and validate only touch the filesystem
	switch opts.cmd {
	case "create":
		exitOn(logg, "create migration", create(opts))
		return
	case "validate":
		exitOn(logg, "validate migrations", migrate.ValidateDir(opts.dir))
		fmt.Println("migration validation passed")
		return
	}

	cfg, err := config.Load()
	exitOn(logg, "load config", err)

	logg = logger.New(logger.Options{
		ServiceName: "migrate",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":    cfg.App.Env,
		"cmd":    opts.cmd,
		"driver": cfg.DB.Driver,
	})

	exitOn(logg, "migrate "+opts.cmd, run(ctx, cfg, logg, opts))
}

func create(opts options) error {
	if opts.name == "" {
		return fmt.Errorf("missing -name for create")
	}
	paths, err := migrate.CreateSQLMigration(opts.dir, opts.name, time.Now())
	if err != nil {
		return err
	}
	for _, path := range paths {
		fmt.Println("created migration:", path)
	}
	return nil
}

func run(ctx context.Context, cfg *config.Config, logg *logger.Logger, opts options) error {
	client, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return err
	}
	defer client.Close()

	sqlDB, err := client.SQL()
	if err != nil {
		return err
	}

	switch opts.cmd {
	case "up", "down", "status":
		report, err := migrate.Run(ctx, sqlDB, cfg.DB.Driver, opts.cmd)
		if err != nil {
			return err
		}
		for _, line := range report {
			fmt.Println(line)
		}
		logg.Info(logg.WithField(ctx, "lines", len(report)), "migrate finished")
		return nil
	case "version":
		if opts.version == "" {
			return fmt.Errorf("missing -version for version command")
		}
		return migrate.MigrateToVersion(ctx, sqlDB, cfg.DB.Driver, opts.version)
	default:
		return fmt.Errorf("unknown -cmd value %q", opts.cmd)
	}
}

func exitOn(logg *logger.Logger, step string, err error) {
	if err == nil {
		return
	}
	logg.Error(context.Background(), step+" failed", err)
	os.Exit(1)
}
