package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/angelmondragon/assettrack-backend/pkg/migrate"
)

type options struct {
	dir     string
	name    string
	version string
	driver  string
}

// offlineCommand runs without a database connection.
type offlineCommand func(out io.Writer, opts options) error

// onlineCommand needs an open connection.
type onlineCommand func(ctx context.Context, sqlDB *sql.DB, opts options) error

var offlineCommands = map[string]offlineCommand{
	"create": func(out io.Writer, opts options) error {
		if opts.name == "" {
			return fmt.Errorf("missing -name for create")
		}
		path, err := migrate.CreateSQLMigration(opts.dir, opts.name, time.Now())
		if err != nil {
			return fmt.Errorf("create migration: %w", err)
		}
		fmt.Fprintln(out, "created migration:", path)
		return nil
	},
	"validate": func(out io.Writer, opts options) error {
		if err := migrate.ValidateDir(opts.dir); err != nil {
			return fmt.Errorf("validate %s: %w", opts.dir, err)
		}
		if opts.dir == migrate.DefaultDir {
			if err := migrate.ValidateEmbedded(); err != nil {
				return fmt.Errorf("validate embedded migrations: %w", err)
			}
		}
		fmt.Fprintln(out, "migration validation passed")
		return nil
	},
}

var onlineCommands = map[string]onlineCommand{
	"up":     gooseCommand("up"),
	"down":   gooseCommand("down"),
	"status": gooseCommand("status"),
	"redo":   gooseCommand("redo"),
	"reset":  gooseCommand("reset"),
	"version": func(ctx context.Context, sqlDB *sql.DB, opts options) error {
		if opts.version == "" {
			return fmt.Errorf("missing -version for version")
		}
		return migrate.MigrateToVersion(ctx, sqlDB, opts.driver, opts.dir, opts.version)
	},
}

func gooseCommand(name string) onlineCommand {
	return func(ctx context.Context, sqlDB *sql.DB, opts options) error {
		return migrate.Run(ctx, sqlDB, opts.driver, opts.dir, name)
	}
}

// commandNames lists every supported -cmd value for the usage string.
func commandNames() []string {
	names := make([]string, 0, len(offlineCommands)+len(onlineCommands))
	for name := range offlineCommands {
		names = append(names, name)
	}
	for name := range onlineCommands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
