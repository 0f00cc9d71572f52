package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"

	"github.com/angelmondragon/assettrack-backend/internal/activity"
	"github.com/angelmondragon/assettrack-backend/internal/items"
	"github.com/angelmondragon/assettrack-backend/internal/notes"
	"github.com/angelmondragon/assettrack-backend/internal/reminders"
	"github.com/angelmondragon/assettrack-backend/pkg/config"
	"github.com/angelmondragon/assettrack-backend/pkg/db"
	"github.com/angelmondragon/assettrack-backend/pkg/logger"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "purge"})
	_ = godotenv.Load()

	withReminders := flag.Bool("reminders", false, "also delete every reminder")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}
	logg = logger.New(logger.Options{
		ServiceName: "purge",
		Level:       cfg.App.LogLevel,
		Format:      cfg.App.LogFormat,
	})
	ctx := logg.WithField(context.Background(), "env", cfg.App.Env)

	dbClient, err := db.New(ctx, cfg.DB, db.Options{UseSQLite: cfg.FeatureFlags.UseSQLite}, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()
	conn := dbClient.DB()

	logRepo := activity.NewRepository(conn)
	writer := activity.NewWriter(logRepo, logg, nil)
	logService, err := activity.NewService(logRepo)
	if err != nil {
		logg.Error(ctx, "failed to create log service", err)
		os.Exit(1)
	}
	noteService, err := notes.NewService(notes.NewRepository(conn), items.NewRepository(conn), writer)
	if err != nil {
		logg.Error(ctx, "failed to create note service", err)
		os.Exit(1)
	}

	targets := []target{
		{name: "logs", svc: logService},
		{name: "notes", svc: noteService},
	}
	if *withReminders {
		reminderService, err := reminders.NewService(reminders.ServiceParams{
			Repo:   reminders.NewRepository(conn),
			Audit:  writer,
			Logger: logg,
		})
		if err != nil {
			logg.Error(ctx, "failed to create reminder service", err)
			os.Exit(1)
		}
		targets = append(targets, target{name: "reminders", svc: reminderService})
	}

	deleted, err := purgeAll(ctx, logg, targets)
	for name, n := range deleted {
		fmt.Printf("%s: deleted %d\n", name, n)
	}
	if err != nil {
		for _, e := range multierr.Errors(err) {
			logg.Error(ctx, "purge failed", e)
		}
		os.Exit(1)
	}
}
