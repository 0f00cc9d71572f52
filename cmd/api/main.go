package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/angelmondragon/assettrack-backend/api/routes"
	"github.com/angelmondragon/assettrack-backend/internal/activity"
	"github.com/angelmondragon/assettrack-backend/internal/items"
	"github.com/angelmondragon/assettrack-backend/internal/notes"
	"github.com/angelmondragon/assettrack-backend/internal/reminders"
	"github.com/angelmondragon/assettrack-backend/internal/stats"
	"github.com/angelmondragon/assettrack-backend/pkg/config"
	"github.com/angelmondragon/assettrack-backend/pkg/db"
	"github.com/angelmondragon/assettrack-backend/pkg/instance"
	"github.com/angelmondragon/assettrack-backend/pkg/logger"
	"github.com/angelmondragon/assettrack-backend/pkg/metrics"
	"github.com/angelmondragon/assettrack-backend/pkg/migrate"
	"github.com/angelmondragon/assettrack-backend/pkg/qrcode"
	"github.com/angelmondragon/assettrack-backend/pkg/ratelimit"
	"github.com/angelmondragon/assettrack-backend/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       cfg.App.LogLevel,
		WarnStack:   cfg.App.LogWarnStack,
		Format:      cfg.App.LogFormat,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, db.Options{UseSQLite: cfg.FeatureFlags.UseSQLite}, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	var (
		redisClient *redis.Client
		limiter     ratelimit.Store = ratelimit.NewMemoryStore()
	)
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		limiter = redisClient
	}

	apiMetrics := metrics.NewAPIMetrics(prometheus.DefaultRegisterer)
	conn := dbClient.DB()

	logRepo := activity.NewRepository(conn)
	writer := activity.NewWriter(logRepo, logg, apiMetrics)
	logService, err := activity.NewService(logRepo)
	requireService(ctx, logg, "logs", err)

	itemRepo := items.NewRepository(conn)
	itemService, err := items.NewService(items.ServiceParams{
		Repo:   itemRepo,
		IDs:    items.NewIDGenerator(cfg.Items.IDScheme, itemRepo),
		QR:     qrcode.NewGenerator(cfg.Items.QRSize),
		Audit:  writer,
		Logger: logg,
	})
	requireService(ctx, logg, "items", err)

	noteService, err := notes.NewService(notes.NewRepository(conn), itemRepo, writer)
	requireService(ctx, logg, "notes", err)

	reminderRepo := reminders.NewRepository(conn)
	reminderService, err := reminders.NewService(reminders.ServiceParams{
		Repo:           reminderRepo,
		Items:          itemRepo,
		Audit:          writer,
		Metrics:        apiMetrics,
		Logger:         logg,
		ValidateItems:  cfg.Reminders.ValidateItems,
		UpcomingWindow: cfg.Reminders.UpcomingWindow,
	})
	requireService(ctx, logg, "reminders", err)

	statsService, err := stats.NewService(itemRepo, reminderRepo, reminderService, logg)
	requireService(ctx, logg, "stats", err)

	addr := instance.ListenAddr(cfg.App.Port)
	ctx = logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": instance.GetID(),
		"driver":   dbClient.Driver(),
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, limiter, apiMetrics, prometheus.DefaultGatherer, routes.Services{
			Items:     itemService,
			Logs:      logService,
			Notes:     noteService,
			Reminders: reminderService,
			Stats:     statsService,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		errs <- server.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logg.Info(ctx, "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(shutdownCtx, "graceful shutdown failed", err)
		}
	}
}

func requireService(ctx context.Context, logg *logger.Logger, name string, err error) {
	if err == nil {
		return
	}
	logg.Error(logg.WithField(ctx, "service", name), "failed to create service", err)
	os.Exit(1)
}
