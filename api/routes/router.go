package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/assettrack-backend/api/controllers"
	"github.com/angelmondragon/assettrack-backend/api/middleware"
	"github.com/angelmondragon/assettrack-backend/internal/activity"
	"github.com/angelmondragon/assettrack-backend/internal/items"
	"github.com/angelmondragon/assettrack-backend/internal/notes"
	"github.com/angelmondragon/assettrack-backend/internal/reminders"
	"github.com/angelmondragon/assettrack-backend/internal/stats"
	"github.com/angelmondragon/assettrack-backend/pkg/config"
	"github.com/angelmondragon/assettrack-backend/pkg/db"
	"github.com/angelmondragon/assettrack-backend/pkg/logger"
	"github.com/angelmondragon/assettrack-backend/pkg/metrics"
	"github.com/angelmondragon/assettrack-backend/pkg/ratelimit"
	"github.com/angelmondragon/assettrack-backend/pkg/redis"
)

// Services bundles the domain services the router dispatches to.
type Services struct {
	Items     items.Service
	Logs      activity.Service
	Notes     notes.Service
	Reminders reminders.Service
	Stats     stats.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	limiter ratelimit.Store,
	apiMetrics *metrics.APIMetrics,
	gatherer prometheus.Gatherer,
	svc Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(apiMetrics),
		middleware.CORS(cfg.App.CORSOrigins),
		middleware.Actor(cfg.JWT, logg),
	)

	policies := ratelimit.PoliciesFromConfig(cfg.RateLimit)
	limit := func(p ratelimit.Policy) func(http.Handler) http.Handler {
		return middleware.RateLimit(p, limiter, cfg.App.TrustProxy, apiMetrics, logg)
	}
	read := limit(policies.Read)
	write := limit(policies.Write)

	readyDeps := map[string]controllers.Pinger{"database": dbP}
	if redisClient != nil {
		readyDeps["redis"] = redisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readyDeps))
	})
	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}
	r.Get("/routes", controllers.ListRoutes(r, logg))

	r.Route("/items", func(r chi.Router) {
		r.With(read).Get("/", controllers.ListItems(svc.Items, logg))
		r.With(read).Get("/{customId}", controllers.GetItem(svc.Items, cfg.App, logg))
		r.With(read).Get("/{customId}/qrcode", controllers.ItemQRCode(svc.Items, cfg.App, logg))
		r.With(write).Post("/", controllers.CreateItem(svc.Items, cfg.App, logg))
		r.With(write).Put("/{customId}", controllers.UpdateItem(svc.Items, cfg.App, logg))
		r.With(write).Delete("/{customId}", controllers.DeleteItem(svc.Items, cfg.App, logg))
	})

	r.Route("/logs", func(r chi.Router) {
		r.With(limit(policies.Logs)).Get("/", controllers.ListLogs(svc.Logs, logg))
		r.With(read).Get("/item/{itemId}", controllers.ListItemLogs(svc.Logs, logg))
		r.With(read).Get("/{id}", controllers.GetLog(svc.Logs, logg))
		r.With(write).Delete("/util/deleteAll", controllers.PurgeLogs(svc.Logs, logg))
	})

	r.Route("/notes", func(r chi.Router) {
		r.With(read).Get("/", controllers.ListNotes(svc.Notes, logg))
		r.With(read).Get("/item/{itemId}", controllers.ListItemNotes(svc.Notes, logg))
		r.With(limit(policies.NoteCreate)).Post("/", controllers.CreateNote(svc.Notes, logg))
		r.With(limit(policies.NoteDelete)).Delete("/{id}", controllers.DeleteNote(svc.Notes, logg))
		r.With(write).Delete("/util/deleteAll", controllers.PurgeNotes(svc.Notes, logg))
	})

	r.Route("/reminders", func(r chi.Router) {
		r.With(read).Get("/", controllers.ListReminders(svc.Reminders, logg))
		r.With(read).Get("/item/{itemId}", controllers.ListItemReminders(svc.Reminders, logg))
		r.With(read).Get("/{id}", controllers.GetReminder(svc.Reminders, logg))
		r.With(write).Post("/", controllers.CreateReminder(svc.Reminders, logg))
		r.With(write).Put("/{id}", controllers.UpdateReminder(svc.Reminders, logg))
		r.With(write).Patch("/{id}/complete", controllers.CompleteReminder(svc.Reminders, logg))
		r.With(write).Delete("/{id}", controllers.DeleteReminder(svc.Reminders, logg))
		r.With(write).Delete("/util/deleteAll", controllers.PurgeReminders(svc.Reminders, logg))
	})

	r.With(read).Get("/stats/dashboard", controllers.Dashboard(svc.Stats, logg))

	return r
}
