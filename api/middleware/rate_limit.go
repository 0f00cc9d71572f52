package middleware

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/angelmondragon/assettrack-backend/api/responses"
	pkgerrors "github.com/angelmondragon/assettrack-backend/pkg/errors"
	"github.com/angelmondragon/assettrack-backend/pkg/logger"
	"github.com/angelmondragon/assettrack-backend/pkg/ratelimit"
)

type rateLimitRecorder interface {
	IncRateLimited(policy string)
}

// RateLimit enforces a fixed-window ceiling per client IP for every route the
// policy guards. Store failures let the request through. Forwarding headers
// only pick the client when trustProxy is set.
func RateLimit(policy ratelimit.Policy, store ratelimit.Store, trustProxy bool, metrics rateLimitRecorder, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if store == nil || policy.Window <= 0 || policy.Limit <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			ip := clientIP(r, trustProxy)

			win, err := store.Hit(ctx, policy.Name+":"+ip, policy.Window)
			if err != nil {
				if logg != nil {
					logg.Error(logg.WithField(ctx, "policy", policy.Name), "rate_limit.store_failed", err)
				}
				next.ServeHTTP(w, r)
				return
			}

			reset := resetSeconds(win.ResetAt)
			h := w.Header()
			h.Set("RateLimit-Limit", strconv.Itoa(policy.Limit))
			h.Set("RateLimit-Remaining", strconv.Itoa(policy.Remaining(win.Count)))
			h.Set("RateLimit-Reset", strconv.Itoa(reset))

			if !policy.Allows(win.Count) {
				h.Set("Retry-After", strconv.Itoa(reset))
				respondRateLimited(ctx, logg, w, policy, ip, win.Count)
				if metrics != nil {
					metrics.IncRateLimited(policy.Name)
				}
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func respondRateLimited(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, policy ratelimit.Policy, ip string, count int64) {
	if logg != nil {
		logCtx := logg.WithFields(ctx, map[string]any{
			"policy":         policy.Name,
			"ip":             ip,
			"attempts":       count,
			"limit":          policy.Limit,
			"window_seconds": int(policy.Window.Seconds()),
		})
		logg.Warn(logCtx, "rate_limit.blocked")
	}
	responses.WriteError(ctx, nil, w, pkgerrors.New(pkgerrors.CodeRateLimit, policy.Message))
}

func resetSeconds(resetAt time.Time) int {
	secs := int(time.Until(resetAt).Round(time.Second) / time.Second)
	if secs < 0 {
		return 0
	}
	return secs
}

func clientIP(r *http.Request, trustProxy bool) string {
	if r == nil {
		return ""
	}
	if !trustProxy {
		return remoteHost(r)
	}
	if header := r.Header.Get("X-Forwarded-For"); header != "" {
		for _, part := range strings.Split(header, ",") {
			if ip := strings.TrimSpace(part); ip != "" {
				return ip
			}
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	return remoteHost(r)
}

func remoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}
