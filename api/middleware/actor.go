package middleware

import (
	"net/http"
	"strings"

	"github.com/angelmondragon/assettrack-backend/api/responses"
	pkgAuth "github.com/angelmondragon/assettrack-backend/pkg/auth"
	"github.com/angelmondragon/assettrack-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/assettrack-backend/pkg/errors"
	"github.com/angelmondragon/assettrack-backend/pkg/logger"
)

const userNameHeader = "X-User-Name"

const maxActorLength = 100

// Actor resolves who is calling. A bearer token is optional, but when one is
// sent and JWT is configured it must be valid; its name claim wins. Otherwise
// the X-User-Name header is used. Handlers fall back to the body's user field
// and then the default actor.
func Actor(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			actor := ""

			if token := bearerToken(r); token != "" && cfg.Enabled() {
				claims, err := pkgAuth.ParseActorToken(cfg, token)
				if err != nil {
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "Invalid token"))
					return
				}
				actor = claims.Name
			}
			if actor == "" {
				actor = strings.TrimSpace(r.Header.Get(userNameHeader))
			}

			if actor != "" {
				if len(actor) > maxActorLength {
					actor = actor[:maxActorLength]
				}
				ctx = WithActor(ctx, actor)
				if logg != nil {
					ctx = logg.WithActor(ctx, actor)
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(raw) < 7 || !strings.EqualFold(raw[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(raw[7:])
}
