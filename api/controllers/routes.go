package controllers

import (
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/assettrack-backend/api/responses"
	pkgerrors "github.com/angelmondragon/assettrack-backend/pkg/errors"
	"github.com/angelmondragon/assettrack-backend/pkg/logger"
	"github.com/angelmondragon/assettrack-backend/pkg/types"
)

// RouteInfo is one registered method and path.
type RouteInfo struct {
	Method string `json:"method"`
	Path   string `json:"path"`
}

// ListRoutes walks the router at request time so it always reflects what is
// mounted.
func ListRoutes(router chi.Routes, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var routes []RouteInfo
		err := chi.Walk(router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
			routes = append(routes, RouteInfo{Method: method, Path: route})
			return nil
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Error listing routes"))
			return
		}
		sort.Slice(routes, func(i, j int) bool {
			if routes[i].Path == routes[j].Path {
				return routes[i].Method < routes[j].Method
			}
			return routes[i].Path < routes[j].Path
		})
		responses.WriteSuccess(w, types.NewList(routes))
	}
}
