package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/assettrack-backend/api/responses"
	"github.com/angelmondragon/assettrack-backend/api/validators"
	"github.com/angelmondragon/assettrack-backend/internal/items"
	"github.com/angelmondragon/assettrack-backend/pkg/config"
	"github.com/angelmondragon/assettrack-backend/pkg/db/models"
	"github.com/angelmondragon/assettrack-backend/pkg/logger"
	"github.com/angelmondragon/assettrack-backend/pkg/types"
)

const (
	itemUpdatedMessage = "Item updated successfully"
	itemDeletedMessage = "Item deleted successfully"
)

func CreateItem(svc items.Service, app config.AppConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req items.ItemRequest
		if err := validators.DecodeJSONBodyWithMessage(r, &req, items.MissingFieldsMessage); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.Create(r.Context(), req, itemMeta(r, app, req.User))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCreated(w, item)
	}
}

func ListItems(svc items.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		filter := items.ListFilter{
			Category:   validators.SanitizeString(q.Get("category"), 32),
			Status:     validators.SanitizeString(q.Get("status"), 32),
			Department: validators.SanitizeString(q.Get("department"), 32),
			Search:     validators.SanitizeString(q.Get("search"), 100),
		}

		list, err := svc.List(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, types.NewList(list))
	}
}

func GetItem(svc items.Service, app config.AppConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		item, err := svc.Get(r.Context(), chi.URLParam(r, "customId"), itemMeta(r, app, ""))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

func ItemQRCode(svc items.Service, app config.AppConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := svc.QRCode(r.Context(), chi.URLParam(r, "customId"), itemMeta(r, app, ""))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func UpdateItem(svc items.Service, app config.AppConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req items.ItemRequest
		if err := validators.DecodeJSONBodyWithMessage(r, &req, items.MissingFieldsMessage); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.Update(r.Context(), chi.URLParam(r, "customId"), req, itemMeta(r, app, req.User))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, types.MessageWithData[*models.Item]{Message: itemUpdatedMessage, Data: item})
	}
}

func DeleteItem(svc items.Service, app config.AppConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := decodeActorBody(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		meta := items.RequestMeta{Actor: actor, BaseURL: resolveBaseURL(app.BaseURL, r)}
		if err := svc.Delete(r.Context(), chi.URLParam(r, "customId"), meta); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, itemDeletedMessage)
	}
}

func itemMeta(r *http.Request, app config.AppConfig, bodyUser string) items.RequestMeta {
	return items.RequestMeta{
		Actor:   resolveActor(r, bodyUser),
		BaseURL: resolveBaseURL(app.BaseURL, r),
	}
}
