package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/assettrack-backend/api/responses"
	"github.com/angelmondragon/assettrack-backend/api/validators"
	"github.com/angelmondragon/assettrack-backend/internal/notes"
	pkgerrors "github.com/angelmondragon/assettrack-backend/pkg/errors"
	"github.com/angelmondragon/assettrack-backend/pkg/logger"
	"github.com/angelmondragon/assettrack-backend/pkg/types"
)

const (
	noteDeletedMessage = "Note deleted successfully"
	notesPurgedMessage = "All notes deleted successfully"
)

func ListItemNotes(svc notes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeNotes(w, r, svc, logg, chi.URLParam(r, "itemId"))
	}
}

// ListNotes is the query-string form: GET /notes?itemId=.
func ListNotes(svc notes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID := strings.TrimSpace(r.URL.Query().Get("itemId"))
		if itemID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "Item ID is required").
				WithDetails(map[string]string{"itemId": "is required"}))
			return
		}
		writeNotes(w, r, svc, logg, itemID)
	}
}

func writeNotes(w http.ResponseWriter, r *http.Request, svc notes.Service, logg *logger.Logger, itemID string) {
	list, err := svc.ListByItem(r.Context(), itemID)
	if err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return
	}
	responses.WriteSuccess(w, types.NewList(list))
}

func CreateNote(svc notes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req notes.CreateNoteRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		note, err := svc.Create(r.Context(), req, resolveActor(r, req.User))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCreated(w, note)
	}
}

func DeleteNote(svc notes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := decodeActorBody(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), chi.URLParam(r, "id"), actor); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, noteDeletedMessage)
	}
}

func PurgeNotes(svc notes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deleted, err := svc.Purge(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if logg != nil {
			logg.Warn(logg.WithField(r.Context(), "deleted", deleted), "notes.purged")
		}
		responses.WriteSuccess(w, types.PurgeResult{Message: notesPurgedMessage, DeletedCount: deleted})
	}
}
