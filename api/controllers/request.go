package controllers

import (
	"net/http"
	"strings"

	"github.com/angelmondragon/assettrack-backend/api/middleware"
	"github.com/angelmondragon/assettrack-backend/api/validators"
	"github.com/angelmondragon/assettrack-backend/pkg/db/models"
)

// actorBody is the optional body of delete and complete requests.
type actorBody struct {
	User string `json:"user"`
}

// resolveActor picks the acting user: token or header identity first, then
// the body's user field, then the default actor.
func resolveActor(r *http.Request, bodyUser string) string {
	if actor := middleware.ActorFromContext(r.Context()); actor != "" {
		return actor
	}
	if user := validators.SanitizeString(bodyUser, 100); user != "" {
		return user
	}
	return models.DefaultActor
}

// resolveBaseURL is the configured public URL, else the URL the request came
// in on.
func resolveBaseURL(configured string, r *http.Request) string {
	if base := strings.TrimRight(strings.TrimSpace(configured), "/"); base != "" {
		return base
	}
	scheme := strings.TrimSpace(r.Header.Get("X-Forwarded-Proto"))
	if scheme == "" {
		scheme = "http"
		if r.TLS != nil {
			scheme = "https"
		}
	}
	return scheme + "://" + r.Host
}

// decodeActorBody reads an optional {user} body, tolerating none at all.
func decodeActorBody(r *http.Request) (string, error) {
	var body actorBody
	if err := validators.DecodeOptionalJSONBody(r, &body); err != nil {
		return "", err
	}
	return resolveActor(r, body.User), nil
}
