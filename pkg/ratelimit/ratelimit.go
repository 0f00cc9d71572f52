// Package ratelimit holds fixed-window policies and the counter stores they
// run against.
package ratelimit

import (
	"context"
	"time"

	"github.com/angelmondragon/assettrack-backend/pkg/config"
)

// Window is the state of one counter after a hit.
type Window struct {
	Count   int64
	ResetAt time.Time
}

// Store counts hits in fixed windows. The first hit on a key opens a window
// of the given length; later hits inside it increment the same counter.
type Store interface {
	Hit(ctx context.Context, key string, window time.Duration) (Window, error)
}

// Policy is a named ceiling shared by every route it guards.
type Policy struct {
	Name    string
	Window  time.Duration
	Limit   int
	Message string
}

// Allows reports whether the count is within the policy.
func (p Policy) Allows(count int64) bool {
	return count <= int64(p.Limit)
}

// Remaining is how many more hits the window accepts.
func (p Policy) Remaining(count int64) int {
	left := int64(p.Limit) - count
	if left < 0 {
		return 0
	}
	return int(left)
}

// Policies groups the route classes.
type Policies struct {
	Read       Policy
	Logs       Policy
	Write      Policy
	NoteCreate Policy
	NoteDelete Policy
}

func PoliciesFromConfig(cfg config.RateLimitConfig) Policies {
	return Policies{
		Read: Policy{
			Name:    "read",
			Window:  cfg.ReadWindow,
			Limit:   cfg.ReadLimit,
			Message: "Too many read requests. Please try again after a minute.",
		},
		Logs: Policy{
			Name:    "logs",
			Window:  cfg.LogsWindow,
			Limit:   cfg.LogsLimit,
			Message: "Too many log requests. Please try again after a minute.",
		},
		Write: Policy{
			Name:    "write",
			Window:  cfg.WriteWindow,
			Limit:   cfg.WriteLimit,
			Message: "Item operation rate limit exceeded. Please try again after 5 minutes.",
		},
		NoteCreate: Policy{
			Name:    "note_create",
			Window:  cfg.NoteCreateWindow,
			Limit:   cfg.NoteCreateLimit,
			Message: "Note creation limit reached. Please try again after 5 minutes.",
		},
		NoteDelete: Policy{
			Name:    "note_delete",
			Window:  cfg.NoteDeleteWindow,
			Limit:   cfg.NoteDeleteLimit,
			Message: "Note deletion limit reached. Please try again after 5 minutes.",
		},
	}
}
