package main

import (
	"context"
	"fmt"

	"go.uber.org/multierr"

	"github.com/angelmondragon/assettrack-backend/pkg/logger"
)

type purger interface {
	Purge(ctx context.Context) (int64, error)
}

type target struct {
	name string
	svc  purger
}

// purgeAll empties every target even when an earlier one fails, and returns
// the combined failures.
func purgeAll(ctx context.Context, logg *logger.Logger, targets []target) (map[string]int64, error) {
	deleted := make(map[string]int64, len(targets))
	var errs error
	for _, t := range targets {
		n, err := t.svc.Purge(ctx)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("purge %s: %w", t.name, err))
			continue
		}
		deleted[t.name] = n
		if logg != nil {
			logg.Info(logg.WithFields(ctx, map[string]any{"collection": t.name, "deleted": n}), "purge.completed")
		}
	}
	return deleted, errs
}
