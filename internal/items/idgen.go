package items

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/angelmondragon/assettrack-backend/pkg/config"
)

const (
	idPrefix     = "ORG"
	sequenceBase = 999
	suffixLength = 4
	base36Digits = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// IDGenerator produces candidate customIds. Uniqueness is enforced by the
// database; callers retry on collision.
type IDGenerator interface {
	Next(ctx context.Context) (string, error)
}

type sequenceSource interface {
	LastSequenceID(ctx context.Context) (string, error)
}

// NewIDGenerator picks the generator for the configured scheme.
func NewIDGenerator(scheme string, source sequenceSource) IDGenerator {
	if strings.EqualFold(strings.TrimSpace(scheme), config.ItemIDSchemeSequence) {
		return &SequenceIDs{source: source}
	}
	return &TimestampIDs{now: time.Now}
}

// TimestampIDs yields ORG-<base36 millis>-<4 random base36>.
type TimestampIDs struct {
	now func() time.Time
}

func (g *TimestampIDs) Next(context.Context) (string, error) {
	millis := g.now().UnixMilli()
	var suffix strings.Builder
	for i := 0; i < suffixLength; i++ {
		suffix.WriteByte(base36Digits[rand.IntN(len(base36Digits))])
	}
	return fmt.Sprintf("%s-%s-%s", idPrefix, strings.ToUpper(strconv.FormatInt(millis, 36)), suffix.String()), nil
}

// SequenceIDs yields ORG<n> with n one past the highest issued number,
// starting at 1000.
type SequenceIDs struct {
	source sequenceSource
}

func (g *SequenceIDs) Next(ctx context.Context) (string, error) {
	last, err := g.source.LastSequenceID(ctx)
	if err != nil {
		return "", fmt.Errorf("reading last item id: %w", err)
	}
	n := sequenceBase
	if last != "" {
		parsed, err := strconv.Atoi(strings.TrimPrefix(last, idPrefix))
		if err != nil {
			return "", fmt.Errorf("parsing item id %q: %w", last, err)
		}
		if parsed > n {
			n = parsed
		}
	}
	return fmt.Sprintf("%s%d", idPrefix, n+1), nil
}
