package ratelimit

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-chi/httprate"
)

// MemoryStore counts hits in process memory with httprate's local limit
// counter, one per window length. Windows are aligned to multiples of their
// length, so every key in a window resets at the same instant. Counters reset
// on restart and are not shared between replicas.
type MemoryStore struct {
	mu       sync.Mutex
	counters map[time.Duration]httprate.LimitCounter
	now      func() time.Time
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreWithClock(time.Now)
}

// NewMemoryStoreWithClock is NewMemoryStore with an injectable clock.
func NewMemoryStoreWithClock(now func() time.Time) *MemoryStore {
	return &MemoryStore{
		counters: make(map[time.Duration]httprate.LimitCounter),
		now:      now,
	}
}

func (s *MemoryStore) Hit(_ context.Context, key string, window time.Duration) (Window, error) {
	if window <= 0 {
		return Window{}, errors.New("ratelimit: window must be positive")
	}
	start := s.now().UTC().Truncate(window)
	counter := s.counter(window)

	if err := counter.Increment(key, start); err != nil {
		return Window{}, err
	}
	current, _, err := counter.Get(key, start, start.Add(-window))
	if err != nil {
		return Window{}, err
	}
	return Window{Count: int64(current), ResetAt: start.Add(window)}, nil
}

func (s *MemoryStore) counter(window time.Duration) httprate.LimitCounter {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.counters[window]
	if !ok {
		c = httprate.NewLocalLimitCounter(window)
		s.counters[window] = c
	}
	return c
}
