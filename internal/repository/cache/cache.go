package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/madwell/signin-backend-go/internal/domain/pto"
	"github.com/madwell/signin-backend-go/internal/domain/roster"
)

// ttlValue holds one fetched value for up to ttl. When a reload fails and an older
// value exists, the older value keeps being served.
type ttlValue[T any] struct {
	name string
	ttl  time.Duration
	load func(ctx context.Context) (T, error)
	now  func() time.Time

	mu       sync.Mutex
	value    T
	loadedAt time.Time
	loaded   bool
}

func (c *ttlValue[T]) get(ctx context.Context) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded && c.now().Sub(c.loadedAt) < c.ttl {
		return c.value, nil
	}

	v, err := c.load(ctx)
	if err != nil {
		if c.loaded {
			slog.Warn("Serving stale cache after reload failure", "cache", c.name, "loaded_at", c.loadedAt, "error", err)
			return c.value, nil
		}
		var zero T
		return zero, err
	}

	c.value, c.loadedAt, c.loaded = v, c.now(), true
	return v, nil
}

func (c *ttlValue[T]) refresh(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, err := c.load(ctx)
	if err != nil {
		return err
	}
	c.value, c.loadedAt, c.loaded = v, c.now(), true
	return nil
}

// RosterCache wraps a roster.Source with a TTL.
type RosterCache struct {
	v *ttlValue[[]roster.Entry]
}

func NewRosterCache(src roster.Source, ttl time.Duration) *RosterCache {
	return &RosterCache{v: &ttlValue[[]roster.Entry]{
		name: "roster",
		ttl:  ttl,
		load: src.Load,
		now:  time.Now,
	}}
}

// Load implements roster.Source.
func (c *RosterCache) Load(ctx context.Context) ([]roster.Entry, error) {
	return c.v.get(ctx)
}

// Refresh re-reads the roster regardless of age.
func (c *RosterCache) Refresh(ctx context.Context) error {
	return c.v.refresh(ctx)
}

// PTOCache wraps a pto.Calendar with a TTL.
type PTOCache struct {
	v *ttlValue[[]pto.Record]
}

func NewPTOCache(cal pto.Calendar, ttl time.Duration) *PTOCache {
	return &PTOCache{v: &ttlValue[[]pto.Record]{
		name: "pto_calendar",
		ttl:  ttl,
		load: cal.Fetch,
		now:  time.Now,
	}}
}

// Fetch implements pto.Calendar.
func (c *PTOCache) Fetch(ctx context.Context) ([]pto.Record, error) {
	return c.v.get(ctx)
}

// Refresh re-fetches the calendar regardless of age.
func (c *PTOCache) Refresh(ctx context.Context) error {
	return c.v.refresh(ctx)
}
