package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/madwell/signin-backend-go/internal/domain/pto"
	"github.com/madwell/signin-backend-go/internal/domain/roster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errUpstream = errors.New("upstream down")

type stubSource struct {
	calls   int
	entries []roster.Entry
	err     error
}

func (s *stubSource) Load(ctx context.Context) ([]roster.Entry, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.entries, nil
}

type stubCalendar struct {
	calls   int
	records []pto.Record
	err     error
}

func (s *stubCalendar) Fetch(ctx context.Context) ([]pto.Record, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.records, nil
}

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func newRosterCache(src roster.Source, ttl time.Duration) (*RosterCache, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 6, 11, 9, 0, 0, 0, time.UTC)}
	c := NewRosterCache(src, ttl)
	c.v.now = clock.now
	return c, clock
}

func TestRosterCache_ServesWithinTTL(t *testing.T) {
	src := &stubSource{entries: []roster.Entry{{FullName: "A. Smith", RequiredDays: 3}}}
	c, clock := newRosterCache(src, 10*time.Minute)

	first, err := c.Load(context.Background())
	require.NoError(t, err)

	clock.t = clock.t.Add(9 * time.Minute)
	second, err := c.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, src.calls)
}

func TestRosterCache_ReloadsAfterTTL(t *testing.T) {
	src := &stubSource{entries: []roster.Entry{{FullName: "A. Smith"}}}
	c, clock := newRosterCache(src, 10*time.Minute)

	_, err := c.Load(context.Background())
	require.NoError(t, err)

	src.entries = []roster.Entry{{FullName: "A. Smith"}, {FullName: "B. Jones"}}
	clock.t = clock.t.Add(10 * time.Minute)

	entries, err := c.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, 2, src.calls)
}

func TestRosterCache_ServesStaleOnFailure(t *testing.T) {
	src := &stubSource{entries: []roster.Entry{{FullName: "A. Smith"}}}
	c, clock := newRosterCache(src, time.Minute)

	_, err := c.Load(context.Background())
	require.NoError(t, err)

	src.err = errUpstream
	clock.t = clock.t.Add(time.Hour)

	entries, err := c.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []roster.Entry{{FullName: "A. Smith"}}, entries)

	// Stale values are not re-stamped, so the next call tries again.
	_, _ = c.Load(context.Background())
	assert.Equal(t, 3, src.calls)
}

func TestRosterCache_FirstLoadError(t *testing.T) {
	c, _ := newRosterCache(&stubSource{err: errUpstream}, time.Minute)

	entries, err := c.Load(context.Background())
	assert.ErrorIs(t, err, errUpstream)
	assert.Nil(t, entries)
}

func TestRosterCache_Refresh(t *testing.T) {
	src := &stubSource{entries: []roster.Entry{{FullName: "A. Smith"}}}
	c, _ := newRosterCache(src, time.Hour)

	_, err := c.Load(context.Background())
	require.NoError(t, err)

	src.entries = nil
	require.NoError(t, c.Refresh(context.Background()))

	entries, err := c.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Equal(t, 2, src.calls)

	src.err = errUpstream
	assert.ErrorIs(t, c.Refresh(context.Background()), errUpstream)
}

func TestPTOCache(t *testing.T) {
	cal := &stubCalendar{records: []pto.Record{{Name: "Smith, A"}}}
	c := NewPTOCache(cal, time.Hour)

	records, err := c.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 1)

	_, err = c.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, cal.calls)

	require.NoError(t, c.Refresh(context.Background()))
	assert.Equal(t, 2, cal.calls)
}
