package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.t
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func TestRegistry_Acquire(t *testing.T) {
	r := NewRegistry(time.Second, time.Hour, nil, logger.NewNop())

	s, created := r.Acquire("")
	require.True(t, created)
	_, err := uuid.Parse(s.ID)
	require.NoError(t, err)

	again, created := r.Acquire(s.ID)
	assert.False(t, created)
	assert.Same(t, s, again)

	forged, created := r.Acquire("not-a-uuid")
	assert.True(t, created)
	assert.NotEqual(t, "not-a-uuid", forged.ID)

	unknown := uuid.NewString()
	restored, created := r.Acquire(unknown)
	assert.True(t, created)
	assert.Equal(t, unknown, restored.ID)
	assert.Equal(t, 3, r.Len())
}

func TestRegistry_SessionsAreIsolated(t *testing.T) {
	r := NewRegistry(time.Second, time.Hour, nil, logger.NewNop())
	a, _ := r.Acquire("")
	b, _ := r.Acquire("")

	a.Do(func(s *Session) {
		s.Store.Add(domain.LineItem{Name: "Waffle", Price: decimal.RequireFromString("6.50")})
	})

	assert.Equal(t, 1, a.View.Panel().TotalQuantity)
	assert.Zero(t, b.Store.Len())
	assert.True(t, b.View.Panel().Empty)
}

func TestRegistry_Sweep(t *testing.T) {
	c := &clock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	r := NewRegistry(time.Second, 10*time.Minute, c.Now, logger.NewNop())

	idle, _ := r.Acquire("")
	c.Advance(6 * time.Minute)
	active, _ := r.Acquire("")
	c.Advance(5 * time.Minute)

	assert.Equal(t, 1, r.Sweep())
	assert.Equal(t, 1, r.Len())

	_, created := r.Acquire(active.ID)
	assert.False(t, created)
	_, created = r.Acquire(idle.ID)
	assert.True(t, created)
}

func TestRegistry_SweepSkipsBusySession(t *testing.T) {
	c := &clock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	r := NewRegistry(time.Second, 10*time.Minute, c.Now, logger.NewNop())

	s, _ := r.Acquire("")
	s.Do(func(s *Session) {
		c.Advance(11 * time.Minute)
		assert.Zero(t, r.Sweep(), "session held by a request")

		s.Store.Add(domain.LineItem{Name: "Waffle", Price: decimal.RequireFromString("6.50")})
	})

	assert.Zero(t, r.Sweep(), "finished request counts as activity")
	assert.Equal(t, 1, s.View.Panel().TotalQuantity, "view stays attached")

	got, created := r.Acquire(s.ID)
	assert.False(t, created)
	assert.Same(t, s, got)

	c.Advance(11 * time.Minute)
	assert.Equal(t, 1, r.Sweep())
}

func TestRegistry_RunStopsOnCancel(t *testing.T) {
	r := NewRegistry(time.Second, time.Nanosecond, nil, logger.NewNop())
	r.Acquire("")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx, time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return r.Len() == 0 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}
