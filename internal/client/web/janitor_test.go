package web

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/myhealth/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePurger struct {
	mu      sync.Mutex
	cutoffs []time.Time
	err     error
}

func (p *fakePurger) PurgeStale(_ context.Context, before time.Time) (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cutoffs = append(p.cutoffs, before)
	return 1, p.err
}

func (p *fakePurger) calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.cutoffs)
}

func TestPurgeStale_UsesTTLCutoff(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	old := now
	now = func() time.Time { return fixed }
	t.Cleanup(func() { now = old })

	p := &fakePurger{}
	purgeStale(context.Background(), p, time.Hour, logging.Nop())

	require.Len(t, p.cutoffs, 1)
	assert.Equal(t, fixed.Add(-time.Hour), p.cutoffs[0])
}

func TestPurgeStale_ErrorIsLogged(t *testing.T) {
	p := &fakePurger{err: errors.New("disk full")}
	assert.NotPanics(t, func() {
		purgeStale(context.Background(), p, time.Hour, logging.Nop())
	})
	assert.Equal(t, 1, p.calls())
}

func TestRunJanitor_TicksUntilCancelled(t *testing.T) {
	p := &fakePurger{}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		runJanitor(ctx, p, time.Hour, 10*time.Millisecond, logging.Nop())
		close(done)
	}()

	assert.Eventually(t, func() bool { return p.calls() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop after cancel")
	}
}

func TestJanitorInterval(t *testing.T) {
	assert.Equal(t, time.Minute, janitorInterval(time.Minute))
	assert.Equal(t, 3*time.Hour, janitorInterval(12*time.Hour))
}
