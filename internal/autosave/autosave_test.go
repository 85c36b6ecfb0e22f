package autosave

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// fakeClock delivers ticks on demand instead of on a schedule
type fakeClock struct {
	ticks chan time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{ticks: make(chan time.Time)}
}

func (c *fakeClock) Now() time.Time { return time.Unix(0, 0) }

func (c *fakeClock) NewTicker(d time.Duration) Ticker {
	return fakeTicker{c.ticks}
}

// Tick blocks until the manager consumes the tick
func (c *fakeClock) Tick() {
	c.ticks <- time.Unix(0, 0)
}

type fakeTicker struct{ ch chan time.Time }

func (t fakeTicker) C() <-chan time.Time { return t.ch }
func (t fakeTicker) Stop()               {}

// countingSaver records SaveDraft calls
type countingSaver struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (s *countingSaver) SaveDraft() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return false, s.err
	}
	return true, nil
}

func (s *countingSaver) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func TestManagerSavesOnEveryTick(t *testing.T) {
	clock := newFakeClock()
	saver := &countingSaver{}
	m := NewManager(saver, time.Second, clock, zerolog.Nop())

	m.Start()
	defer m.Stop()

	clock.Tick()
	clock.Tick()
	clock.Tick()

	// Stop waits for the loop to drain, so after it returns the count is final
	m.Stop()
	if got := saver.count(); got != 3 {
		t.Fatalf("expected 3 saves, got %d", got)
	}
}

func TestManagerStopPreventsFurtherTicks(t *testing.T) {
	clock := newFakeClock()
	saver := &countingSaver{}
	m := NewManager(saver, time.Second, clock, zerolog.Nop())

	m.Start()
	clock.Tick()
	m.Stop()

	if m.Running() {
		t.Fatalf("expected manager stopped")
	}

	// A tick after Stop must not reach the saver
	select {
	case clock.ticks <- time.Unix(0, 0):
		t.Fatalf("expected no consumer after stop")
	case <-time.After(50 * time.Millisecond):
	}

	if got := saver.count(); got != 1 {
		t.Fatalf("expected exactly 1 save, got %d", got)
	}
}

func TestManagerStopIsIdempotent(t *testing.T) {
	m := NewManager(&countingSaver{}, time.Second, newFakeClock(), zerolog.Nop())

	m.Stop() // never started
	m.Start()
	m.Stop()
	m.Stop()

	if m.Running() {
		t.Fatalf("expected manager stopped")
	}
}

func TestManagerRestartOnStart(t *testing.T) {
	clock := newFakeClock()
	saver := &countingSaver{}
	m := NewManager(saver, time.Second, clock, zerolog.Nop())

	m.Start()
	m.Start() // restart, old loop must be gone
	defer m.Stop()

	clock.Tick()
	m.Stop()
	if got := saver.count(); got != 1 {
		t.Fatalf("expected a single loop consuming ticks, got %d saves", got)
	}
}

func TestManagerSurvivesSaveErrors(t *testing.T) {
	clock := newFakeClock()
	saver := &countingSaver{err: errors.New("persist failed")}
	m := NewManager(saver, time.Second, clock, zerolog.Nop())

	m.Start()
	defer m.Stop()

	// Errors are logged, not fatal; the loop keeps ticking
	clock.Tick()
	clock.Tick()

	m.Stop()
	if got := saver.count(); got != 2 {
		t.Fatalf("expected loop to continue after errors, got %d saves", got)
	}
}
