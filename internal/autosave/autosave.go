// Package autosave owns the draft autosave schedule: a cancellable task
// that periodically snapshots the working invoice as a replaceable draft.
package autosave

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Saver persists the working invoice as a draft record. It reports false
// when there was nothing to save (autosave disabled or no invoice open).
type Saver interface {
	SaveDraft() (bool, error)
}

// Clock abstracts time so tests can drive ticks from a virtual clock
// instead of waiting on real intervals.
type Clock interface {
	Now() time.Time
	NewTicker(d time.Duration) Ticker
}

// Ticker delivers periodic ticks until stopped
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) NewTicker(d time.Duration) Ticker {
	return systemTicker{time.NewTicker(d)}
}

type systemTicker struct{ t *time.Ticker }

func (t systemTicker) C() <-chan time.Time { return t.t.C }
func (t systemTicker) Stop()               { t.t.Stop() }

// SystemClock returns the wall clock
func SystemClock() Clock { return systemClock{} }

// Manager runs the autosave loop. Start and Stop follow the autosave
// settings toggle; ticks and manual saves are serialized by the store, so
// a manual save between ticks simply makes the next tick redundant.
type Manager struct {
	saver    Saver
	interval time.Duration
	clock    Clock
	log      zerolog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewManager creates a stopped manager ticking at the given interval
func NewManager(saver Saver, interval time.Duration, clock Clock, log zerolog.Logger) *Manager {
	if clock == nil {
		clock = systemClock{}
	}
	return &Manager{
		saver:    saver,
		interval: interval,
		clock:    clock,
		log:      log,
	}
}

// Start begins ticking. Calling Start on a running manager restarts it.
func (m *Manager) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopLocked()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	m.cancel = cancel
	m.done = done

	go m.run(ctx, done)
	m.log.Debug().Dur("interval", m.interval).Msg("autosave started")
}

func (m *Manager) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := m.clock.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
			saved, err := m.saver.SaveDraft()
			if err != nil {
				m.log.Warn().Err(err).Msg("autosave tick failed")
				continue
			}
			if saved {
				m.log.Debug().Msg("autosave tick")
			}
		}
	}
}

// Stop cancels future ticks. An in-flight save is never aborted; Stop
// returns once the loop has exited.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopLocked()
}

func (m *Manager) stopLocked() {
	if m.cancel == nil {
		return
	}
	m.cancel()
	<-m.done
	m.cancel = nil
	m.done = nil
	m.log.Debug().Msg("autosave stopped")
}

// Running reports whether the loop is active
func (m *Manager) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cancel != nil
}
