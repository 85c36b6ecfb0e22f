package ledger

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/andy/ledgercraft/internal/domain"
	"github.com/rs/zerolog"
)

var (
	ErrNumberRequired   = errors.New("invoice number is required")
	ErrClientNotFound   = errors.New("client not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrInvoiceNotFound  = errors.New("invoice not found")
	ErrLineItemNotFound = errors.New("line item not found")
	ErrNoCurrentInvoice = errors.New("no invoice is being edited")
)

// PersistFunc writes a ledger snapshot through to durable storage. The
// store calls it after every mutating operation.
type PersistFunc func(*domain.Ledger) error

// WorkingPersistFunc writes the working invoice through to its session
// slot so it survives process restarts. It receives nil when the working
// invoice is cleared.
type WorkingPersistFunc func(*domain.Invoice) error

// Store owns the ledger aggregate and the working invoice. All mutation is
// funneled through its named operations; the mutex serializes autosave
// ticks against manual saves so two saves never interleave.
type Store struct {
	mu             sync.Mutex
	ledger         *domain.Ledger
	current        *domain.Invoice
	persist        PersistFunc
	persistWorking WorkingPersistFunc
	now            func() time.Time
	log            zerolog.Logger
}

// NewStore wraps an existing ledger. persist and persistWorking may be
// nil for tests.
func NewStore(l *domain.Ledger, persist PersistFunc, persistWorking WorkingPersistFunc, log zerolog.Logger) *Store {
	if l == nil {
		l = domain.NewLedger()
	}
	return &Store{
		ledger:         l,
		persist:        persist,
		persistWorking: persistWorking,
		now:            time.Now,
		log:            log,
	}
}

// RestoreCurrent seeds the working invoice from a previous session. It
// does not write anything back.
func (s *Store) RestoreCurrent(inv *domain.Invoice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = inv
}

// flush writes the aggregate through to durable storage
func (s *Store) flush() error {
	if s.persist == nil {
		return nil
	}
	if err := s.persist(s.ledger); err != nil {
		s.log.Error().Err(err).Msg("failed to persist ledger")
		return fmt.Errorf("failed to persist ledger: %w", err)
	}
	return nil
}

// flushWorking writes the working invoice through to its session slot.
// Caller holds the lock.
func (s *Store) flushWorking() error {
	if s.persistWorking == nil {
		return nil
	}
	if err := s.persistWorking(s.current); err != nil {
		s.log.Error().Err(err).Msg("failed to persist working invoice")
		return fmt.Errorf("failed to persist working invoice: %w", err)
	}
	return nil
}

// Snapshot returns a deep copy of the whole aggregate, for export and
// reporting. Readers never share memory with the live ledger.
func (s *Store) Snapshot() *domain.Ledger {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Clone()
}

// Import replaces the entire ledger as one atomic assignment and resets
// the working invoice. A reader never observes a half-imported state.
func (s *Store) Import(l *domain.Ledger) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledger = l
	s.current = nil
	if err := s.flushWorking(); err != nil {
		return err
	}
	s.log.Info().
		Int("clients", len(l.Clients)).
		Int("products", len(l.Products)).
		Int("invoices", len(l.Invoices)).
		Msg("ledger imported")
	return s.flush()
}

// Company returns the company profile
func (s *Store) Company() domain.Party {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Company
}

// SetCompany updates the company profile and the sender snapshot of the
// working invoice, if one exists. Already-saved invoices keep the sender
// they were created with.
func (s *Store) SetCompany(p domain.Party) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledger.Company = p
	if s.current != nil {
		s.current.Sender = p
		if err := s.flushWorking(); err != nil {
			return err
		}
	}
	return s.flush()
}

// Settings returns the current settings
func (s *Store) Settings() domain.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Settings
}

// UpdateSettings applies mutate to the settings record and persists
func (s *Store) UpdateSettings(mutate func(*domain.Settings)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	mutate(&s.ledger.Settings)
	return s.flush()
}

// SetAutoSave toggles the autosave preference. The caller owns starting or
// stopping the autosave schedule.
func (s *Store) SetAutoSave(enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledger.Settings.AutoSave = enabled
	return s.flush()
}

// History returns the recent-save cache, newest first
func (s *Store) History() []domain.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.HistoryEntry, len(s.ledger.HistoryCache))
	copy(out, s.ledger.HistoryCache)
	return out
}

// Records returns deep copies of every invoice record in list order
func (s *Store) Records() []*domain.InvoiceRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.InvoiceRecord, len(s.ledger.Invoices))
	for i, r := range s.ledger.Invoices {
		out[i] = r.Clone()
	}
	return out
}
