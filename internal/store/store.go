// Package store owns the transaction ledger and the session state around it:
// the active filter, the display currency and the entry form. Derived totals
// and the filtered view are recomputed from the current collection on every
// read rather than cached.
package store

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"tracker/internal/core"
	"tracker/internal/persist"
)

// Change operations reported to the optional event publisher.
const (
	OpCreated = "created"
	OpUpdated = "updated"
	OpDeleted = "deleted"
)

// ChangePublisher receives a fire-and-forget event after every ledger
// mutation. Publish failures never fail the mutation.
type ChangePublisher interface {
	PublishLedgerEvent(ctx context.Context, op string, transactionID int64) error
}

// ErrNotFound is returned when an edit targets an ID that no longer exists.
// Callers treat it as a no-op; it should not occur in normal flow.
var ErrNotFound = errors.New("transaction not found")

// Store is the single owner of the in-memory ledger. It loads once at
// startup and writes the whole collection back through the persistence
// provider after every mutation.
type Store struct {
	mu       sync.Mutex
	provider persist.Provider
	events   ChangePublisher
	now      func() time.Time

	items    []core.Transaction
	filter   core.Filter
	currency core.CurrencyCode
	form     core.FormState
	lastID   int64
}

// Snapshot is the read model handed to the rendering layer on every state
// change.
type Snapshot struct {
	Transactions []core.Transaction
	Filtered     []core.Transaction
	Stats        core.Stats
	Filter       core.Filter
	Currency     core.CurrencyCode
	Symbol       string
	Form         core.FormState
}

// New creates a store over the given provider. events may be nil.
func New(provider persist.Provider, events ChangePublisher) *Store {
	return &Store{
		provider: provider,
		events:   events,
		now:      time.Now,
		currency: core.DefaultCurrency,
	}
}

// Load reads the persisted ledger and currency once at startup. Absent data
// yields an empty collection and the default currency.
func (s *Store) Load(ctx context.Context) error {
	items, err := s.provider.LoadTransactions(ctx)
	if err != nil {
		return err
	}
	currency, err := s.provider.LoadCurrency(ctx)
	if err != nil {
		return err
	}
	if currency == "" {
		currency = core.DefaultCurrency
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = items
	s.currency = currency
	for _, tx := range items {
		if tx.ID > s.lastID {
			s.lastID = tx.ID
		}
	}
	slog.InfoContext(ctx, "Ledger loaded",
		"component", "store",
		"transactions", len(items),
		"currency", string(currency))
	return nil
}

// nextID generates a session-unique ID from the creation timestamp, bumping
// past the last issued ID on collision.
func (s *Store) nextID() int64 {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	return id
}

// Create appends a new transaction built from the pending form. Incomplete
// or unparseable forms are rejected with the corresponding sentinel; the
// collection is untouched and the form stays open on the caller's side.
func (s *Store) Create(ctx context.Context, f core.Form) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID()
	tx, err := f.Build(id)
	if err != nil {
		return core.Transaction{}, err
	}
	s.lastID = id
	s.items = append(s.items, tx)
	s.form = s.form.Close()
	s.saveTransactionsLocked(ctx)
	s.publish(ctx, OpCreated, tx.ID)

	slog.InfoContext(ctx, "Transaction created",
		"component", "store",
		"transaction_id", tx.ID,
		"transaction_type", string(tx.Type),
		"category", tx.Category,
		"amount_cents", tx.Amount.Cents)
	return tx, nil
}

// Update replaces the record matching id with one rebuilt from the form,
// preserving the original ID. A missing ID is reported as ErrNotFound and
// leaves the collection unchanged.
func (s *Store) Update(ctx context.Context, id int64, f core.Form) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOfLocked(id)
	if idx < 0 {
		return core.Transaction{}, ErrNotFound
	}
	tx, err := f.Build(id)
	if err != nil {
		return core.Transaction{}, err
	}
	s.items[idx] = tx
	s.form = s.form.Close()
	s.saveTransactionsLocked(ctx)
	s.publish(ctx, OpUpdated, id)

	slog.InfoContext(ctx, "Transaction updated",
		"component", "store",
		"transaction_id", id,
		"transaction_type", string(tx.Type),
		"category", tx.Category,
		"amount_cents", tx.Amount.Cents)
	return tx, nil
}

// Delete removes the first record with the given ID. Deleting an absent ID
// is a no-op.
func (s *Store) Delete(ctx context.Context, id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOfLocked(id)
	if idx < 0 {
		return
	}
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	s.saveTransactionsLocked(ctx)
	s.publish(ctx, OpDeleted, id)

	slog.InfoContext(ctx, "Transaction deleted",
		"component", "store",
		"transaction_id", id)
}

// SetFilter replaces the active filter. The filter is session state and is
// never persisted.
func (s *Store) SetFilter(f core.Filter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = f
}

// SetCurrency switches the display currency and writes it through. Unknown
// codes are rejected and leave the selection unchanged.
func (s *Store) SetCurrency(ctx context.Context, code string) error {
	c, err := core.ParseCurrency(code)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currency = c
	if err := s.provider.SaveCurrency(ctx, c); err != nil {
		slog.ErrorContext(ctx, "Failed to persist currency",
			"component", "store", "currency", code, "error", err)
	}
	return nil
}

// StartAdding opens an empty entry form.
func (s *Store) StartAdding() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form = core.StartAdding(s.now())
}

// StartEditing opens the form pre-filled from the target record. Editing an
// absent ID leaves the form state unchanged.
func (s *Store) StartEditing(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOfLocked(id)
	if idx < 0 {
		return ErrNotFound
	}
	s.form = core.StartEditing(s.items[idx])
	return nil
}

// SetPending replaces the pending form while the form is open. Used when the
// rendering layer re-submits in-progress values, e.g. after a type switch.
func (s *Store) SetPending(f core.Form) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.form.Mode == core.FormHidden {
		return
	}
	s.form.Pending = f
}

// CancelForm returns the form to hidden and clears the pending entry.
func (s *Store) CancelForm() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form = s.form.Close()
}

// Snapshot returns the current state plus all derivations: totals over the
// whole collection and the filtered view sorted by date descending.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := append([]core.Transaction(nil), s.items...)
	return Snapshot{
		Transactions: items,
		Filtered:     core.ApplyFilter(items, s.filter),
		Stats:        core.Summarize(items),
		Filter:       s.filter,
		Currency:     s.currency,
		Symbol:       s.currency.Symbol(),
		Form:         s.form,
	}
}

func (s *Store) indexOfLocked(id int64) int {
	for i, tx := range s.items {
		if tx.ID == id {
			return i
		}
	}
	return -1
}

// saveTransactionsLocked writes the collection through the provider.
// Persistence is fire-and-forget on the mutation path: failures are logged,
// the in-memory state stays authoritative for the session.
func (s *Store) saveTransactionsLocked(ctx context.Context) {
	if err := s.provider.SaveTransactions(ctx, s.items); err != nil {
		slog.ErrorContext(ctx, "Failed to persist ledger",
			"component", "store",
			"transactions", len(s.items),
			"error", err)
	}
}

func (s *Store) publish(ctx context.Context, op string, id int64) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishLedgerEvent(ctx, op, id); err != nil {
		slog.WarnContext(ctx, "Failed to publish ledger event",
			"component", "store",
			"operation", op,
			"transaction_id", id,
			"error", err)
	}
}
