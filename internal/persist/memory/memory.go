// Package memory is the non-persistent provider: state lives for the process
// lifetime only. It backs tests and the seeded demo mode.
package memory

import (
	"context"
	"sync"

	"tracker/internal/core"
	"tracker/internal/persist"
)

type Store struct {
	mu       sync.Mutex
	items    []core.Transaction
	currency core.CurrencyCode
}

var _ persist.Provider = (*Store)(nil)

func New() *Store {
	return &Store{}
}

// NewSeeded returns a store pre-loaded with the two sample records of the
// demo mode: a grocery expense and a salary income.
func NewSeeded() *Store {
	return &Store{items: []core.Transaction{
		{
			ID:          1,
			Amount:      core.Money{Cents: 5000},
			Description: "Groceries",
			Category:    "Food",
			Date:        core.NewDate(2024, 1, 15),
			Type:        core.Expense,
		},
		{
			ID:          2,
			Amount:      core.Money{Cents: 300000},
			Description: "Salary",
			Category:    "Salary",
			Date:        core.NewDate(2024, 1, 1),
			Type:        core.Income,
		},
	}}
}

func (s *Store) LoadTransactions(_ context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.items...), nil
}

func (s *Store) SaveTransactions(_ context.Context, items []core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]core.Transaction(nil), items...)
	return nil
}

func (s *Store) LoadCurrency(_ context.Context) (core.CurrencyCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currency, nil
}

func (s *Store) SaveCurrency(_ context.Context, c core.CurrencyCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currency = c
	return nil
}
