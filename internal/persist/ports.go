// Package persist defines the ports the transaction store uses to load and
// save its state. Providers are interchangeable: in-memory, JSON files or
// SQLite.
package persist

import (
	"context"

	"tracker/internal/core"
)

// Ports for persistence providers. Load happens once at startup; saves happen
// after every mutation and always carry the whole collection.
type (
	TransactionLoader interface {
		// LoadTransactions returns the stored ledger in insertion order.
		// Absent data yields an empty slice and no error.
		LoadTransactions(ctx context.Context) ([]core.Transaction, error)
	}

	TransactionSaver interface {
		// SaveTransactions replaces the stored ledger with the given list.
		SaveTransactions(ctx context.Context, items []core.Transaction) error
	}

	CurrencyLoader interface {
		// LoadCurrency returns the stored currency code, or "" when none has
		// been saved yet.
		LoadCurrency(ctx context.Context) (core.CurrencyCode, error)
	}

	CurrencySaver interface {
		SaveCurrency(ctx context.Context, c core.CurrencyCode) error
	}
)

// Provider is the full persistence contract of a backend.
type Provider interface {
	TransactionLoader
	TransactionSaver
	CurrencyLoader
	CurrencySaver
}
