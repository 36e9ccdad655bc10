// Package storage implements the SQLite persistence provider. The ledger and
// the currency setting live in a local database file; the audit worker
// appends its trail here as well.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"tracker/internal/core"
	"tracker/internal/persist"

	_ "modernc.org/sqlite"
)

const currencyKey = "currency"

type SQLiteRepository struct {
	db *sql.DB
}

var _ persist.Provider = (*SQLiteRepository)(nil)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// LoadTransactions returns the stored ledger in insertion order.
func (r *SQLiteRepository) LoadTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, amount_cents, description, category, date, type
		 FROM transactions ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	items := []core.Transaction{}
	for rows.Next() {
		var (
			tx      core.Transaction
			dateStr string
			typeStr string
		)
		if err := rows.Scan(&tx.ID, &tx.Amount.Cents, &tx.Description, &tx.Category, &dateStr, &typeStr); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		date, err := core.ParseDate(dateStr)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: stored date %q: %w", tx.ID, dateStr, err)
		}
		tx.Date = date
		tx.Type = core.TransactionType(typeStr)
		items = append(items, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return items, nil
}

// SaveTransactions replaces the stored ledger with the given list in a
// single database transaction, preserving list order.
func (r *SQLiteRepository) SaveTransactions(ctx context.Context, items []core.Transaction) error {
	dbtx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer dbtx.Rollback()

	if _, err := dbtx.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return fmt.Errorf("clear transactions: %w", err)
	}

	stmt, err := dbtx.PrepareContext(ctx,
		`INSERT INTO transactions (id, position, amount_cents, description, category, date, type)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for pos, tx := range items {
		if _, err := stmt.ExecContext(ctx,
			tx.ID, pos, tx.Amount.Cents, tx.Description, tx.Category, tx.Date.ISO(), string(tx.Type)); err != nil {
			return fmt.Errorf("insert transaction %d: %w", tx.ID, err)
		}
	}

	if err := dbtx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// LoadCurrency returns the stored currency code, or "" when none was saved.
func (r *SQLiteRepository) LoadCurrency(ctx context.Context) (core.CurrencyCode, error) {
	var value string
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = ?`, currencyKey).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("query currency setting: %w", err)
	}
	c, err := core.ParseCurrency(value)
	if err != nil {
		return "", fmt.Errorf("stored currency %q: %w", value, err)
	}
	return c, nil
}

func (r *SQLiteRepository) SaveCurrency(ctx context.Context, c core.CurrencyCode) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		currencyKey, string(c))
	if err != nil {
		return fmt.Errorf("save currency setting: %w", err)
	}
	return nil
}

// AuditEntry is one recorded ledger mutation.
type AuditEntry struct {
	ID            int64
	Op            string
	TransactionID int64
	OccurredAt    time.Time
}

// AppendAudit records a ledger mutation in the audit trail.
func (r *SQLiteRepository) AppendAudit(ctx context.Context, op string, transactionID int64, occurredAt time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO audit_log (op, transaction_id, occurred_at) VALUES (?, ?, ?)`,
		op, transactionID, occurredAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("append audit entry: %w", err)
	}
	return nil
}

// ListAuditEntries returns the most recent audit entries, newest first.
func (r *SQLiteRepository) ListAuditEntries(ctx context.Context, limit int) ([]AuditEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, op, transaction_id, occurred_at
		 FROM audit_log ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query audit log: %w", err)
	}
	defer rows.Close()

	var entries []AuditEntry
	for rows.Next() {
		var (
			e  AuditEntry
			at string
		)
		if err := rows.Scan(&e.ID, &e.Op, &e.TransactionID, &at); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		parsed, err := time.Parse(time.RFC3339, at)
		if err != nil {
			return nil, fmt.Errorf("audit entry %d: stored timestamp %q: %w", e.ID, at, err)
		}
		e.OccurredAt = parsed
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit log: %w", err)
	}
	return entries, nil
}
