package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"tracker/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "tracker.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestFreshDatabaseIsEmpty(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	items, err := repo.LoadTransactions(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty ledger, got %d", len(items))
	}
	c, err := repo.LoadCurrency(ctx)
	if err != nil || c != "" {
		t.Fatalf("expected unset currency, got %q (err=%v)", c, err)
	}
}

func TestSaveTransactionsReplacesLedger(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first := []core.Transaction{
		{ID: 10, Amount: core.Money{Cents: 5000}, Description: "Groceries", Category: "Food", Date: core.NewDate(2024, 1, 15), Type: core.Expense},
		{ID: 11, Amount: core.Money{Cents: 300000}, Description: "Salary", Category: "Salary", Date: core.NewDate(2024, 1, 1), Type: core.Income},
	}
	if err := repo.SaveTransactions(ctx, first); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := repo.LoadTransactions(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	for i := range first {
		if got[i] != first[i] {
			t.Fatalf("record %d changed across round trip:\n in: %+v\nout: %+v", i, first[i], got[i])
		}
	}

	// Whole-list semantics: the next save replaces, never merges
	second := first[:1]
	if err := repo.SaveTransactions(ctx, second); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err = repo.LoadTransactions(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 1 || got[0].ID != 10 {
		t.Fatalf("replace semantics broken: %+v", got)
	}
}

func TestSaveTransactionsPreservesOrder(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	// IDs intentionally not in insertion order
	items := []core.Transaction{
		{ID: 30, Amount: core.Money{Cents: 100}, Description: "c", Category: "Other", Date: core.NewDate(2024, 3, 1), Type: core.Expense},
		{ID: 10, Amount: core.Money{Cents: 200}, Description: "a", Category: "Other", Date: core.NewDate(2024, 1, 1), Type: core.Expense},
		{ID: 20, Amount: core.Money{Cents: 300}, Description: "b", Category: "Other", Date: core.NewDate(2024, 2, 1), Type: core.Expense},
	}
	if err := repo.SaveTransactions(ctx, items); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := repo.LoadTransactions(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	for i := range items {
		if got[i].ID != items[i].ID {
			t.Fatalf("order not preserved: position %d has id %d", i, got[i].ID)
		}
	}
}

func TestCurrencySetting(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.SaveCurrency(ctx, core.GBP); err != nil {
		t.Fatalf("save: %v", err)
	}
	c, err := repo.LoadCurrency(ctx)
	if err != nil || c != core.GBP {
		t.Fatalf("round trip: %q (err=%v)", c, err)
	}

	// Upsert on repeated save
	if err := repo.SaveCurrency(ctx, core.CAD); err != nil {
		t.Fatalf("second save: %v", err)
	}
	c, _ = repo.LoadCurrency(ctx)
	if c != core.CAD {
		t.Fatalf("upsert failed: %q", c)
	}
}

func TestAuditTrail(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	for i, op := range []string{"created", "updated", "deleted"} {
		if err := repo.AppendAudit(ctx, op, int64(100+i), at.Add(time.Duration(i)*time.Minute)); err != nil {
			t.Fatalf("append %s: %v", op, err)
		}
	}

	entries, err := repo.ListAuditEntries(ctx, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	// Newest first
	if entries[0].Op != "deleted" || entries[0].TransactionID != 102 {
		t.Fatalf("unexpected newest entry: %+v", entries[0])
	}
	if !entries[0].OccurredAt.Equal(at.Add(2 * time.Minute)) {
		t.Fatalf("timestamp round trip: %v", entries[0].OccurredAt)
	}

	limited, err := repo.ListAuditEntries(ctx, 1)
	if err != nil || len(limited) != 1 {
		t.Fatalf("limit not applied: %d (err=%v)", len(limited), err)
	}
}

func TestMigrationsAreIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tracker.db")
	repo, err := NewSQLiteRepository(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	repo.Close()

	// Reopening runs migrations again; ErrNoChange must be tolerated
	repo, err = NewSQLiteRepository(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	repo.Close()
}
