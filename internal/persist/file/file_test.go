package file

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tracker/internal/core"
)

func TestLoadAbsentData(t *testing.T) {
	p, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	ctx := context.Background()

	items, err := p.LoadTransactions(ctx)
	if err != nil || len(items) != 0 {
		t.Fatalf("expected empty ledger for fresh dir, got %v (err=%v)", items, err)
	}
	c, err := p.LoadCurrency(ctx)
	if err != nil || c != "" {
		t.Fatalf("expected unset currency, got %q (err=%v)", c, err)
	}
}

func TestLedgerRoundTrip(t *testing.T) {
	dir := t.TempDir()
	p, err := New(dir)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	ctx := context.Background()

	in := []core.Transaction{
		{ID: 1705312800000, Amount: core.Money{Cents: 5000}, Description: "Groceries", Category: "Food", Date: core.NewDate(2024, 1, 15), Type: core.Expense},
		{ID: 1704103200000, Amount: core.Money{Cents: 300000}, Description: "Salary", Category: "Salary", Date: core.NewDate(2024, 1, 1), Type: core.Income},
	}
	if err := p.SaveTransactions(ctx, in); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, err := p.LoadTransactions(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 records, got %d", len(out))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Fatalf("record %d changed across round trip:\n in: %+v\nout: %+v", i, in[i], out[i])
		}
	}

	// On-disk shape stays the interchange format: a JSON array with ISO dates
	raw, err := os.ReadFile(filepath.Join(dir, "transactions.json"))
	if err != nil {
		t.Fatalf("read raw: %v", err)
	}
	for _, want := range []string{`"amount_cents": 5000`, `"date": "2024-01-15"`, `"type": "income"`} {
		if !strings.Contains(string(raw), want) {
			t.Fatalf("raw file missing %q:\n%s", want, raw)
		}
	}
}

func TestCurrencyRoundTrip(t *testing.T) {
	dir := t.TempDir()
	p, err := New(dir)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	ctx := context.Background()

	if err := p.SaveCurrency(ctx, core.INR); err != nil {
		t.Fatalf("save: %v", err)
	}
	c, err := p.LoadCurrency(ctx)
	if err != nil || c != core.INR {
		t.Fatalf("round trip: %q (err=%v)", c, err)
	}

	// Stored as a bare code string
	raw, _ := os.ReadFile(filepath.Join(dir, "currency"))
	if strings.TrimSpace(string(raw)) != "INR" {
		t.Fatalf("raw currency = %q", raw)
	}
}

func TestLoadRejectsCorruptLedger(t *testing.T) {
	dir := t.TempDir()
	p, err := New(dir)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "transactions.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := p.LoadTransactions(context.Background()); err == nil {
		t.Fatalf("expected error for corrupt ledger file")
	}
}

func TestLoadRejectsUnknownStoredCurrency(t *testing.T) {
	dir := t.TempDir()
	p, err := New(dir)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "currency"), []byte("DOGE\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := p.LoadCurrency(context.Background()); err == nil {
		t.Fatalf("expected error for unknown stored currency")
	}
}
