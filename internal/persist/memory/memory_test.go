package memory

import (
	"context"
	"testing"

	"tracker/internal/core"
)

func TestEmptyStore(t *testing.T) {
	s := New()
	ctx := context.Background()

	items, err := s.LoadTransactions(ctx)
	if err != nil || len(items) != 0 {
		t.Fatalf("expected empty ledger, got %v (err=%v)", items, err)
	}
	c, err := s.LoadCurrency(ctx)
	if err != nil || c != "" {
		t.Fatalf("expected unset currency, got %q (err=%v)", c, err)
	}
}

func TestSeeded(t *testing.T) {
	s := NewSeeded()
	items, err := s.LoadTransactions(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 seed records, got %d", len(items))
	}
	if items[0].Type != core.Expense || items[1].Type != core.Income {
		t.Fatalf("unexpected seed records: %+v", items)
	}
	for _, tx := range items {
		if err := tx.Validate(); err != nil {
			t.Fatalf("seed record %d invalid: %v", tx.ID, err)
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := New()
	ctx := context.Background()

	in := []core.Transaction{
		{ID: 1, Amount: core.Money{Cents: 123}, Description: "Bus", Category: "Transportation", Date: core.NewDate(2024, 2, 3), Type: core.Expense},
	}
	if err := s.SaveTransactions(ctx, in); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Mutating the caller's slice must not leak into the store
	in[0].Description = "changed"

	out, err := s.LoadTransactions(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out) != 1 || out[0].Description != "Bus" {
		t.Fatalf("round trip lost isolation: %+v", out)
	}

	if err := s.SaveCurrency(ctx, core.EUR); err != nil {
		t.Fatalf("save currency: %v", err)
	}
	c, _ := s.LoadCurrency(ctx)
	if c != core.EUR {
		t.Fatalf("currency = %q", c)
	}
}
