package worker

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"tracker/internal/amqp"
	"tracker/internal/storage"
)

func newTestWorker(t *testing.T) (*AuditWorker, *storage.SQLiteRepository) {
	t.Helper()
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "tracker.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return NewAuditWorker(repo), repo
}

func TestHandleLedgerEvent(t *testing.T) {
	w, repo := newTestWorker(t)
	ctx := context.Background()

	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	msg := &amqp.LedgerEventMessage{Op: "created", TransactionID: 42, Timestamp: at}
	if err := w.HandleLedgerEvent(ctx, msg); err != nil {
		t.Fatalf("handle: %v", err)
	}

	entries, err := repo.ListAuditEntries(ctx, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Op != "created" || entries[0].TransactionID != 42 || !entries[0].OccurredAt.Equal(at) {
		t.Fatalf("unexpected entry: %+v", entries[0])
	}
}

func TestHandleLedgerEventRejectsUnknownOp(t *testing.T) {
	w, repo := newTestWorker(t)
	ctx := context.Background()

	msg := &amqp.LedgerEventMessage{Op: "truncated", TransactionID: 1, Timestamp: time.Now()}
	if err := w.HandleLedgerEvent(ctx, msg); err == nil {
		t.Fatalf("expected error for unknown op")
	}
	entries, _ := repo.ListAuditEntries(ctx, 10)
	if len(entries) != 0 {
		t.Fatalf("rejected event must not be recorded")
	}
}
