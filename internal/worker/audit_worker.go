// Package worker consumes the ledger-event feed and records every mutation
// in the audit trail.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"tracker/internal/amqp"
	"tracker/internal/store"
	"tracker/internal/storage"
)

// AuditWorker appends consumed ledger events to the SQLite audit log.
type AuditWorker struct {
	storage *storage.SQLiteRepository
}

func NewAuditWorker(storage *storage.SQLiteRepository) *AuditWorker {
	return &AuditWorker{storage: storage}
}

// HandleLedgerEvent processes a single event from the queue. Unknown
// operations are rejected so a poisoned message is not requeued forever.
func (w *AuditWorker) HandleLedgerEvent(ctx context.Context, msg *amqp.LedgerEventMessage) error {
	switch msg.Op {
	case store.OpCreated, store.OpUpdated, store.OpDeleted:
	default:
		return fmt.Errorf("unknown ledger operation %q", msg.Op)
	}

	if err := w.storage.AppendAudit(ctx, msg.Op, msg.TransactionID, msg.Timestamp); err != nil {
		return fmt.Errorf("append audit entry: %w", err)
	}

	slog.InfoContext(ctx, "Audit entry recorded",
		"component", "worker",
		"operation", msg.Op,
		"transaction_id", msg.TransactionID)
	return nil
}
