// Package file persists the ledger as a JSON document plus a bare currency
// code file, mirroring the two keys the browser version kept in local
// storage.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"tracker/internal/core"
	"tracker/internal/persist"
)

const (
	ledgerFile   = "transactions.json"
	currencyFile = "currency"
)

type Provider struct {
	mu  sync.Mutex
	dir string
}

var _ persist.Provider = (*Provider)(nil)

// New creates a file provider rooted at dir, creating the directory if
// needed.
func New(dir string) (*Provider, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &Provider{dir: dir}, nil
}

// transactionRecord is the on-disk shape of a transaction. Amounts are kept
// as integer cents so the file round-trips exactly.
type transactionRecord struct {
	ID          int64  `json:"id"`
	AmountCents int64  `json:"amount_cents"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Date        string `json:"date"`
	Type        string `json:"type"`
}

func (p *Provider) LoadTransactions(_ context.Context) ([]core.Transaction, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	data, err := os.ReadFile(filepath.Join(p.dir, ledgerFile))
	if os.IsNotExist(err) {
		return []core.Transaction{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read ledger file: %w", err)
	}

	var records []transactionRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode ledger file: %w", err)
	}

	items := make([]core.Transaction, 0, len(records))
	for i, r := range records {
		date, err := core.ParseDate(r.Date)
		if err != nil {
			return nil, fmt.Errorf("record %d: bad date %q: %w", i, r.Date, err)
		}
		items = append(items, core.Transaction{
			ID:          r.ID,
			Amount:      core.Money{Cents: r.AmountCents},
			Description: r.Description,
			Category:    r.Category,
			Date:        date,
			Type:        core.TransactionType(r.Type),
		})
	}
	return items, nil
}

func (p *Provider) SaveTransactions(_ context.Context, items []core.Transaction) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	records := make([]transactionRecord, 0, len(items))
	for _, tx := range items {
		records = append(records, transactionRecord{
			ID:          tx.ID,
			AmountCents: tx.Amount.Cents,
			Description: tx.Description,
			Category:    tx.Category,
			Date:        tx.Date.ISO(),
			Type:        string(tx.Type),
		})
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}
	return p.writeAtomic(ledgerFile, append(data, '\n'))
}

func (p *Provider) LoadCurrency(_ context.Context) (core.CurrencyCode, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	data, err := os.ReadFile(filepath.Join(p.dir, currencyFile))
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read currency file: %w", err)
	}
	code := strings.TrimSpace(string(data))
	if code == "" {
		return "", nil
	}
	c, err := core.ParseCurrency(code)
	if err != nil {
		return "", fmt.Errorf("stored currency %q: %w", code, err)
	}
	return c, nil
}

func (p *Provider) SaveCurrency(_ context.Context, c core.CurrencyCode) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.writeAtomic(currencyFile, []byte(string(c)+"\n"))
}

// writeAtomic writes via a temp file and rename so a crash mid-save never
// leaves a truncated ledger behind.
func (p *Provider) writeAtomic(name string, data []byte) error {
	target := filepath.Join(p.dir, name)
	tmp, err := os.CreateTemp(p.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename %s: %w", name, err)
	}
	return nil
}
