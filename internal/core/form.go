package core

import (
	"errors"
	"strings"
	"time"
)

// ErrIncompleteForm marks a submission with a missing amount, description or
// category. Such submissions are ignored; the form stays open with the
// entered values intact.
var ErrIncompleteForm = errors.New("incomplete form")

// Form is the pending entry shared by the create and edit flows. Amount and
// Date stay as the raw text the user typed until submit.
type Form struct {
	Amount      string
	Description string
	Category    string
	Date        string
	Type        TransactionType
}

// NewForm returns an empty pending form defaulting to an expense dated today.
func NewForm(now time.Time) Form {
	return Form{
		Date: now.Format("2006-01-02"),
		Type: Expense,
	}
}

// FormFromTransaction pre-populates a pending form for editing a record.
func FormFromTransaction(tx Transaction) Form {
	return Form{
		Amount:      tx.Amount.Fixed2(),
		Description: tx.Description,
		Category:    tx.Category,
		Date:        tx.Date.ISO(),
		Type:        tx.Type,
	}
}

// Complete reports whether amount, description and category are all set.
func (f Form) Complete() bool {
	return strings.TrimSpace(f.Amount) != "" &&
		strings.TrimSpace(f.Description) != "" &&
		strings.TrimSpace(f.Category) != ""
}

// Build parses and validates the form into a transaction carrying the given
// ID. Incomplete forms yield ErrIncompleteForm, malformed amounts
// ErrInvalidAmount; amounts are never silently coerced to zero.
func (f Form) Build(id int64) (Transaction, error) {
	if !f.Complete() {
		return Transaction{}, ErrIncompleteForm
	}
	cents, err := ParseDecimalToCents(f.Amount)
	if err != nil {
		return Transaction{}, err
	}
	date, err := ParseDate(f.Date)
	if err != nil {
		return Transaction{}, err
	}
	tx := Transaction{
		ID:          id,
		Amount:      Money{Cents: cents},
		Description: strings.TrimSpace(f.Description),
		Category:    f.Category,
		Date:        date,
		Type:        f.Type,
	}
	if err := tx.Validate(); err != nil {
		return Transaction{}, err
	}
	return tx, nil
}

// WithType returns the form switched to a new transaction type. The category
// is reset to unset because the old label may not belong to the new type's
// category set.
func (f Form) WithType(t TransactionType) Form {
	if t == f.Type {
		return f
	}
	f.Type = t
	f.Category = ""
	return f
}

// FormMode is the visibility state of the entry form.
type FormMode int

const (
	FormHidden FormMode = iota
	FormAdding
	FormEditing
)

// FormState is the tagged variant Idle | Adding(pending) |
// Editing(id, pending). Submitting or cancelling from either active state
// returns to hidden with the pending form cleared.
type FormState struct {
	Mode     FormMode
	TargetID int64
	Pending  Form
}

// StartAdding opens an empty pending form.
func StartAdding(now time.Time) FormState {
	return FormState{Mode: FormAdding, Pending: NewForm(now)}
}

// StartEditing opens a pending form pre-filled from the target record.
func StartEditing(tx Transaction) FormState {
	return FormState{Mode: FormEditing, TargetID: tx.ID, Pending: FormFromTransaction(tx)}
}

// Close returns to the hidden state with the pending form cleared.
func (s FormState) Close() FormState {
	return FormState{}
}
