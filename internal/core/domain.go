package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

type (
	TransactionType string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Transaction is a single recorded income or expense event. Records are
	// immutable once created except via a full replace keyed by ID.
	Transaction struct {
		ID          int64
		Amount      Money
		Description string
		Category    string
		Date        Date
		Type        TransactionType
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyCategory    = errors.New("empty category")
	ErrInvalidCategory  = errors.New("category not allowed for transaction type")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidType      = errors.New("invalid transaction type")
)

// Category labels are fixed and ordered, one set per transaction type.
var (
	expenseCategories = []string{"Food", "Transportation", "Entertainment", "Bills", "Shopping", "Health", "Other"}
	incomeCategories  = []string{"Salary", "Freelance", "Investment", "Gift", "Other"}
)

func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

// CategoriesFor returns the allowed category labels for a transaction type,
// in display order. The returned slice is a copy.
func CategoriesFor(t TransactionType) []string {
	switch t {
	case Expense:
		return append([]string(nil), expenseCategories...)
	case Income:
		return append([]string(nil), incomeCategories...)
	default:
		return nil
	}
}

// ValidCategory reports whether the label belongs to the category set of the
// given transaction type.
func ValidCategory(t TransactionType, label string) bool {
	for _, c := range CategoriesFor(t) {
		if c == label {
			return true
		}
	}
	return false
}

// ParseDate parses an ISO yyyy-mm-dd calendar date. Dates carry no time or
// timezone component.
func ParseDate(s string) (Date, error) {
	parsed, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: parsed}, nil
}

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ISO returns the date formatted as yyyy-mm-dd.
func (d Date) ISO() string {
	return d.Format("2006-01-02")
}

// MonthKey returns the year-month prefix (yyyy-mm) used for month filtering.
func (d Date) MonthKey() string {
	return d.Format("2006-01")
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (tx Transaction) Validate() error {
	if !tx.Type.Valid() {
		return ErrInvalidType
	}
	if err := tx.Date.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(tx.Description)) == 0 {
		return ErrEmptyDescription
	}
	if strings.TrimSpace(tx.Category) == "" {
		return ErrEmptyCategory
	}
	if !ValidCategory(tx.Type, tx.Category) {
		return ErrInvalidCategory
	}
	if tx.Amount.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}
