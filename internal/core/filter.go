package core

import "sort"

// Filter narrows the displayed transaction list at read time. It is session
// state and never persisted.
type Filter struct {
	// Category is a label, empty, or the AllCategories sentinel. Empty and
	// the sentinel both match every category.
	Category string
	// Type is TypeAll, or a TransactionType string.
	Type string
	// Month is empty or a yyyy-mm prefix.
	Month string
}

const (
	// AllCategories is the sentinel the category selector submits to mean
	// "match all".
	AllCategories = "all_categories"

	TypeAll = "all"
)

// Matches reports whether a transaction passes every predicate of the filter.
func (f Filter) Matches(tx Transaction) bool {
	if f.Category != "" && f.Category != AllCategories && f.Category != tx.Category {
		return false
	}
	if f.Type != "" && f.Type != TypeAll && f.Type != string(tx.Type) {
		return false
	}
	if f.Month != "" && tx.Date.MonthKey() != f.Month {
		return false
	}
	return true
}

// ApplyFilter returns the transactions passing the filter, sorted by date
// descending. The sort is stable so equal dates keep their relative order.
// The input slice is never modified.
func ApplyFilter(items []Transaction, f Filter) []Transaction {
	out := make([]Transaction, 0, len(items))
	for _, tx := range items {
		if f.Matches(tx) {
			out = append(out, tx)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[j].Date.Before(out[i].Date.Time)
	})
	return out
}
