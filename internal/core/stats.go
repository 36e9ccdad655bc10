package core

// Stats are the derived totals over the current transaction collection. They
// are recomputed from scratch on every read, never stored.
type Stats struct {
	TotalIncome   Money
	TotalExpenses Money
	Balance       Money
}

// Summarize computes totals over the collection. Amounts are summed
// regardless of the display currency; the model carries no per-transaction
// currency.
func Summarize(items []Transaction) Stats {
	var s Stats
	for _, tx := range items {
		switch tx.Type {
		case Income:
			s.TotalIncome.Cents += tx.Amount.Cents
		case Expense:
			s.TotalExpenses.Cents += tx.Amount.Cents
		}
	}
	s.Balance.Cents = s.TotalIncome.Cents - s.TotalExpenses.Cents
	return s
}
