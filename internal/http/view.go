package http

import (
	"tracker/internal/core"
	"tracker/internal/store"
)

// View models handed to the templates. Everything is pre-formatted so the
// templates stay logic-free.

type statsView struct {
	TotalIncome     string
	TotalExpenses   string
	Balance         string
	BalanceNegative bool
}

type transactionView struct {
	ID          int64
	Description string
	Category    string
	Date        string
	Amount      string
	Income      bool
}

type currencyOption struct {
	Code     string
	Symbol   string
	Selected bool
}

type formView struct {
	Visible    bool
	Editing    bool
	TargetID   int64
	Amount     string
	Descr      string
	Category   string
	Date       string
	IsExpense  bool
	Categories []string
}

type filterView struct {
	Category   string
	Type       string
	Month      string
	Categories []string
}

type pageView struct {
	Stats           statsView
	Transactions    []transactionView
	HasTransactions bool
	Filter          filterView
	Currency        string
	Currencies      []currencyOption
	Form            formView
	AllCategories   string
}

func buildStatsView(snap store.Snapshot) statsView {
	return statsView{
		TotalIncome:     snap.Stats.TotalIncome.Display(snap.Currency),
		TotalExpenses:   snap.Stats.TotalExpenses.Display(snap.Currency),
		Balance:         snap.Stats.Balance.Display(snap.Currency),
		BalanceNegative: snap.Stats.Balance.Cents < 0,
	}
}

func buildTransactionViews(snap store.Snapshot) []transactionView {
	views := make([]transactionView, 0, len(snap.Filtered))
	for _, tx := range snap.Filtered {
		views = append(views, transactionView{
			ID:          tx.ID,
			Description: tx.Description,
			Category:    tx.Category,
			Date:        tx.Date.ISO(),
			Amount:      tx.Signed(snap.Currency),
			Income:      tx.Type == core.Income,
		})
	}
	return views
}

func buildFormView(state core.FormState) formView {
	return formView{
		Visible:    state.Mode != core.FormHidden,
		Editing:    state.Mode == core.FormEditing,
		TargetID:   state.TargetID,
		Amount:     state.Pending.Amount,
		Descr:      state.Pending.Description,
		Category:   state.Pending.Category,
		Date:       state.Pending.Date,
		IsExpense:  state.Pending.Type == core.Expense,
		Categories: core.CategoriesFor(state.Pending.Type),
	}
}

// filterCategories is the union of both category sets for the filter
// dropdown, expense first, without duplicates.
func filterCategories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, set := range [][]string{core.CategoriesFor(core.Expense), core.CategoriesFor(core.Income)} {
		for _, c := range set {
			if seen[c] {
				continue
			}
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

func buildCurrencyOptions(selected core.CurrencyCode) []currencyOption {
	codes := core.Currencies()
	opts := make([]currencyOption, 0, len(codes))
	for _, c := range codes {
		opts = append(opts, currencyOption{
			Code:     string(c),
			Symbol:   c.Symbol(),
			Selected: c == selected,
		})
	}
	return opts
}

func buildPageView(snap store.Snapshot) pageView {
	return pageView{
		Stats:           buildStatsView(snap),
		Transactions:    buildTransactionViews(snap),
		HasTransactions: len(snap.Filtered) > 0,
		Filter: filterView{
			Category:   snap.Filter.Category,
			Type:       snap.Filter.Type,
			Month:      snap.Filter.Month,
			Categories: filterCategories(),
		},
		Currency:      string(snap.Currency),
		Currencies:    buildCurrencyOptions(snap.Currency),
		Form:          buildFormView(snap.Form),
		AllCategories: core.AllCategories,
	}
}
