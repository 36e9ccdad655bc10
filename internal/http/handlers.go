package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime"
	"time"

	"tracker/internal/core"
	"tracker/internal/log"
	"tracker/internal/store"
)

// formFromRequest builds a pending entry form from the submitted values.
// Unknown type values fall back to expense.
func formFromRequest(r *http.Request) core.Form {
	f := core.Form{
		Amount:      sanitizeInput(r.FormValue("amount")),
		Description: sanitizeInput(r.FormValue("description")),
		Category:    sanitizeInput(r.FormValue("category")),
		Date:        sanitizeInput(r.FormValue("date")),
		Type:        core.Expense,
	}
	if t := core.TransactionType(r.FormValue("type")); t.Valid() {
		f.Type = t
	}
	return f
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.renderTemplate(w, r, "index.html", buildPageView(s.store.Snapshot()))
}

// handleCreateTransaction appends a new transaction from the submitted form.
// Invalid submissions keep the form open with the entered values and a 422.
func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	f := formFromRequest(r)
	if _, err := s.store.Create(r.Context(), f); err != nil {
		s.store.SetPending(f)
		s.renderRejectedForm(w, r, f, err)
		return
	}
	s.renderApp(w, r)
}

// handleUpdateTransaction replaces the targeted record. A stale ID is a
// no-op that still re-renders the current state.
func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id, ok := parseID(r.FormValue("id"))
	if !ok {
		http.Error(w, "invalid transaction id", http.StatusBadRequest)
		return
	}
	f := formFromRequest(r)
	if _, err := s.store.Update(r.Context(), id, f); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			slog.WarnContext(r.Context(), "Update targeted a missing transaction",
				log.FieldTransactionID, id)
			s.store.CancelForm()
			s.renderApp(w, r)
			return
		}
		s.store.SetPending(f)
		s.renderRejectedForm(w, r, f, err)
		return
	}
	s.renderApp(w, r)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost && r.Method != http.MethodDelete {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id, ok := parseID(r.FormValue("id"))
	if !ok {
		http.Error(w, "invalid transaction id", http.StatusBadRequest)
		return
	}
	s.store.Delete(r.Context(), id)
	s.renderApp(w, r)
}

// handleSetFilter replaces the session filter from the selector values.
func (s *Server) handleSetFilter(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	f := core.Filter{
		Category: sanitizeInput(r.FormValue("category")),
		Type:     sanitizeInput(r.FormValue("type")),
		Month:    sanitizeInput(r.FormValue("month")),
	}
	if f.Type != "" && f.Type != core.TypeAll && !core.TransactionType(f.Type).Valid() {
		f.Type = core.TypeAll
	}
	s.store.SetFilter(f)
	s.renderApp(w, r)
}

// handleSetCurrency switches the display currency. Unknown codes are
// rejected and the selection stays as it was.
func (s *Server) handleSetCurrency(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	code := sanitizeInput(r.FormValue("currency"))
	if err := s.store.SetCurrency(r.Context(), code); err != nil {
		slog.WarnContext(r.Context(), "Rejected unknown currency code", log.FieldCurrency, code)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusUnprocessableEntity)
		s.renderTemplate(w, r, "app", buildPageView(s.store.Snapshot()))
		return
	}
	s.renderApp(w, r)
}

func (s *Server) handleStatsPartial(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	snap := s.store.Snapshot()
	s.renderTemplate(w, r, "stats", buildPageView(snap))
}

func (s *Server) handleTransactionsPartial(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	snap := s.store.Snapshot()
	s.renderTemplate(w, r, "transaction-list", buildPageView(snap))
}

// handleFormPartial opens the entry form: empty for adding, pre-filled when
// an id parameter targets an existing record.
func (s *Server) handleFormPartial(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if raw := r.URL.Query().Get("id"); raw != "" {
		id, ok := parseID(raw)
		if !ok {
			http.Error(w, "invalid transaction id", http.StatusBadRequest)
			return
		}
		if err := s.store.StartEditing(id); err != nil {
			slog.WarnContext(r.Context(), "Edit targeted a missing transaction",
				log.FieldTransactionID, id)
			s.renderForm(w, r)
			return
		}
	} else {
		s.store.StartAdding()
	}
	s.renderForm(w, r)
}

// handleFormTypeSwitch re-renders the open form after an income/expense
// toggle, carrying the typed values over and resetting the category.
func (s *Server) handleFormTypeSwitch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	snap := s.store.Snapshot()
	f := formFromRequest(r)
	// formFromRequest already applied the submitted type; reset the
	// category when it changed relative to the open form.
	if f.Type != snap.Form.Pending.Type {
		f.Category = ""
	}
	s.store.SetPending(f)
	s.renderForm(w, r)
}

func (s *Server) handleFormCancel(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.store.CancelForm()
	s.renderForm(w, r)
}

// renderApp renders the interactive page region after a state change.
func (s *Server) renderApp(w http.ResponseWriter, r *http.Request) {
	s.renderTemplate(w, r, "app", buildPageView(s.store.Snapshot()))
}

// renderForm renders the entry form region only.
func (s *Server) renderForm(w http.ResponseWriter, r *http.Request) {
	snap := s.store.Snapshot()
	s.renderTemplate(w, r, "entry-form", buildFormView(snap.Form))
}

// renderRejectedForm re-renders the page with the form still open and the
// entered values intact, using 422 so the client swaps the rejected state
// back in. The rejection itself stays silent: no message is shown, matching
// the ignore-and-keep-editing contract of the form.
func (s *Server) renderRejectedForm(w http.ResponseWriter, r *http.Request, f core.Form, err error) {
	slog.WarnContext(r.Context(), "Rejected transaction submission", log.FieldError, err)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusUnprocessableEntity)
	snap := s.store.Snapshot()
	view := buildPageView(snap)
	formState := snap.Form
	if formState.Mode == core.FormHidden {
		// Direct posts without a prior open form still keep the values.
		formState = core.FormState{Mode: core.FormAdding, Pending: f}
	}
	view.Form = buildFormView(formState)
	s.renderTemplate(w, r, "app", view)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "ok")
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "ready")
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	hits, blocked, suspicious := s.metrics.snapshot()
	snap := s.store.Snapshot()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "uptime_seconds %d\n", int64(time.Since(s.appMetrics.uptime).Seconds()))
	fmt.Fprintf(w, "goroutines %d\n", runtime.NumGoroutine())
	fmt.Fprintf(w, "transactions_total %d\n", len(snap.Transactions))
	fmt.Fprintf(w, "rate_limit_hits %d\n", hits)
	fmt.Fprintf(w, "requests_blocked %d\n", blocked)
	fmt.Fprintf(w, "suspicious_requests %d\n", suspicious)
}
