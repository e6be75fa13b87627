package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	ledgerdomain "household-ledger-go/internal/domain/ledger"
)

type createDebtRequest struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	PaidBy      string          `json:"paid_by"`
	OwedBy      string          `json:"owed_by"`
	Term        string          `json:"term"`
	Months      *int            `json:"months"`
}

type toggleDebtRequest struct {
	IsPaid *bool `json:"is_paid"`
}

func (h *Handlers) ListDebts(w http.ResponseWriter, r *http.Request) {
	accountID, ok := callerID(w, r)
	if !ok {
		return
	}

	entries, err := h.Ledger.ListDebts(r.Context(), accountID)
	if err != nil {
		h.writeDomainError(w, "debts.list: list failed", err, "account_id", accountID)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"entries": toEntryResponses(entries)})
}

func (h *Handlers) CreateDebt(w http.ResponseWriter, r *http.Request) {
	accountID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req createDebtRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	req.PaidBy = strings.TrimSpace(req.PaidBy)
	req.OwedBy = strings.TrimSpace(req.OwedBy)
	if req.PaidBy != accountID && req.OwedBy != accountID {
		h.log.Warn("debts.create: caller is not a party", "account_id", accountID)
		writeError(w, http.StatusForbidden, "not_a_party", "caller must be the payer or the ower")
		return
	}

	term, err := ledgerdomain.ParseTerm(req.Term)
	if err != nil {
		h.writeDomainError(w, "debts.create: parse term failed", err, "account_id", accountID)
		return
	}

	input := ledgerdomain.DebtInput{
		Description: req.Description,
		Amount:      req.Amount,
		PaidBy:      req.PaidBy,
		OwedBy:      req.OwedBy,
		Term:        term,
	}
	if req.Months != nil {
		input.Months = *req.Months
	}

	entries, err := h.Ledger.AddDebt(r.Context(), input)
	if err != nil {
		h.writeDomainError(w, "debts.create: add debt failed", err, "account_id", accountID)
		return
	}

	if term == ledgerdomain.TermStraight {
		writeJSON(w, http.StatusCreated, map[string]any{"entry": toEntryResponse(entries[0])})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"entries": toEntryResponses(entries)})
}

func (h *Handlers) ToggleDebt(w http.ResponseWriter, r *http.Request) {
	accountID, ok := callerID(w, r)
	if !ok {
		return
	}
	entryID := chi.URLParam(r, "id")

	var req toggleDebtRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if req.IsPaid == nil {
		writeError(w, http.StatusBadRequest, "validation_error", "is_paid is required")
		return
	}

	if _, err := h.Ledger.EnsureParty(r.Context(), entryID, accountID); err != nil {
		h.writeDomainError(w, "debts.toggle: load entry failed", err, "account_id", accountID, "entry_id", entryID)
		return
	}

	entry, err := h.Ledger.ToggleDebt(r.Context(), entryID, *req.IsPaid)
	if err != nil {
		h.writeDomainError(w, "debts.toggle: toggle failed", err, "account_id", accountID, "entry_id", entryID)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"entry": toEntryResponse(*entry)})
}

func (h *Handlers) DeleteDebt(w http.ResponseWriter, r *http.Request) {
	accountID, ok := callerID(w, r)
	if !ok {
		return
	}
	entryID := chi.URLParam(r, "id")

	if _, err := h.Ledger.EnsureParty(r.Context(), entryID, accountID); err != nil {
		h.writeDomainError(w, "debts.delete: load entry failed", err, "account_id", accountID, "entry_id", entryID)
		return
	}

	if err := h.Ledger.DeleteDebt(r.Context(), entryID); err != nil {
		h.writeDomainError(w, "debts.delete: delete failed", err, "account_id", accountID, "entry_id", entryID)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handlers) Balance(w http.ResponseWriter, r *http.Request) {
	accountID, ok := callerID(w, r)
	if !ok {
		return
	}

	balance, err := h.Ledger.Balance(r.Context(), accountID)
	if err != nil {
		h.writeDomainError(w, "debts.balance: compute failed", err, "account_id", accountID)
		return
	}

	writeJSON(w, http.StatusOK, balanceResponse{
		AccountID:        accountID,
		Balance:          formatAmount(balance),
		CounterpartyOwes: balance.IsPositive(),
	})
}

func (h *Handlers) GetDashboard(w http.ResponseWriter, r *http.Request) {
	accountID, ok := callerID(w, r)
	if !ok {
		return
	}

	summary, err := h.Dashboard.Dashboard(r.Context(), accountID)
	if err != nil {
		h.writeDomainError(w, "dashboard.get: load failed", err, "account_id", accountID)
		return
	}

	writeJSON(w, http.StatusOK, toDashboardResponse(summary))
}
