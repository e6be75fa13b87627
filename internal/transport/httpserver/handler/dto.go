package handler

import (
	"time"

	"github.com/shopspring/decimal"
	accountdomain "household-ledger-go/internal/domain/account"
	dashboarddomain "household-ledger-go/internal/domain/dashboard"
	ledgerdomain "household-ledger-go/internal/domain/ledger"
)

type partnerResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

type pendingRequestResponse struct {
	ID        string          `json:"id"`
	SenderID  string          `json:"sender_id"`
	Sender    partnerResponse `json:"sender"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

type accountResponse struct {
	ID              string                   `json:"id"`
	FirstName       string                   `json:"first_name"`
	LastName        string                   `json:"last_name"`
	Email           string                   `json:"email"`
	Role            string                   `json:"role"`
	PartnerID       *string                  `json:"partner_id"`
	Partner         *partnerResponse         `json:"partner"`
	PendingRequests []pendingRequestResponse `json:"pending_requests"`
}

type installmentResponse struct {
	GroupID string    `json:"group_id"`
	Index   int       `json:"index"`
	Total   int       `json:"total"`
	DueDate time.Time `json:"due_date"`
}

type entryResponse struct {
	ID          string               `json:"id"`
	Description string               `json:"description"`
	Amount      string               `json:"amount"`
	PaidBy      string               `json:"paid_by"`
	OwedBy      string               `json:"owed_by"`
	IsPaid      bool                 `json:"is_paid"`
	CreatedAt   time.Time            `json:"created_at"`
	PaidAt      *time.Time           `json:"paid_at"`
	Installment *installmentResponse `json:"installment,omitempty"`
}

type balanceResponse struct {
	AccountID        string `json:"account_id"`
	Balance          string `json:"balance"`
	CounterpartyOwes bool   `json:"counterparty_owes"`
}

type dashboardResponse struct {
	Account          accountResponse `json:"account"`
	Debts            []entryResponse `json:"debts"`
	Balance          string          `json:"balance"`
	CounterpartyOwes bool            `json:"counterparty_owes"`
}

func toPartnerResponse(view accountdomain.PartnerView) partnerResponse {
	return partnerResponse{
		ID:        view.ID,
		FirstName: view.FirstName,
		LastName:  view.LastName,
		Email:     view.Email,
		Role:      string(view.Role),
	}
}

func toAccountResponse(view *accountdomain.View) accountResponse {
	resp := accountResponse{
		ID:              view.ID,
		FirstName:       view.FirstName,
		LastName:        view.LastName,
		Email:           view.Email,
		Role:            string(view.Role),
		PartnerID:       view.PartnerID,
		PendingRequests: make([]pendingRequestResponse, 0, len(view.PendingRequests)),
	}
	if view.Partner != nil {
		partner := toPartnerResponse(*view.Partner)
		resp.Partner = &partner
	}
	for _, request := range view.PendingRequests {
		resp.PendingRequests = append(resp.PendingRequests, pendingRequestResponse{
			ID:        request.ID,
			SenderID:  request.SenderID,
			Sender:    toPartnerResponse(request.Sender),
			Status:    string(request.Status),
			CreatedAt: request.CreatedAt,
		})
	}
	return resp
}

func formatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

func toEntryResponse(entry ledgerdomain.Entry) entryResponse {
	resp := entryResponse{
		ID:          entry.ID,
		Description: entry.Description,
		Amount:      formatAmount(entry.Amount),
		PaidBy:      entry.PaidBy,
		OwedBy:      entry.OwedBy,
		IsPaid:      entry.IsPaid,
		CreatedAt:   entry.CreatedAt,
		PaidAt:      entry.PaidAt,
	}
	if entry.Installment != nil {
		resp.Installment = &installmentResponse{
			GroupID: entry.Installment.GroupID,
			Index:   entry.Installment.Index,
			Total:   entry.Installment.Total,
			DueDate: entry.Installment.DueDate,
		}
	}
	return resp
}

func toEntryResponses(entries []ledgerdomain.Entry) []entryResponse {
	result := make([]entryResponse, 0, len(entries))
	for _, entry := range entries {
		result = append(result, toEntryResponse(entry))
	}
	return result
}

func toDashboardResponse(summary *dashboarddomain.Summary) dashboardResponse {
	return dashboardResponse{
		Account:          toAccountResponse(summary.Account),
		Debts:            toEntryResponses(summary.Debts),
		Balance:          formatAmount(summary.Balance),
		CounterpartyOwes: summary.CounterpartyOwes,
	}
}
