package handler

import (
	"net/http"
)

type connectRequest struct {
	PartnerEmail string `json:"partner_email"`
}

type respondRequest struct {
	RequestID string `json:"request_id"`
	Decision  string `json:"decision"`
}

func (h *Handlers) Connect(w http.ResponseWriter, r *http.Request) {
	accountID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req connectRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	message, err := h.Accounts.InitiateConnection(r.Context(), accountID, req.PartnerEmail)
	if err != nil {
		h.writeDomainError(w, "partners.connect: initiate failed", err, "account_id", accountID)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"message": message})
}

// Respond only lets the receiver of a request answer it.
func (h *Handlers) Respond(w http.ResponseWriter, r *http.Request) {
	accountID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req respondRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	view, err := h.Accounts.RespondAsReceiver(r.Context(), accountID, req.RequestID, req.Decision)
	if err != nil {
		h.writeDomainError(w, "partners.respond: respond failed", err,
			"account_id", accountID, "request_id", req.RequestID)
		return
	}

	writeJSON(w, http.StatusOK, toAccountResponse(view))
}
