package handler

import (
	"net/http"

	accountdomain "household-ledger-go/internal/domain/account"
)

type registerRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateProfileRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	view, err := h.Accounts.Register(r.Context(), accountdomain.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Role:      req.Role,
	})
	if err != nil {
		h.writeDomainError(w, "accounts.register: register failed", err)
		return
	}

	writeJSON(w, http.StatusCreated, toAccountResponse(view))
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	view, err := h.Accounts.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeDomainError(w, "accounts.login: authenticate failed", err)
		return
	}

	writeJSON(w, http.StatusOK, toAccountResponse(view))
}

func (h *Handlers) GetMe(w http.ResponseWriter, r *http.Request) {
	accountID, ok := callerID(w, r)
	if !ok {
		return
	}

	view, err := h.Accounts.Profile(r.Context(), accountID)
	if err != nil {
		h.writeDomainError(w, "accounts.get_me: load profile failed", err, "account_id", accountID)
		return
	}

	writeJSON(w, http.StatusOK, toAccountResponse(view))
}

func (h *Handlers) UpdateMe(w http.ResponseWriter, r *http.Request) {
	accountID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req updateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	view, err := h.Accounts.UpdateProfile(r.Context(), accountID, accountdomain.UpdateProfileInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	if err != nil {
		h.writeDomainError(w, "accounts.update_me: update profile failed", err, "account_id", accountID)
		return
	}

	writeJSON(w, http.StatusOK, toAccountResponse(view))
}
