package handler

import (
	"errors"
	"net/http"

	"household-ledger-go/internal/domain/errs"
)

type errorMapping struct {
	kind   error
	status int
	code   string
}

var errorMappings = []errorMapping{
	{errs.ErrNotFound, http.StatusNotFound, "not_found"},
	{errs.ErrAlreadyLinked, http.StatusConflict, "already_linked"},
	{errs.ErrDuplicateRequest, http.StatusConflict, "duplicate_request"},
	{errs.ErrAlreadyProcessed, http.StatusConflict, "already_processed"},
	{errs.ErrNameMismatch, http.StatusBadRequest, "name_mismatch"},
	{errs.ErrInvalidDecision, http.StatusBadRequest, "invalid_decision"},
	{errs.ErrInvalidAmount, http.StatusBadRequest, "invalid_amount"},
	{errs.ErrInvalidParty, http.StatusBadRequest, "invalid_party"},
	{errs.ErrValidation, http.StatusBadRequest, "validation_error"},
	{errs.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"},
}

// writeDomainError maps err to its kind's status and logs it. Store failures
// and unknown errors become a 500 without any detail in the body.
func (h *Handlers) writeDomainError(w http.ResponseWriter, op string, err error, args ...any) {
	for _, m := range errorMappings {
		if errors.Is(err, m.kind) {
			h.log.BusinessError(op, err, args...)
			writeError(w, m.status, m.code, clientMessage(err))
			return
		}
	}

	h.log.InternalError(op, err, args...)
	writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
}

func clientMessage(err error) string {
	var validation *errs.ValidationError
	if errors.As(err, &validation) {
		return validation.Message
	}
	return err.Error()
}
