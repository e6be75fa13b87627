package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	accountdomain "household-ledger-go/internal/domain/account"
	"household-ledger-go/internal/domain/errs"
	ledgerdomain "household-ledger-go/internal/domain/ledger"
	"household-ledger-go/pkg/logger"
)

func TestWriteDomainErrorMapping(t *testing.T) {
	h := New(nil, nil, nil, logger.Nop())

	cases := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"not found", accountdomain.ErrRequestNotFound, http.StatusNotFound, "not_found", ""},
		{"already linked", accountdomain.ErrTargetLinked, http.StatusConflict, "already_linked", ""},
		{"duplicate", accountdomain.ErrDuplicateRequest, http.StatusConflict, "duplicate_request", ""},
		{"processed", accountdomain.ErrAlreadyProcessed, http.StatusConflict, "already_processed", ""},
		{"name mismatch", accountdomain.ErrNameMismatch, http.StatusBadRequest, "name_mismatch", ""},
		{"decision", accountdomain.ErrInvalidDecision, http.StatusBadRequest, "invalid_decision", ""},
		{"amount", ledgerdomain.ErrInvalidAmount, http.StatusBadRequest, "invalid_amount", ""},
		{"party", ledgerdomain.ErrSameParty, http.StatusBadRequest, "invalid_party", ""},
		{"validation", errs.Validation("email is required"), http.StatusBadRequest, "validation_error", "email is required"},
		{"credentials", accountdomain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials", ""},
		{"store", errs.Store("ledger.find", errors.New("connection refused")), http.StatusInternalServerError, "internal_error", "internal error"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal_error", "internal error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.writeDomainError(rec, "test.op: failed", tc.err)

			assert.Equal(t, tc.status, rec.Code)
			var body errorEnvelope
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tc.code, body.Error.Code)
			if tc.message != "" {
				assert.Equal(t, tc.message, body.Error.Message)
			}
			assert.NotContains(t, body.Error.Message, "connection refused")
		})
	}
}
