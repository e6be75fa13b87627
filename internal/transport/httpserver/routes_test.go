package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"household-ledger-go/internal/config"
	accountdomain "household-ledger-go/internal/domain/account"
	dashboarddomain "household-ledger-go/internal/domain/dashboard"
	ledgerdomain "household-ledger-go/internal/domain/ledger"
	"household-ledger-go/internal/repository/inmemory"
	"household-ledger-go/internal/transport/httpserver/handler"
	"household-ledger-go/internal/transport/httpserver/middleware"
	"household-ledger-go/pkg/logger"
)

type testServer struct {
	t       *testing.T
	handler http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	accounts := accountdomain.NewService(inmemory.NewAccountStore(), inmemory.NewViewCache(), time.Minute)
	ledger := ledgerdomain.NewService(inmemory.NewLedgerStore(), 3)
	dashboard := dashboarddomain.NewService(accounts, ledger)

	cfg := config.Config{
		RequestTimeout: 5 * time.Second,
		CORSOrigins:    []string{"http://localhost:5173"},
	}
	log := logger.Nop()
	return &testServer{
		t:       t,
		handler: NewRouter(cfg, handler.New(accounts, ledger, dashboard, log), log),
	}
}

func (s *testServer) do(method, path, accountID string, body any) (int, map[string]any) {
	s.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if accountID != "" {
		req.Header.Set(middleware.AccountHeader, accountID)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	var payload map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &payload))
	}
	return rec.Code, payload
}

func (s *testServer) register(first, last, email, role string) string {
	s.t.Helper()
	status, body := s.do(http.MethodPost, "/api/accounts", "", map[string]string{
		"first_name": first, "last_name": last, "email": email, "password": "secret", "role": role,
	})
	require.Equal(s.t, http.StatusCreated, status, body)
	return body["id"].(string)
}

func errorCode(body map[string]any) string {
	envelope, _ := body["error"].(map[string]any)
	code, _ := envelope["code"].(string)
	return code
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	status, body := srv.do(http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestRegisterHidesPassword(t *testing.T) {
	srv := newTestServer(t)
	status, body := srv.do(http.MethodPost, "/api/accounts", "", map[string]string{
		"first_name": "John", "last_name": "Smith", "email": "John@X.io", "password": "secret", "role": "husband",
	})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "john@x.io", body["email"])
	assert.NotContains(t, body, "password")
	assert.Equal(t, []any{}, body["pending_requests"])

	status, body = srv.do(http.MethodPost, "/api/accounts", "", map[string]string{
		"first_name": "Jim", "last_name": "Smith", "email": "john@x.io", "password": "pw", "role": "husband",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "validation_error", errorCode(body))
}

func TestRegisterRejectsUnknownFields(t *testing.T) {
	srv := newTestServer(t)
	status, body := srv.do(http.MethodPost, "/api/accounts", "", map[string]string{"nickname": "jj"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid_json", errorCode(body))
}

func TestLogin(t *testing.T) {
	srv := newTestServer(t)
	id := srv.register("John", "Smith", "john@x.io", "husband")

	status, body := srv.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "john@x.io", "password": "secret"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, id, body["id"])

	status, body = srv.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "john@x.io", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "invalid_credentials", errorCode(body))
}

func TestIdentityHeaderRequired(t *testing.T) {
	srv := newTestServer(t)

	status, body := srv.do(http.MethodGet, "/api/accounts/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "missing_account", errorCode(body))

	status, body = srv.do(http.MethodGet, "/api/accounts/me", "11111111-1111-4111-8111-111111111111", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "unknown_account", errorCode(body))
}

func TestPartnerFlow(t *testing.T) {
	srv := newTestServer(t)
	john := srv.register("John", "Smith", "john@x.io", "husband")
	jane := srv.register("Jane", "Smith", "jane@x.io", "wife")
	srv.register("Mary", "Jones", "mary@x.io", "wife")

	status, body := srv.do(http.MethodPost, "/api/partner/connect", john, map[string]string{"partner_email": "mary@x.io"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "name_mismatch", errorCode(body))

	status, body = srv.do(http.MethodPost, "/api/partner/connect", john, map[string]string{"partner_email": "jane@x.io"})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Connection request sent to Jane Smith", body["message"])

	status, body = srv.do(http.MethodPost, "/api/partner/connect", jane, map[string]string{"partner_email": "john@x.io"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "duplicate_request", errorCode(body))

	_, me := srv.do(http.MethodGet, "/api/accounts/me", jane, nil)
	pending := me["pending_requests"].([]any)
	require.Len(t, pending, 1)
	requestID := pending[0].(map[string]any)["id"].(string)

	status, body = srv.do(http.MethodPost, "/api/partner/respond", john, map[string]string{"request_id": requestID, "decision": "accept"})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "not_found", errorCode(body))

	status, body = srv.do(http.MethodPost, "/api/partner/respond", jane, map[string]string{"request_id": requestID, "decision": "maybe"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid_decision", errorCode(body))

	status, body = srv.do(http.MethodPost, "/api/partner/respond", jane, map[string]string{"request_id": requestID, "decision": "accept"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, john, body["partner_id"])
	assert.Equal(t, "John", body["partner"].(map[string]any)["first_name"])

	status, body = srv.do(http.MethodPost, "/api/partner/respond", jane, map[string]string{"request_id": requestID, "decision": "accept"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "already_processed", errorCode(body))

	_, me = srv.do(http.MethodGet, "/api/accounts/me", john, nil)
	assert.Equal(t, jane, me["partner_id"])

	status, body = srv.do(http.MethodPatch, "/api/accounts/me", john, map[string]string{"last_name": "Brown"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "validation_error", errorCode(body))
}

func TestDebtLifecycle(t *testing.T) {
	srv := newTestServer(t)
	john := srv.register("John", "Smith", "john@x.io", "husband")
	jane := srv.register("Jane", "Smith", "jane@x.io", "wife")
	mary := srv.register("Mary", "Jones", "mary@x.io", "wife")

	status, body := srv.do(http.MethodPost, "/api/debts", mary, map[string]any{
		"description": "Dinner", "amount": "50", "paid_by": john, "owed_by": jane,
	})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "not_a_party", errorCode(body))

	status, body = srv.do(http.MethodPost, "/api/debts", john, map[string]any{
		"description": "Dinner", "amount": "50", "paid_by": john, "owed_by": jane,
	})
	require.Equal(t, http.StatusCreated, status)
	dinner := body["entry"].(map[string]any)
	assert.Equal(t, "50.00", dinner["amount"])
	assert.Equal(t, false, dinner["is_paid"])
	assert.Nil(t, dinner["paid_at"])

	status, body = srv.do(http.MethodPost, "/api/debts", jane, map[string]any{
		"description": "Rent", "amount": 300, "paid_by": jane, "owed_by": john, "term": "installment",
	})
	require.Equal(t, http.StatusCreated, status)
	rent := body["entries"].([]any)
	require.Len(t, rent, 3)
	first := rent[0].(map[string]any)
	assert.Equal(t, "Rent (1/3)", first["description"])
	assert.Equal(t, "100.00", first["amount"])
	assert.EqualValues(t, 3, first["installment"].(map[string]any)["total"])

	status, body = srv.do(http.MethodPost, "/api/debts", john, map[string]any{
		"description": "Nothing", "amount": "0", "paid_by": john, "owed_by": jane,
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid_amount", errorCode(body))

	_, body = srv.do(http.MethodGet, "/api/balance", john, nil)
	assert.Equal(t, "-250.00", body["balance"])
	assert.Equal(t, false, body["counterparty_owes"])

	dinnerID := dinner["id"].(string)
	status, body = srv.do(http.MethodPatch, "/api/debts/"+dinnerID, mary, map[string]any{"is_paid": true})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "not_found", errorCode(body))

	status, body = srv.do(http.MethodPatch, "/api/debts/"+dinnerID, jane, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "validation_error", errorCode(body))

	status, body = srv.do(http.MethodPatch, "/api/debts/"+dinnerID, jane, map[string]any{"is_paid": true})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["entry"].(map[string]any)["is_paid"])
	assert.NotNil(t, body["entry"].(map[string]any)["paid_at"])

	_, body = srv.do(http.MethodGet, "/api/balance", jane, nil)
	assert.Equal(t, "300.00", body["balance"])
	assert.Equal(t, true, body["counterparty_owes"])

	_, body = srv.do(http.MethodGet, "/api/debts", john, nil)
	assert.Len(t, body["entries"].([]any), 4)

	_, body = srv.do(http.MethodGet, "/api/debts", mary, nil)
	assert.Equal(t, []any{}, body["entries"])

	status, _ = srv.do(http.MethodDelete, "/api/debts/"+dinnerID, mary, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, body = srv.do(http.MethodDelete, "/api/debts/"+dinnerID, john, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["ok"])

	status, _ = srv.do(http.MethodDelete, "/api/debts/"+dinnerID, john, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestCreateDebtRejectsMalformedInput(t *testing.T) {
	srv := newTestServer(t)
	john := srv.register("John", "Smith", "john@x.io", "husband")
	jane := srv.register("Jane", "Smith", "jane@x.io", "wife")

	cases := []struct {
		name   string
		body   map[string]any
		status int
		code   string
	}{
		{
			name:   "ower is not an account id",
			body:   map[string]any{"description": "Dinner", "amount": "50", "paid_by": john, "owed_by": "not-a-uuid"},
			status: http.StatusBadRequest,
			code:   "invalid_party",
		},
		{
			name:   "sub-cent amount",
			body:   map[string]any{"description": "Gum", "amount": "0.004", "paid_by": john, "owed_by": jane},
			status: http.StatusBadRequest,
			code:   "invalid_amount",
		},
		{
			name:   "three decimal places",
			body:   map[string]any{"description": "Fuel", "amount": "12.345", "paid_by": john, "owed_by": jane},
			status: http.StatusBadRequest,
			code:   "invalid_amount",
		},
		{
			name:   "amount too large",
			body:   map[string]any{"description": "House", "amount": "1000000000000", "paid_by": john, "owed_by": jane},
			status: http.StatusBadRequest,
			code:   "invalid_amount",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := srv.do(http.MethodPost, "/api/debts", john, tc.body)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, errorCode(body))
		})
	}

	_, body := srv.do(http.MethodGet, "/api/debts", john, nil)
	assert.Equal(t, []any{}, body["entries"])
}

func TestDashboard(t *testing.T) {
	srv := newTestServer(t)
	john := srv.register("John", "Smith", "john@x.io", "husband")
	jane := srv.register("Jane", "Smith", "jane@x.io", "wife")

	status, _ := srv.do(http.MethodPost, "/api/debts", john, map[string]any{
		"description": "Groceries", "amount": "42.5", "paid_by": john, "owed_by": jane,
	})
	require.Equal(t, http.StatusCreated, status)

	status, body := srv.do(http.MethodGet, "/api/dashboard", john, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, john, body["account"].(map[string]any)["id"])
	assert.Len(t, body["debts"].([]any), 1)
	assert.Equal(t, "42.50", body["balance"])
	assert.Equal(t, true, body["counterparty_owes"])
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/debts", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	srv.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), middleware.AccountHeader)

	req = httptest.NewRequest(http.MethodOptions, "/api/debts", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	srv.handler.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
