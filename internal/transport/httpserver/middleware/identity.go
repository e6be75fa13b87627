package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	accountdomain "household-ledger-go/internal/domain/account"
	"household-ledger-go/internal/domain/errs"
	"household-ledger-go/pkg/logger"
)

// AccountHeader names the caller's account. The value is trusted as sent;
// session handling lives outside this service.
const AccountHeader = "X-Account-ID"

type contextKey int

const (
	accountIDKey contextKey = iota
	accountKey
)

type AccountLookup interface {
	Profile(ctx context.Context, accountID string) (*accountdomain.View, error)
}

type Identity struct {
	accounts AccountLookup
	log      logger.Logger
}

func NewIdentity(accounts AccountLookup, log logger.Logger) *Identity {
	return &Identity{accounts: accounts, log: log}
}

func (i *Identity) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accountID := strings.TrimSpace(r.Header.Get(AccountHeader))
		if accountID == "" {
			writeError(w, http.StatusUnauthorized, "missing_account", "X-Account-ID header is required")
			return
		}

		view, err := i.accounts.Profile(r.Context(), accountID)
		if err != nil {
			if errors.Is(err, errs.ErrNotFound) {
				i.log.BusinessError("identity: unknown account", err, "account_id", accountID)
				writeError(w, http.StatusUnauthorized, "unknown_account", "unknown account")
				return
			}
			i.log.InternalError("identity: account lookup failed", err, "account_id", accountID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
			return
		}

		ctx := WithAccount(r.Context(), view)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func WithAccount(ctx context.Context, view *accountdomain.View) context.Context {
	ctx = context.WithValue(ctx, accountKey, view)
	return context.WithValue(ctx, accountIDKey, view.ID)
}

func AccountFromContext(ctx context.Context) (*accountdomain.View, bool) {
	view, ok := ctx.Value(accountKey).(*accountdomain.View)
	if !ok || view == nil || view.ID == "" {
		return nil, false
	}
	return view, true
}

func AccountIDFromContext(ctx context.Context) (string, bool) {
	accountID, ok := ctx.Value(accountIDKey).(string)
	if !ok || accountID == "" {
		return "", false
	}
	return accountID, true
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
