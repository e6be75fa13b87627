package account

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"household-ledger-go/internal/domain/errs"
)

type Service struct {
	repo     Repository
	cache    ViewCache
	cacheTTL time.Duration
}

func NewService(repo Repository, cache ViewCache, cacheTTL time.Duration) *Service {
	if cache == nil {
		cache = noopCache{}
	}
	return &Service{repo: repo, cache: cache, cacheTTL: cacheTTL}
}

func (s *Service) Register(ctx context.Context, input RegisterInput) (*View, error) {
	firstName := strings.TrimSpace(input.FirstName)
	lastName := strings.TrimSpace(input.LastName)
	email := normalizeEmail(input.Email)

	switch {
	case firstName == "":
		return nil, errs.Validation("first name is required")
	case lastName == "":
		return nil, errs.Validation("last name is required")
	case email == "":
		return nil, errs.Validation("email is required")
	case !strings.Contains(email, "@"):
		return nil, errs.Validation("email is invalid")
	case input.Password == "":
		return nil, errs.Validation("password is required")
	}

	role, err := ParseRole(input.Role)
	if err != nil {
		return nil, err
	}

	account := Account{
		ID:        uuid.NewString(),
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Password:  input.Password,
		Role:      role,
	}
	if err := s.repo.Create(ctx, &account); err != nil {
		return nil, err
	}

	return buildView(ctx, s.repo, &account)
}

// Authenticate compares the opaque credential as stored; hashing is left to
// whoever provisions accounts.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*View, error) {
	account, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if subtle.ConstantTimeCompare([]byte(account.Password), []byte(password)) != 1 {
		return nil, ErrInvalidCredentials
	}

	return s.Profile(ctx, account.ID)
}

// Profile returns the account with its partner and pending received requests.
func (s *Service) Profile(ctx context.Context, accountID string) (*View, error) {
	if view, ok := s.cache.GetByAccountID(accountID); ok {
		return view, nil
	}
	generation := s.cache.Generation(accountID)

	account, err := s.repo.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	view, err := buildView(ctx, s.repo, account)
	if err != nil {
		return nil, err
	}

	s.cache.SetByAccountID(accountID, generation, view, s.cacheTTL)
	return view, nil
}

func (s *Service) UpdateProfile(ctx context.Context, accountID string, input UpdateProfileInput) (*View, error) {
	var update AccountUpdate
	if value := strings.TrimSpace(input.FirstName); value != "" {
		update.FirstName = &value
	}
	if value := strings.TrimSpace(input.LastName); value != "" {
		update.LastName = &value
	}
	if value := normalizeEmail(input.Email); value != "" {
		if !strings.Contains(value, "@") {
			return nil, errs.Validation("email is invalid")
		}
		update.Email = &value
	}

	err := s.repo.Transaction(ctx, func(tx Repository) error {
		current, err := tx.FindByID(ctx, accountID)
		if err != nil {
			return err
		}

		if update.LastName != nil && *update.LastName != current.LastName && current.Linked() {
			return ErrLastNameLocked
		}

		if update.Email != nil && *update.Email != current.Email {
			existing, err := tx.FindByEmail(ctx, *update.Email)
			switch {
			case err == nil && existing.ID != current.ID:
				return ErrEmailTaken
			case err != nil && !errors.Is(err, ErrAccountNotFound):
				return err
			}
		}

		if update.Empty() {
			return nil
		}
		return tx.Update(ctx, accountID, update)
	})
	if err != nil {
		return nil, err
	}

	// Names and emails are embedded in partner and sender views of other
	// accounts too.
	s.cache.Clear()
	return s.Profile(ctx, accountID)
}
