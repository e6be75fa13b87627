package account

import (
	"fmt"

	"household-ledger-go/internal/domain/errs"
)

var (
	ErrAccountNotFound      = fmt.Errorf("account %w", errs.ErrNotFound)
	ErrPartnerNotFound      = fmt.Errorf("partner account %w", errs.ErrNotFound)
	ErrRequestNotFound      = fmt.Errorf("connection request %w", errs.ErrNotFound)
	ErrRequesterLinked      = fmt.Errorf("requester is %w", errs.ErrAlreadyLinked)
	ErrTargetLinked         = fmt.Errorf("target account is %w", errs.ErrAlreadyLinked)
	ErrPartnerAlreadyLinked = fmt.Errorf("account is %w to another partner", errs.ErrAlreadyLinked)
	ErrNameMismatch         = fmt.Errorf("%w: partners must share a last name", errs.ErrNameMismatch)
	ErrDuplicateRequest     = fmt.Errorf("%w: a pending connection request already exists", errs.ErrDuplicateRequest)
	ErrAlreadyProcessed     = fmt.Errorf("connection request %w", errs.ErrAlreadyProcessed)
	ErrInvalidDecision      = fmt.Errorf("%w: must be accept or reject", errs.ErrInvalidDecision)
	ErrSelfConnection       = fmt.Errorf("%w: cannot connect an account to itself", errs.ErrInvalidParty)
	ErrInvalidCredentials   = fmt.Errorf("%w", errs.ErrInvalidCredentials)

	ErrInvalidRole    = &errs.ValidationError{Message: "role must be husband or wife"}
	ErrEmailTaken     = &errs.ValidationError{Message: "email is already in use"}
	ErrLastNameLocked = &errs.ValidationError{Message: "cannot change last name while connected to a partner"}
)
