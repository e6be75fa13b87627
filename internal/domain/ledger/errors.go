package ledger

import (
	"fmt"

	"household-ledger-go/internal/domain/errs"
)

var (
	ErrEntryNotFound      = fmt.Errorf("ledger entry %w", errs.ErrNotFound)
	ErrInvalidAmount      = fmt.Errorf("%w: amount must be positive, below 10^12, with at most two decimal places", errs.ErrInvalidAmount)
	ErrMissingParty       = fmt.Errorf("%w: payer and ower are required", errs.ErrInvalidParty)
	ErrSameParty          = fmt.Errorf("%w: payer and ower must differ", errs.ErrInvalidParty)
	ErrMalformedParty     = fmt.Errorf("%w: payer and ower must be account ids", errs.ErrInvalidParty)
	ErrUnknownTerm        = &errs.ValidationError{Message: "term must be straight or installment"}
	ErrMissingDescription = &errs.ValidationError{Message: "description is required"}
	ErrTooManyMonths      = &errs.ValidationError{Message: "installment months must not exceed 120"}
)
