package account

import "context"

// Repository is the Account Store. Implementations translate missing rows to
// the NotFound sentinels of this package, unique violations to ErrEmailTaken
// or ErrDuplicateRequest, and everything else to errs.ErrStoreFailure.
type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	FindByID(ctx context.Context, id string) (*Account, error)
	FindByEmail(ctx context.Context, email string) (*Account, error)
	Create(ctx context.Context, account *Account) error
	Update(ctx context.Context, id string, update AccountUpdate) error
	// SetPartner links id to partnerID only while id has no partner;
	// otherwise it returns ErrPartnerAlreadyLinked.
	SetPartner(ctx context.Context, id, partnerID string) error
	CreateRequest(ctx context.Context, request *ConnectionRequest) error
	FindRequestByID(ctx context.Context, id string) (*ConnectionRequest, error)
	// FindPendingBetween looks in both directions and returns nil, nil when
	// no pending request exists.
	FindPendingBetween(ctx context.Context, accountA, accountB string) (*ConnectionRequest, error)
	// TransitionRequest moves a pending request to status; a request that is
	// no longer pending yields ErrAlreadyProcessed.
	TransitionRequest(ctx context.Context, id string, status RequestStatus) error
	ListPendingReceived(ctx context.Context, receiverID string) ([]ConnectionRequest, error)
}
