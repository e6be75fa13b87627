package account

import (
	"context"
	"errors"
	"time"
)

// View is the outward shape of an account. It has no credential field, so
// anything rendered from it cannot leak the password.
type View struct {
	ID              string
	FirstName       string
	LastName        string
	Email           string
	Role            Role
	PartnerID       *string
	Partner         *PartnerView
	PendingRequests []PendingRequestView
}

type PartnerView struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	Role      Role
}

type PendingRequestView struct {
	ID        string
	SenderID  string
	Sender    PartnerView
	Status    RequestStatus
	CreatedAt time.Time
}

func toPartnerView(account *Account) PartnerView {
	return PartnerView{
		ID:        account.ID,
		FirstName: account.FirstName,
		LastName:  account.LastName,
		Email:     account.Email,
		Role:      account.Role,
	}
}

// buildView resolves the partner and the pending requests addressed to the
// account. A partner or sender that no longer exists is left out rather than
// failing the whole view.
func buildView(ctx context.Context, repo Repository, account *Account) (*View, error) {
	view := &View{
		ID:              account.ID,
		FirstName:       account.FirstName,
		LastName:        account.LastName,
		Email:           account.Email,
		Role:            account.Role,
		PartnerID:       account.PartnerID,
		PendingRequests: []PendingRequestView{},
	}

	if account.Linked() {
		partner, err := repo.FindByID(ctx, *account.PartnerID)
		switch {
		case err == nil:
			pv := toPartnerView(partner)
			view.Partner = &pv
		case !errors.Is(err, ErrAccountNotFound):
			return nil, err
		}
	}

	requests, err := repo.ListPendingReceived(ctx, account.ID)
	if err != nil {
		return nil, err
	}
	for _, request := range requests {
		sender, err := repo.FindByID(ctx, request.SenderID)
		if errors.Is(err, ErrAccountNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		view.PendingRequests = append(view.PendingRequests, PendingRequestView{
			ID:        request.ID,
			SenderID:  request.SenderID,
			Sender:    toPartnerView(sender),
			Status:    request.Status,
			CreatedAt: request.CreatedAt,
		})
	}

	return view, nil
}
