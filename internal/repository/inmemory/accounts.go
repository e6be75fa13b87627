package inmemory

import (
	"context"
	"sort"
	"sync"
	"time"

	accountdomain "household-ledger-go/internal/domain/account"
)

// AccountStore is a process-local Account Store. Transaction holds the store
// lock for its whole callback and restores a snapshot when the callback
// fails, so other callers never see a partial write.
type AccountStore struct {
	mu    sync.Mutex
	state accountState
}

type accountState struct {
	accounts map[string]accountdomain.Account
	requests map[string]accountdomain.ConnectionRequest
}

func NewAccountStore() *AccountStore {
	return &AccountStore{
		state: accountState{
			accounts: make(map[string]accountdomain.Account),
			requests: make(map[string]accountdomain.ConnectionRequest),
		},
	}
}

func (s *AccountStore) Transaction(ctx context.Context, fn func(accountdomain.Repository) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.state.clone()
	if err := fn(&accountTx{state: &s.state}); err != nil {
		s.state = snapshot
		return err
	}
	return nil
}

func (s *AccountStore) FindByID(ctx context.Context, id string) (*accountdomain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tx().FindByID(ctx, id)
}

func (s *AccountStore) FindByEmail(ctx context.Context, email string) (*accountdomain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tx().FindByEmail(ctx, email)
}

func (s *AccountStore) Create(ctx context.Context, account *accountdomain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tx().Create(ctx, account)
}

func (s *AccountStore) Update(ctx context.Context, id string, update accountdomain.AccountUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tx().Update(ctx, id, update)
}

func (s *AccountStore) SetPartner(ctx context.Context, id, partnerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tx().SetPartner(ctx, id, partnerID)
}

func (s *AccountStore) CreateRequest(ctx context.Context, request *accountdomain.ConnectionRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tx().CreateRequest(ctx, request)
}

func (s *AccountStore) FindRequestByID(ctx context.Context, id string) (*accountdomain.ConnectionRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tx().FindRequestByID(ctx, id)
}

func (s *AccountStore) FindPendingBetween(ctx context.Context, accountA, accountB string) (*accountdomain.ConnectionRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tx().FindPendingBetween(ctx, accountA, accountB)
}

func (s *AccountStore) TransitionRequest(ctx context.Context, id string, status accountdomain.RequestStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tx().TransitionRequest(ctx, id, status)
}

func (s *AccountStore) ListPendingReceived(ctx context.Context, receiverID string) ([]accountdomain.ConnectionRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tx().ListPendingReceived(ctx, receiverID)
}

func (s *AccountStore) tx() *accountTx {
	return &accountTx{state: &s.state}
}

func (st accountState) clone() accountState {
	clone := accountState{
		accounts: make(map[string]accountdomain.Account, len(st.accounts)),
		requests: make(map[string]accountdomain.ConnectionRequest, len(st.requests)),
	}
	for id, account := range st.accounts {
		clone.accounts[id] = account
	}
	for id, request := range st.requests {
		clone.requests[id] = request
	}
	return clone
}

// accountTx operates on the state without locking; the caller holds the lock.
type accountTx struct {
	state *accountState
}

func (t *accountTx) Transaction(ctx context.Context, fn func(accountdomain.Repository) error) error {
	return fn(t)
}

func (t *accountTx) FindByID(ctx context.Context, id string) (*accountdomain.Account, error) {
	account, ok := t.state.accounts[id]
	if !ok {
		return nil, accountdomain.ErrAccountNotFound
	}
	return copyAccount(account), nil
}

func (t *accountTx) FindByEmail(ctx context.Context, email string) (*accountdomain.Account, error) {
	for _, account := range t.state.accounts {
		if account.Email == email {
			return copyAccount(account), nil
		}
	}
	return nil, accountdomain.ErrAccountNotFound
}

func (t *accountTx) Create(ctx context.Context, account *accountdomain.Account) error {
	for _, existing := range t.state.accounts {
		if existing.Email == account.Email {
			return accountdomain.ErrEmailTaken
		}
	}

	now := time.Now().UTC()
	if account.CreatedAt.IsZero() {
		account.CreatedAt = now
	}
	account.UpdatedAt = now
	t.state.accounts[account.ID] = *copyAccount(*account)
	return nil
}

func (t *accountTx) Update(ctx context.Context, id string, update accountdomain.AccountUpdate) error {
	account, ok := t.state.accounts[id]
	if !ok {
		return accountdomain.ErrAccountNotFound
	}

	if update.Email != nil {
		for otherID, other := range t.state.accounts {
			if otherID != id && other.Email == *update.Email {
				return accountdomain.ErrEmailTaken
			}
		}
		account.Email = *update.Email
	}
	if update.FirstName != nil {
		account.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		account.LastName = *update.LastName
	}
	account.UpdatedAt = time.Now().UTC()
	t.state.accounts[id] = account
	return nil
}

func (t *accountTx) SetPartner(ctx context.Context, id, partnerID string) error {
	account, ok := t.state.accounts[id]
	if !ok {
		return accountdomain.ErrAccountNotFound
	}
	if account.Linked() {
		return accountdomain.ErrPartnerAlreadyLinked
	}

	account.PartnerID = &partnerID
	account.UpdatedAt = time.Now().UTC()
	t.state.accounts[id] = account
	return nil
}

func (t *accountTx) CreateRequest(ctx context.Context, request *accountdomain.ConnectionRequest) error {
	if request.Status == accountdomain.StatusPending {
		if pending, _ := t.FindPendingBetween(ctx, request.SenderID, request.ReceiverID); pending != nil {
			return accountdomain.ErrDuplicateRequest
		}
	}

	now := time.Now().UTC()
	if request.CreatedAt.IsZero() {
		request.CreatedAt = now
	}
	request.UpdatedAt = now
	t.state.requests[request.ID] = *request
	return nil
}

func (t *accountTx) FindRequestByID(ctx context.Context, id string) (*accountdomain.ConnectionRequest, error) {
	request, ok := t.state.requests[id]
	if !ok {
		return nil, accountdomain.ErrRequestNotFound
	}
	return &request, nil
}

func (t *accountTx) FindPendingBetween(ctx context.Context, accountA, accountB string) (*accountdomain.ConnectionRequest, error) {
	for _, request := range t.state.requests {
		if request.Status != accountdomain.StatusPending {
			continue
		}
		if (request.SenderID == accountA && request.ReceiverID == accountB) ||
			(request.SenderID == accountB && request.ReceiverID == accountA) {
			return &request, nil
		}
	}
	return nil, nil
}

func (t *accountTx) TransitionRequest(ctx context.Context, id string, status accountdomain.RequestStatus) error {
	request, ok := t.state.requests[id]
	if !ok {
		return accountdomain.ErrRequestNotFound
	}
	if request.Status != accountdomain.StatusPending {
		return accountdomain.ErrAlreadyProcessed
	}

	request.Status = status
	request.UpdatedAt = time.Now().UTC()
	t.state.requests[id] = request
	return nil
}

func (t *accountTx) ListPendingReceived(ctx context.Context, receiverID string) ([]accountdomain.ConnectionRequest, error) {
	result := make([]accountdomain.ConnectionRequest, 0)
	for _, request := range t.state.requests {
		if request.ReceiverID == receiverID && request.Status == accountdomain.StatusPending {
			result = append(result, request)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func copyAccount(account accountdomain.Account) *accountdomain.Account {
	if account.PartnerID != nil {
		partnerID := *account.PartnerID
		account.PartnerID = &partnerID
	}
	return &account
}
