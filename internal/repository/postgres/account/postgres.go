package account

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	accountdomain "household-ledger-go/internal/domain/account"
	"household-ledger-go/internal/domain/errs"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(accountdomain.Repository) error) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
	return errs.Store("account.transaction", err)
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*accountdomain.Account, error) {
	if !validID(id) {
		return nil, accountdomain.ErrAccountNotFound
	}

	var account accountdomain.Account
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, accountdomain.ErrAccountNotFound
		}
		return nil, errs.Store("account.find_by_id", err)
	}
	return &account, nil
}

func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (*accountdomain.Account, error) {
	var account accountdomain.Account
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, accountdomain.ErrAccountNotFound
		}
		return nil, errs.Store("account.find_by_email", err)
	}
	return &account, nil
}

func (r *PostgresRepository) Create(ctx context.Context, account *accountdomain.Account) error {
	if err := r.db.WithContext(ctx).Create(account).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return accountdomain.ErrEmailTaken
		}
		return errs.Store("account.create", err)
	}
	return nil
}

func (r *PostgresRepository) Update(ctx context.Context, id string, update accountdomain.AccountUpdate) error {
	if !validID(id) {
		return accountdomain.ErrAccountNotFound
	}

	columns := map[string]any{"updated_at": time.Now().UTC()}
	if update.FirstName != nil {
		columns["first_name"] = *update.FirstName
	}
	if update.LastName != nil {
		columns["last_name"] = *update.LastName
	}
	if update.Email != nil {
		columns["email"] = *update.Email
	}

	result := r.db.WithContext(ctx).Model(&accountdomain.Account{}).Where("id = ?", id).Updates(columns)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return accountdomain.ErrEmailTaken
		}
		return errs.Store("account.update", result.Error)
	}
	if result.RowsAffected == 0 {
		return accountdomain.ErrAccountNotFound
	}
	return nil
}

func (r *PostgresRepository) SetPartner(ctx context.Context, id, partnerID string) error {
	if !validID(id) || !validID(partnerID) {
		return accountdomain.ErrAccountNotFound
	}

	result := r.db.WithContext(ctx).
		Model(&accountdomain.Account{}).
		Where("id = ? AND partner_id IS NULL", id).
		Updates(map[string]any{"partner_id": partnerID, "updated_at": time.Now().UTC()})
	if result.Error != nil {
		return errs.Store("account.set_partner", result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	if _, err := r.FindByID(ctx, id); err != nil {
		return err
	}
	return accountdomain.ErrPartnerAlreadyLinked
}

func (r *PostgresRepository) CreateRequest(ctx context.Context, request *accountdomain.ConnectionRequest) error {
	if err := r.db.WithContext(ctx).Create(request).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return accountdomain.ErrDuplicateRequest
		}
		return errs.Store("account.create_request", err)
	}
	return nil
}

func (r *PostgresRepository) FindRequestByID(ctx context.Context, id string) (*accountdomain.ConnectionRequest, error) {
	if !validID(id) {
		return nil, accountdomain.ErrRequestNotFound
	}

	var request accountdomain.ConnectionRequest
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&request).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, accountdomain.ErrRequestNotFound
		}
		return nil, errs.Store("account.find_request", err)
	}
	return &request, nil
}

func (r *PostgresRepository) FindPendingBetween(ctx context.Context, accountA, accountB string) (*accountdomain.ConnectionRequest, error) {
	var requests []accountdomain.ConnectionRequest
	if err := r.db.WithContext(ctx).
		Where("status = ?", accountdomain.StatusPending).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)", accountA, accountB, accountB, accountA).
		Limit(1).
		Find(&requests).Error; err != nil {
		return nil, errs.Store("account.find_pending", err)
	}
	if len(requests) == 0 {
		return nil, nil
	}
	return &requests[0], nil
}

func (r *PostgresRepository) TransitionRequest(ctx context.Context, id string, status accountdomain.RequestStatus) error {
	result := r.db.WithContext(ctx).
		Model(&accountdomain.ConnectionRequest{}).
		Where("id = ? AND status = ?", id, accountdomain.StatusPending).
		Updates(map[string]any{"status": status, "updated_at": time.Now().UTC()})
	if result.Error != nil {
		return errs.Store("account.transition_request", result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	if _, err := r.FindRequestByID(ctx, id); err != nil {
		return err
	}
	return accountdomain.ErrAlreadyProcessed
}

func (r *PostgresRepository) ListPendingReceived(ctx context.Context, receiverID string) ([]accountdomain.ConnectionRequest, error) {
	requests := make([]accountdomain.ConnectionRequest, 0)
	if !validID(receiverID) {
		return requests, nil
	}
	if err := r.db.WithContext(ctx).
		Where("receiver_id = ? AND status = ?", receiverID, accountdomain.StatusPending).
		Order("created_at desc").
		Find(&requests).Error; err != nil {
		return nil, errs.Store("account.list_pending", err)
	}
	return requests, nil
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
