package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"household-ledger-go/internal/domain/errs"
	ledgerdomain "household-ledger-go/internal/domain/ledger"
)

// Querier is satisfied by *pgxpool.Pool and by pgxmock pools in tests.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

var _ Querier = (*pgxpool.Pool)(nil)

// Amounts and ids cross the wire as text so decimals stay exact.
const entryColumns = `id::text, description, amount::text, paid_by::text, owed_by::text, is_paid, created_at, paid_at,
		installment_group_id::text, installment_index, installment_total, due_date`

const insertEntry = `
		INSERT INTO ledger_entries (id, description, amount, paid_by, owed_by, is_paid, created_at, paid_at,
			installment_group_id, installment_index, installment_total, due_date)
		VALUES ($1, $2, $3::numeric, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

type PostgresRepository struct {
	querier Querier
}

func NewPostgres(querier Querier) *PostgresRepository {
	return &PostgresRepository{querier: querier}
}

func (r *PostgresRepository) Create(ctx context.Context, entry *ledgerdomain.Entry) error {
	if _, err := r.querier.Exec(ctx, insertEntry, insertArgs(entry)...); err != nil {
		return errs.Store("ledger.create", err)
	}
	return nil
}

func (r *PostgresRepository) CreateMany(ctx context.Context, entries []ledgerdomain.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := r.querier.Begin(ctx)
	if err != nil {
		return errs.Store("ledger.create_many", fmt.Errorf("begin: %w", err))
	}

	for i := range entries {
		if _, err := tx.Exec(ctx, insertEntry, insertArgs(&entries[i])...); err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				err = fmt.Errorf("%w (rollback: %v)", err, rbErr)
			}
			return errs.Store("ledger.create_many", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return errs.Store("ledger.create_many", fmt.Errorf("commit: %w", err))
	}
	return nil
}

func (r *PostgresRepository) FindAll(ctx context.Context) ([]ledgerdomain.Entry, error) {
	rows, err := r.querier.Query(ctx, `
		SELECT `+entryColumns+`
		FROM ledger_entries
		ORDER BY created_at DESC, installment_index ASC
	`)
	if err != nil {
		return nil, errs.Store("ledger.find_all", err)
	}
	return collectEntries(rows, "ledger.find_all")
}

func (r *PostgresRepository) FindByAccount(ctx context.Context, accountID string) ([]ledgerdomain.Entry, error) {
	if !validID(accountID) {
		return []ledgerdomain.Entry{}, nil
	}

	rows, err := r.querier.Query(ctx, `
		SELECT `+entryColumns+`
		FROM ledger_entries
		WHERE paid_by = $1 OR owed_by = $1
		ORDER BY created_at DESC, installment_index ASC
	`, accountID)
	if err != nil {
		return nil, errs.Store("ledger.find_by_account", err)
	}
	return collectEntries(rows, "ledger.find_by_account")
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*ledgerdomain.Entry, error) {
	if !validID(id) {
		return nil, ledgerdomain.ErrEntryNotFound
	}

	row := r.querier.QueryRow(ctx, `
		SELECT `+entryColumns+`
		FROM ledger_entries
		WHERE id = $1
	`, id)
	entry, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ledgerdomain.ErrEntryNotFound
		}
		return nil, errs.Store("ledger.find_by_id", err)
	}
	return entry, nil
}

func (r *PostgresRepository) UpdatePaid(ctx context.Context, id string, isPaid bool, paidAt *time.Time) (*ledgerdomain.Entry, error) {
	if !validID(id) {
		return nil, ledgerdomain.ErrEntryNotFound
	}

	row := r.querier.QueryRow(ctx, `
		UPDATE ledger_entries
		SET is_paid = $2, paid_at = $3
		WHERE id = $1
		RETURNING `+entryColumns, id, isPaid, paidAt)
	entry, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ledgerdomain.ErrEntryNotFound
		}
		return nil, errs.Store("ledger.update_paid", err)
	}
	return entry, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return ledgerdomain.ErrEntryNotFound
	}

	tag, err := r.querier.Exec(ctx, `DELETE FROM ledger_entries WHERE id = $1`, id)
	if err != nil {
		return errs.Store("ledger.delete", err)
	}
	if tag.RowsAffected() == 0 {
		return ledgerdomain.ErrEntryNotFound
	}
	return nil
}

func insertArgs(entry *ledgerdomain.Entry) []any {
	var groupID, index, total, dueDate any
	if entry.Installment != nil {
		groupID = entry.Installment.GroupID
		index = entry.Installment.Index
		total = entry.Installment.Total
		dueDate = entry.Installment.DueDate
	}
	var paidAt any
	if entry.PaidAt != nil {
		paidAt = *entry.PaidAt
	}

	return []any{
		entry.ID,
		entry.Description,
		entry.Amount.String(),
		entry.PaidBy,
		entry.OwedBy,
		entry.IsPaid,
		entry.CreatedAt,
		paidAt,
		groupID,
		index,
		total,
		dueDate,
	}
}

func collectEntries(rows pgx.Rows, op string) ([]ledgerdomain.Entry, error) {
	defer rows.Close()

	entries := make([]ledgerdomain.Entry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, errs.Store(op, err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Store(op, err)
	}
	return entries, nil
}

func scanEntry(row pgx.Row) (*ledgerdomain.Entry, error) {
	var (
		entry   ledgerdomain.Entry
		amount  string
		groupID *string
		index   *int32
		total   *int32
		dueDate *time.Time
	)

	if err := row.Scan(
		&entry.ID,
		&entry.Description,
		&amount,
		&entry.PaidBy,
		&entry.OwedBy,
		&entry.IsPaid,
		&entry.CreatedAt,
		&entry.PaidAt,
		&groupID,
		&index,
		&total,
		&dueDate,
	); err != nil {
		return nil, err
	}

	parsed, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("parse amount %q: %w", amount, err)
	}
	entry.Amount = parsed

	if groupID != nil && index != nil && total != nil && dueDate != nil {
		entry.Installment = &ledgerdomain.Installment{
			GroupID: *groupID,
			Index:   int(*index),
			Total:   int(*total),
			DueDate: *dueDate,
		}
	}

	return &entry, nil
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
