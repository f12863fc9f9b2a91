package repository

import (
	"context"
	"time"

	"github.com/corebank/ledger/pkg/currency"
	domain "github.com/corebank/ledger/pkg/domain/account"
	"github.com/corebank/ledger/pkg/money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates an account repository over the given session.
func NewAccountRepository(db *gorm.DB) *accountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	var m Account
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, mapGormError(err)
	}
	return hydrate(&m)
}

func (r *accountRepository) GetByNumber(ctx context.Context, number string) (*domain.Account, error) {
	var m Account
	if err := r.db.WithContext(ctx).First(&m, "number = ?", number).Error; err != nil {
		return nil, mapGormError(err)
	}
	return hydrate(&m)
}

func (r *accountRepository) Create(ctx context.Context, a *domain.Account) error {
	m := Account{
		ID:       a.ID,
		UserID:   a.UserID,
		Number:   a.Number,
		Balance:  a.Balance.Amount(),
		Currency: a.Currency().String(),
		PinHash:  a.PinHash,
	}
	return mapGormError(r.db.WithContext(ctx).Create(&m).Error)
}

// ApplyBalanceDelta adds delta to the balance in a single conditional update,
// so the sufficient-funds check and the write are indivisible with respect to
// concurrent deltas on the same row.
func (r *accountRepository) ApplyBalanceDelta(
	ctx context.Context,
	id uuid.UUID,
	delta money.Money,
) (money.Money, error) {
	var row struct {
		Balance  decimal.Decimal
		Currency string
	}
	res := r.db.WithContext(ctx).Raw(
		`UPDATE accounts
		 SET balance = balance + ?, updated_at = ?
		 WHERE id = ? AND balance + ? >= 0
		 RETURNING balance, currency`,
		delta.Amount(), time.Now().UTC(), id, delta.Amount(),
	).Scan(&row)
	if res.Error != nil {
		return money.Money{}, res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&Account{}).
			Where("id = ?", id).Count(&count).Error; err != nil {
			return money.Money{}, err
		}
		if count == 0 {
			return money.Money{}, domain.ErrAccountNotFound
		}
		return money.Money{}, domain.ErrInsufficientFunds
	}
	return money.New(row.Balance, currency.Code(row.Currency))
}

// Save persists mutated non-balance fields. The balance column changes only
// through ApplyBalanceDelta.
func (r *accountRepository) Save(ctx context.Context, a *domain.Account) error {
	res := r.db.WithContext(ctx).Model(&Account{}).Where("id = ?", a.ID).
		Updates(map[string]any{
			"pin_hash":   a.PinHash,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return mapGormError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *accountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&Account{}, "id = ?", id)
	if res.Error != nil {
		return mapGormError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func hydrate(m *Account) (*domain.Account, error) {
	balance, err := money.New(m.Balance, currency.Code(m.Currency))
	if err != nil {
		return nil, err
	}
	return domain.New().
		WithID(m.ID).
		WithUserID(m.UserID).
		WithNumber(m.Number).
		WithBalance(balance).
		WithPinHash(m.PinHash).
		WithCreatedAt(m.CreatedAt).
		WithUpdatedAt(m.UpdatedAt).
		Build()
}
