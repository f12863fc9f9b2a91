package repository

import (
	"context"
	"errors"
	"time"

	"github.com/corebank/ledger/pkg/currency"
	domain "github.com/corebank/ledger/pkg/domain/account"
	"github.com/corebank/ledger/pkg/money"
	repo "github.com/corebank/ledger/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a transaction log repository over the
// given session.
func NewTransactionRepository(db *gorm.DB) *transactionRepository {
	return &transactionRepository{db: db}
}

// Append inserts the record and reads back its store-assigned sequence. The
// log is append-only; no update or delete path exists here.
func (r *transactionRepository) Append(ctx context.Context, tx *domain.Transaction) error {
	m := Transaction{
		ID:          tx.ID,
		AccountID:   tx.AccountID,
		UserID:      tx.UserID,
		Type:        string(tx.Type),
		Amount:      tx.Amount.Amount(),
		Balance:     tx.Balance.Amount(),
		Currency:    tx.Amount.Currency().String(),
		Description: tx.Description,
		TargetID:    tx.TargetID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return mapGormError(err)
	}
	var seq struct{ Sequence int64 }
	if err := r.db.WithContext(ctx).Model(&Transaction{}).
		Select("sequence").Where("id = ?", m.ID).Scan(&seq).Error; err != nil {
		return err
	}
	tx.Sequence = seq.Sequence
	tx.CreatedAt = m.CreatedAt
	return nil
}

func (r *transactionRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	var m Transaction
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	return hydrateTransaction(&m)
}

func (r *transactionRepository) List(
	ctx context.Context,
	accountID uuid.UUID,
	filter repo.ListFilter,
) ([]*domain.Transaction, error) {
	q := r.db.WithContext(ctx).Where("account_id = ?", accountID)
	if filter.Type != nil {
		q = q.Where("type = ?", string(*filter.Type))
	}
	if filter.Start != nil {
		q = q.Where("created_at >= ?", *filter.Start)
	}
	if filter.End != nil {
		q = q.Where("created_at <= ?", *filter.End)
	}
	var rows []Transaction
	if err := q.Order("sequence asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]*domain.Transaction, 0, len(rows))
	for i := range rows {
		tx, err := hydrateTransaction(&rows[i])
		if err != nil {
			return nil, err
		}
		result = append(result, tx)
	}
	return result, nil
}

func hydrateTransaction(m *Transaction) (*domain.Transaction, error) {
	amount, err := money.New(m.Amount, currency.Code(m.Currency))
	if err != nil {
		return nil, err
	}
	balance, err := money.New(m.Balance, currency.Code(m.Currency))
	if err != nil {
		return nil, err
	}
	return &domain.Transaction{
		ID:          m.ID,
		Sequence:    m.Sequence,
		AccountID:   m.AccountID,
		UserID:      m.UserID,
		Type:        domain.TransactionType(m.Type),
		Amount:      amount,
		Balance:     balance,
		Description: m.Description,
		TargetID:    m.TargetID,
		CreatedAt:   m.CreatedAt,
	}, nil
}
