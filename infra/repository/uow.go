package repository

import (
	"context"

	repo "github.com/corebank/ledger/pkg/repository"
	"gorm.io/gorm"
)

// UoW provides the transaction boundary and repository access in one
// abstraction. All repositories handed out inside Do share the same database
// transaction, so a multi-step mutation commits or rolls back as a unit and
// readers never observe a half-applied transfer.
type UoW struct {
	db *gorm.DB
	tx *gorm.DB
}

// NewUoW creates a unit of work for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{db: db}
}

func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

// Do runs fn in a database transaction, providing a UoW bound to it. Nested
// Do calls join the outer transaction.
func (u *UoW) Do(ctx context.Context, fn func(uow repo.UnitOfWork) error) error {
	if u.tx != nil {
		return fn(u)
	}
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx})
	})
}

// AccountRepository returns the account repository bound to the current
// session.
func (u *UoW) AccountRepository() (repo.AccountRepository, error) {
	return NewAccountRepository(u.session()), nil
}

// TransactionRepository returns the transaction log repository bound to the
// current session.
func (u *UoW) TransactionRepository() (repo.TransactionRepository, error) {
	return NewTransactionRepository(u.session()), nil
}
