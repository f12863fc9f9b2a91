// Package repository defines the ledger store contracts: data access
// interfaces and the unit of work that brackets atomic mutations.
package repository

import (
	"context"
	"time"

	"github.com/corebank/ledger/pkg/domain/account"
	"github.com/corebank/ledger/pkg/money"
	"github.com/google/uuid"
)

// ListFilter narrows a transaction history query. Nil fields are ignored;
// set fields combine with AND semantics.
type ListFilter struct {
	Type  *account.TransactionType
	Start *time.Time
	End   *time.Time
}

// AccountRepository defines account data access.
type AccountRepository interface {
	// Get returns the account with the given id, or
	// account.ErrAccountNotFound.
	Get(ctx context.Context, id uuid.UUID) (*account.Account, error)

	// GetByNumber resolves an account by its caller-visible number, or
	// returns account.ErrAccountNotFound.
	GetByNumber(ctx context.Context, number string) (*account.Account, error)

	// Create persists a new account. A taken account number yields
	// account.ErrDuplicateAccountNumber.
	Create(ctx context.Context, a *account.Account) error

	// ApplyBalanceDelta atomically adds delta to the account balance and
	// returns the new balance. The read-check-write is indivisible with
	// respect to other deltas on the same account; a delta that would drive
	// the balance negative fails with account.ErrInsufficientFunds and
	// leaves the balance untouched.
	ApplyBalanceDelta(ctx context.Context, id uuid.UUID, delta money.Money) (money.Money, error)

	// Save persists mutated non-balance fields (PIN hash) for an account
	// already held under the caller's mutation scope.
	Save(ctx context.Context, a *account.Account) error

	// Delete removes the account and, by cascade, its transaction log.
	Delete(ctx context.Context, id uuid.UUID) error
}

// TransactionRepository defines access to the append-only transaction log.
type TransactionRepository interface {
	// Append adds a record to the log, assigning its monotonic sequence.
	// Records are never overwritten.
	Append(ctx context.Context, tx *account.Transaction) error

	// Get returns a single record by id.
	Get(ctx context.Context, id uuid.UUID) (*account.Transaction, error)

	// List returns the account's records matching the filter, in insertion
	// order. No matches means an empty slice, not an error.
	List(ctx context.Context, accountID uuid.UUID, filter ListFilter) ([]*account.Transaction, error)
}
