package account

import (
	"time"

	"github.com/corebank/ledger/pkg/money"
	"github.com/google/uuid"
)

// TransactionType identifies the kind of balance mutation a record describes.
type TransactionType string

const (
	// TypeDeposit credits an account from an external source.
	TypeDeposit TransactionType = "DEPOSIT"
	// TypeWithdrawal debits an account to an external target.
	TypeWithdrawal TransactionType = "WITHDRAWAL"
	// TypeTransfer moves funds between two accounts. The record lives on the
	// debited account and references the credited one.
	TypeTransfer TransactionType = "TRANSFER"
)

// IsValid reports whether t is one of the known transaction types.
func (t TransactionType) IsValid() bool {
	switch t {
	case TypeDeposit, TypeWithdrawal, TypeTransfer:
		return true
	}
	return false
}

// Transaction is an immutable audit record of a committed balance mutation.
//
// Invariants:
//   - Amount is always positive; the Type says which way the money moved.
//   - Sequence is assigned monotonically by the store at commit time and
//     defines the log's insertion order.
//   - Once appended, a record is never updated or deleted, except via
//     cascading account deletion.
type Transaction struct {
	ID          uuid.UUID
	Sequence    int64
	AccountID   uuid.UUID
	UserID      uuid.UUID
	Type        TransactionType
	Amount      money.Money
	Balance     money.Money // balance snapshot after commit
	Description string
	TargetID    *uuid.UUID // set only for TypeTransfer
	CreatedAt   time.Time
}

// NewTransaction creates an unsequenced transaction record for the given
// account. Sequence and commit timestamp are assigned by the store on append.
func NewTransaction(
	accountID, userID uuid.UUID,
	txType TransactionType,
	amount, balance money.Money,
	description string,
) *Transaction {
	return &Transaction{
		ID:          uuid.New(),
		AccountID:   accountID,
		UserID:      userID,
		Type:        txType,
		Amount:      amount,
		Balance:     balance,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}
}

// WithTarget marks the record as a transfer leg referencing the credited
// account.
func (t *Transaction) WithTarget(targetID uuid.UUID) *Transaction {
	t.TargetID = &targetID
	return t
}
