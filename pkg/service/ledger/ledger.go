// Package ledger implements the transaction engine: deposits, withdrawals
// and transfers executed as atomic sequences of store operations with
// invariant checks before and after each balance mutation.
//
// Every mutating operation runs under a per-account mutex (per ordered pair
// for transfers) and inside a unit-of-work transaction, so concurrent callers
// never both observe a pre-mutation balance and both commit, and readers see
// either both legs of a transfer or neither.
//
// Callers are assumed to be already authorized for the accounts they name;
// the engine verifies the presented PIN locally but does not re-derive
// ownership or role policy.
package ledger

import (
	"context"
	"errors"
	"log/slog"

	"github.com/corebank/ledger/pkg/domain/account"
	"github.com/corebank/ledger/pkg/money"
	"github.com/corebank/ledger/pkg/repository"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

type newAccountInput struct {
	Number string `validate:"required,min=3,max=32"`
}

type newPinInput struct {
	Pin string `validate:"required,len=4,numeric"`
}

// Service is the transaction engine. All balance mutations in the system go
// through its methods.
type Service struct {
	uow    repository.UnitOfWork
	locks  *lockRegistry
	logger *slog.Logger
}

// NewService creates a transaction engine over the given unit of work.
func NewService(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		uow:    uow,
		locks:  newLockRegistry(),
		logger: logger,
	}
}

// CreateAccount creates an account with the caller-chosen number, a zero
// balance and the hashed default PIN. A taken number fails with
// account.ErrDuplicateAccountNumber.
func (s *Service) CreateAccount(
	ctx context.Context,
	userID uuid.UUID,
	number string,
) (a *account.Account, err error) {
	logger := s.logger.With("userID", userID, "number", number)
	if err = validate.Struct(newAccountInput{Number: number}); err != nil {
		return nil, account.ErrInvalidAccountNumber
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		if _, err := repo.GetByNumber(ctx, number); err == nil {
			return account.ErrDuplicateAccountNumber
		} else if !errors.Is(err, account.ErrAccountNotFound) {
			return err
		}
		a, err = account.New().WithUserID(userID).WithNumber(number).Build()
		if err != nil {
			return err
		}
		return repo.Create(ctx, a)
	})
	if err != nil {
		a = nil
		logger.Error("CreateAccount failed", "error", err)
		return
	}
	logger.Info("CreateAccount successful", "accountID", a.ID)
	return
}

// Deposit adds funds to the account and appends a deposit record. The
// presented PIN must match the account's stored hash.
func (s *Service) Deposit(
	ctx context.Context,
	accountID uuid.UUID,
	amount money.Money,
	pin, description string,
) (tx *account.Transaction, err error) {
	logger := s.logger.With("accountID", accountID, "amount", amount.String())
	if !amount.IsPositive() {
		return nil, account.ErrInvalidAmount
	}
	unlock := s.locks.Lock(accountID)
	defer unlock()

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, txs, err := storeRepos(uow)
		if err != nil {
			return err
		}
		a, err := accounts.Get(ctx, accountID)
		if err != nil {
			return err
		}
		if !a.VerifyPIN(pin) {
			return account.ErrInvalidPin
		}
		if err := a.ValidateCredit(amount); err != nil {
			return err
		}
		newBalance, err := accounts.ApplyBalanceDelta(ctx, accountID, amount)
		if err != nil {
			return err
		}
		tx = account.NewTransaction(
			a.ID, a.UserID, account.TypeDeposit, amount, newBalance, description)
		return txs.Append(ctx, tx)
	})
	if err != nil {
		tx = nil
		logger.Error("Deposit failed", "error", err)
		return
	}
	logger.Info("Deposit successful", "transactionID", tx.ID, "balance", tx.Balance.String())
	return
}

// Withdraw removes funds from the account and appends a withdrawal record.
// A withdrawal that would drive the balance negative fails with
// account.ErrInsufficientFunds and changes nothing.
func (s *Service) Withdraw(
	ctx context.Context,
	accountID uuid.UUID,
	amount money.Money,
	pin, description string,
) (tx *account.Transaction, err error) {
	logger := s.logger.With("accountID", accountID, "amount", amount.String())
	if !amount.IsPositive() {
		return nil, account.ErrInvalidAmount
	}
	unlock := s.locks.Lock(accountID)
	defer unlock()

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, txs, err := storeRepos(uow)
		if err != nil {
			return err
		}
		a, err := accounts.Get(ctx, accountID)
		if err != nil {
			return err
		}
		if !a.VerifyPIN(pin) {
			return account.ErrInvalidPin
		}
		if err := a.ValidateDebit(amount); err != nil {
			return err
		}
		newBalance, err := accounts.ApplyBalanceDelta(ctx, accountID, amount.Negate())
		if err != nil {
			return err
		}
		tx = account.NewTransaction(
			a.ID, a.UserID, account.TypeWithdrawal, amount, newBalance, description)
		return txs.Append(ctx, tx)
	})
	if err != nil {
		tx = nil
		logger.Error("Withdraw failed", "error", err)
		return
	}
	logger.Info("Withdraw successful", "transactionID", tx.ID, "balance", tx.Balance.String())
	return
}

// Transfer moves funds from the source account to the account with the given
// number. Both legs commit together or not at all; a single transfer record
// is appended on the debited account, referencing the credited one.
func (s *Service) Transfer(
	ctx context.Context,
	sourceID uuid.UUID,
	targetNumber string,
	amount money.Money,
	pin, description string,
) (tx *account.Transaction, err error) {
	logger := s.logger.With(
		"sourceID", sourceID, "targetNumber", targetNumber, "amount", amount.String())
	if !amount.IsPositive() {
		return nil, account.ErrInvalidAmount
	}

	// Resolve the target id first; the pair lock needs both ids to fix the
	// acquisition order.
	targetID, err := s.resolveTargetID(ctx, targetNumber)
	if err != nil {
		logger.Error("Transfer failed", "error", err)
		return nil, err
	}
	if targetID == sourceID {
		logger.Error("Transfer failed", "error", account.ErrSelfTransfer)
		return nil, account.ErrSelfTransfer
	}

	unlock := s.locks.LockPair(sourceID, targetID)
	defer unlock()

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, txs, err := storeRepos(uow)
		if err != nil {
			return err
		}
		src, err := accounts.Get(ctx, sourceID)
		if err != nil {
			return err
		}
		if !src.VerifyPIN(pin) {
			return account.ErrInvalidPin
		}
		dst, err := accounts.Get(ctx, targetID)
		if err != nil {
			if errors.Is(err, account.ErrAccountNotFound) {
				return account.ErrTargetNotFound
			}
			return err
		}
		if err := src.ValidateTransfer(dst, amount); err != nil {
			return err
		}
		newBalance, err := accounts.ApplyBalanceDelta(ctx, src.ID, amount.Negate())
		if err != nil {
			return err
		}
		if _, err := accounts.ApplyBalanceDelta(ctx, dst.ID, amount); err != nil {
			return err
		}
		tx = account.NewTransaction(
			src.ID, src.UserID, account.TypeTransfer, amount, newBalance, description).
			WithTarget(dst.ID)
		return txs.Append(ctx, tx)
	})
	if err != nil {
		tx = nil
		logger.Error("Transfer failed", "error", err)
		return
	}
	logger.Info("Transfer successful", "transactionID", tx.ID, "balance", tx.Balance.String())
	return
}

// UpdatePIN replaces the account's stored PIN hash. The new PIN must be
// exactly 4 digits. No re-authentication with the old PIN is required; this
// matches the system the engine replaces and is a known hardening gap.
func (s *Service) UpdatePIN(ctx context.Context, accountID uuid.UUID, newPin string) error {
	logger := s.logger.With("accountID", accountID)
	if err := validate.Struct(newPinInput{Pin: newPin}); err != nil {
		return account.ErrInvalidPinFormat
	}
	unlock := s.locks.Lock(accountID)
	defer unlock()

	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		a, err := accounts.Get(ctx, accountID)
		if err != nil {
			return err
		}
		hash, err := account.HashPIN(newPin)
		if err != nil {
			return err
		}
		a.PinHash = hash
		return accounts.Save(ctx, a)
	})
	if err != nil {
		logger.Error("UpdatePIN failed", "error", err)
		return err
	}
	logger.Info("UpdatePIN successful")
	return nil
}

// DeleteAccount removes an account and, by cascade, its transaction log.
func (s *Service) DeleteAccount(ctx context.Context, accountID uuid.UUID) error {
	logger := s.logger.With("accountID", accountID)
	unlock := s.locks.Lock(accountID)
	defer unlock()

	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		if _, err := accounts.Get(ctx, accountID); err != nil {
			return err
		}
		return accounts.Delete(ctx, accountID)
	})
	if err != nil {
		logger.Error("DeleteAccount failed", "error", err)
		return err
	}
	logger.Info("DeleteAccount successful")
	return nil
}

// resolveTargetID looks up a transfer target by account number.
func (s *Service) resolveTargetID(ctx context.Context, number string) (uuid.UUID, error) {
	var id uuid.UUID
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		a, err := accounts.GetByNumber(ctx, number)
		if err != nil {
			if errors.Is(err, account.ErrAccountNotFound) {
				return account.ErrTargetNotFound
			}
			return err
		}
		id = a.ID
		return nil
	})
	return id, err
}

func storeRepos(uow repository.UnitOfWork) (
	repository.AccountRepository,
	repository.TransactionRepository,
	error,
) {
	accounts, err := uow.AccountRepository()
	if err != nil {
		return nil, nil, err
	}
	txs, err := uow.TransactionRepository()
	if err != nil {
		return nil, nil, err
	}
	return accounts, txs, nil
}
