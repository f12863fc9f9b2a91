package fixtures

import (
	"context"
	"errors"
	"testing"

	"github.com/corebank/ledger/pkg/domain/account"
	"github.com/corebank/ledger/pkg/money"
	"github.com/corebank/ledger/pkg/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedAccount(t *testing.T, uow *MemoryUoW, number, balance string) *account.Account {
	t.Helper()
	bal, err := money.NewFromString(balance, "USD")
	require.NoError(t, err)
	a, err := account.New().
		WithUserID(uuid.New()).
		WithNumber(number).
		WithBalance(bal).
		WithPinHash("stub").
		Build()
	require.NoError(t, err)
	require.NoError(t, uow.Do(context.Background(), func(u repository.UnitOfWork) error {
		accounts, err := u.AccountRepository()
		if err != nil {
			return err
		}
		return accounts.Create(context.Background(), a)
	}))
	return a
}

func TestDo_RollsBackOnError(t *testing.T) {
	uow := NewMemoryUoW()
	ctx := context.Background()
	a := seedAccount(t, uow, "ACC-1", "100")
	b := seedAccount(t, uow, "ACC-2", "0")

	boom := errors.New("boom")
	delta, _ := money.NewFromString("40", "USD")
	err := uow.Do(ctx, func(u repository.UnitOfWork) error {
		accounts, _ := u.AccountRepository()
		txs, _ := u.TransactionRepository()
		if _, err := accounts.ApplyBalanceDelta(ctx, a.ID, delta.Negate()); err != nil {
			return err
		}
		if _, err := accounts.ApplyBalanceDelta(ctx, b.ID, delta); err != nil {
			return err
		}
		if err := txs.Append(ctx, account.NewTransaction(
			a.ID, a.UserID, account.TypeTransfer, delta, delta, "")); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	// Neither leg nor the log entry survived the rollback.
	require.NoError(t, uow.Do(ctx, func(u repository.UnitOfWork) error {
		accounts, _ := u.AccountRepository()
		txs, _ := u.TransactionRepository()

		got, err := accounts.Get(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, "100.00 USD", got.Balance.String())

		got, err = accounts.Get(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, "0.00 USD", got.Balance.String())

		log, err := txs.List(ctx, a.ID, repository.ListFilter{})
		require.NoError(t, err)
		assert.Empty(t, log)
		return nil
	}))
}

func TestApplyBalanceDelta_NeverNegative(t *testing.T) {
	uow := NewMemoryUoW()
	ctx := context.Background()
	a := seedAccount(t, uow, "ACC-1", "10")

	delta, _ := money.NewFromString("10.01", "USD")
	err := uow.Do(ctx, func(u repository.UnitOfWork) error {
		accounts, _ := u.AccountRepository()
		_, err := accounts.ApplyBalanceDelta(ctx, a.ID, delta.Negate())
		return err
	})
	assert.ErrorIs(t, err, account.ErrInsufficientFunds)
}

func TestAppend_AssignsMonotonicSequence(t *testing.T) {
	uow := NewMemoryUoW()
	ctx := context.Background()
	a := seedAccount(t, uow, "ACC-1", "0")
	amt, _ := money.NewFromString("1", "USD")

	var first, second *account.Transaction
	require.NoError(t, uow.Do(ctx, func(u repository.UnitOfWork) error {
		txs, _ := u.TransactionRepository()
		first = account.NewTransaction(a.ID, a.UserID, account.TypeDeposit, amt, amt, "")
		if err := txs.Append(ctx, first); err != nil {
			return err
		}
		second = account.NewTransaction(a.ID, a.UserID, account.TypeDeposit, amt, amt, "")
		return txs.Append(ctx, second)
	}))
	assert.Equal(t, int64(1), first.Sequence)
	assert.Equal(t, int64(2), second.Sequence)
}

func TestDelete_CascadesTransactions(t *testing.T) {
	uow := NewMemoryUoW()
	ctx := context.Background()
	a := seedAccount(t, uow, "ACC-1", "0")
	amt, _ := money.NewFromString("1", "USD")

	require.NoError(t, uow.Do(ctx, func(u repository.UnitOfWork) error {
		txs, _ := u.TransactionRepository()
		return txs.Append(ctx, account.NewTransaction(
			a.ID, a.UserID, account.TypeDeposit, amt, amt, ""))
	}))
	require.NoError(t, uow.Do(ctx, func(u repository.UnitOfWork) error {
		accounts, _ := u.AccountRepository()
		return accounts.Delete(ctx, a.ID)
	}))
	require.NoError(t, uow.Do(ctx, func(u repository.UnitOfWork) error {
		txs, _ := u.TransactionRepository()
		log, err := txs.List(ctx, a.ID, repository.ListFilter{})
		require.NoError(t, err)
		assert.Empty(t, log)
		return nil
	}))
}
