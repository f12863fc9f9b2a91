package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	domain "github.com/corebank/ledger/pkg/domain/account"
	"github.com/corebank/ledger/pkg/money"
	repo "github.com/corebank/ledger/pkg/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	dialector := postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	return db, mock
}

func testAccount(t *testing.T) *domain.Account {
	t.Helper()
	balance, err := money.NewFromString("100", "USD")
	require.NoError(t, err)
	a, err := domain.New().
		WithUserID(uuid.New()).
		WithNumber("ACC-1").
		WithBalance(balance).
		WithPinHash("$2a$10$fakehash").
		Build()
	require.NoError(t, err)
	return a
}

func TestAccountRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	accounts := NewAccountRepository(db)
	a := testAccount(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "accounts" (.+) VALUES (.+)`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, accounts.Create(context.Background(), a))

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "accounts" (.+) VALUES (.+)`).
		WillReturnError(gorm.ErrDuplicatedKey)
	mock.ExpectRollback()

	err := accounts.Create(context.Background(), a)
	assert.ErrorIs(t, err, domain.ErrDuplicateAccountNumber)
}

func TestAccountRepository_Get(t *testing.T) {
	db, mock := newMockDB(t)
	accounts := NewAccountRepository(db)
	id := uuid.New()
	userID := uuid.New()

	rows := sqlmock.NewRows([]string{
		"id", "user_id", "number", "balance", "currency", "pin_hash", "created_at", "updated_at",
	}).AddRow(id, userID, "ACC-1", "100.0000", "USD", "$2a$10$fakehash", time.Now(), time.Now())
	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE id = .+`).WillReturnRows(rows)

	a, err := accounts.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, a.ID)
	assert.Equal(t, "ACC-1", a.Number)
	assert.Equal(t, "100.00 USD", a.Balance.String())

	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE id = .+`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = accounts.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestAccountRepository_ApplyBalanceDelta(t *testing.T) {
	db, mock := newMockDB(t)
	accounts := NewAccountRepository(db)
	id := uuid.New()
	delta, _ := money.NewFromString("40", "USD")

	mock.ExpectQuery(`UPDATE accounts`).
		WillReturnRows(sqlmock.NewRows([]string{"balance", "currency"}).AddRow("140.0000", "USD"))

	newBalance, err := accounts.ApplyBalanceDelta(context.Background(), id, delta)
	require.NoError(t, err)
	assert.Equal(t, "140.00 USD", newBalance.String())
}

func TestAccountRepository_ApplyBalanceDelta_Insufficient(t *testing.T) {
	db, mock := newMockDB(t)
	accounts := NewAccountRepository(db)
	id := uuid.New()
	delta, _ := money.NewFromString("40", "USD")

	// The conditional update matches no row; the account exists, so the
	// delta would have driven the balance negative.
	mock.ExpectQuery(`UPDATE accounts`).
		WillReturnRows(sqlmock.NewRows([]string{"balance", "currency"}))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "accounts"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, err := accounts.ApplyBalanceDelta(context.Background(), id, delta.Negate())
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
}

func TestAccountRepository_ApplyBalanceDelta_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	accounts := NewAccountRepository(db)
	delta, _ := money.NewFromString("40", "USD")

	mock.ExpectQuery(`UPDATE accounts`).
		WillReturnRows(sqlmock.NewRows([]string{"balance", "currency"}))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "accounts"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	_, err := accounts.ApplyBalanceDelta(context.Background(), uuid.New(), delta)
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestAccountRepository_Save(t *testing.T) {
	db, mock := newMockDB(t)
	accounts := NewAccountRepository(db)
	a := testAccount(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "accounts" SET .+ WHERE id = .+`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, accounts.Save(context.Background(), a))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "accounts" SET .+ WHERE id = .+`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := accounts.Save(context.Background(), a)
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestTransactionRepository_Append(t *testing.T) {
	db, mock := newMockDB(t)
	txs := NewTransactionRepository(db)
	amount, _ := money.NewFromString("40", "USD")
	balance, _ := money.NewFromString("140", "USD")
	record := domain.NewTransaction(
		uuid.New(), uuid.New(), domain.TypeDeposit, amount, balance, "payday")

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "transactions" (.+) VALUES (.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"sequence"}).AddRow(7))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT "sequence" FROM "transactions" WHERE id = .+`).
		WillReturnRows(sqlmock.NewRows([]string{"sequence"}).AddRow(7))

	require.NoError(t, txs.Append(context.Background(), record))
	assert.Equal(t, int64(7), record.Sequence)
}

func TestTransactionRepository_List_TypeFilter(t *testing.T) {
	db, mock := newMockDB(t)
	txs := NewTransactionRepository(db)
	accountID := uuid.New()

	deposits := domain.TypeDeposit
	rows := sqlmock.NewRows([]string{
		"id", "sequence", "account_id", "user_id", "type",
		"amount", "balance", "currency", "description", "target_id", "created_at",
	}).
		AddRow(uuid.New(), 1, accountID, uuid.New(), "DEPOSIT",
			"100.0000", "100.0000", "USD", "first", nil, time.Now()).
		AddRow(uuid.New(), 3, accountID, uuid.New(), "DEPOSIT",
			"5.0000", "85.0000", "USD", "third", nil, time.Now())
	mock.ExpectQuery(`SELECT \* FROM "transactions" WHERE account_id = .+ AND type = .+ ORDER BY sequence asc`).
		WillReturnRows(rows)

	result, err := txs.List(context.Background(), accountID, repo.ListFilter{Type: &deposits})
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, domain.TypeDeposit, result[0].Type)
	assert.Equal(t, int64(1), result[0].Sequence)
	assert.Equal(t, "first", result[0].Description)
}

func TestUoW_Do_CommitsAndRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	uow := NewUoW(db)

	mock.ExpectBegin()
	mock.ExpectCommit()
	err := uow.Do(context.Background(), func(u repo.UnitOfWork) error {
		_, err := u.AccountRepository()
		return err
	})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectRollback()
	boom := errors.New("boom")
	err = uow.Do(context.Background(), func(u repo.UnitOfWork) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
}
