package account

import "errors"

var (
	// ErrAccountNotFound is returned when an account cannot be found.
	ErrAccountNotFound = errors.New("account not found")

	// ErrTargetNotFound is returned when a transfer's target account number
	// does not resolve to an account.
	ErrTargetNotFound = errors.New("target account not found")

	// ErrTransactionNotFound is returned when a transaction record cannot be
	// found.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrDuplicateAccountNumber is returned when creating an account with an
	// account number that is already taken.
	ErrDuplicateAccountNumber = errors.New("account number already exists")

	// ErrInvalidAmount is returned when a transaction amount is not positive.
	ErrInvalidAmount = errors.New("transaction amount must be positive")

	// ErrInsufficientFunds is returned when an operation would drive an
	// account balance negative.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidPin is returned when a presented PIN does not match the
	// stored hash.
	ErrInvalidPin = errors.New("invalid pin")

	// ErrInvalidPinFormat is returned when a new PIN is not exactly 4 digits.
	ErrInvalidPinFormat = errors.New("pin must be exactly 4 digits")

	// ErrSelfTransfer is returned when a transfer targets its own source
	// account.
	ErrSelfTransfer = errors.New("cannot transfer to the same account")

	// ErrInvalidAccountNumber is returned when an account number is empty or
	// malformed.
	ErrInvalidAccountNumber = errors.New("invalid account number")

	// ErrNilAccount is returned when a nil account is passed to a transfer
	// validation.
	ErrNilAccount = errors.New("nil account")
)
