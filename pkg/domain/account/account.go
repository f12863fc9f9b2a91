// Package account holds the ledger's domain model: the Account aggregate,
// the immutable Transaction record, and the PIN verifier.
package account

import (
	"errors"
	"time"

	"github.com/corebank/ledger/pkg/currency"
	"github.com/corebank/ledger/pkg/money"
	"github.com/google/uuid"
)

// Account represents a bank account, encapsulating its balance and ownership.
//
// Invariants:
//   - An account always has a valid owner (UserID) and a unique Number.
//   - The balance is a Money value object and can never be negative.
//   - The balance changes only through the ledger store's atomic primitives,
//     never by direct assignment outside the engine.
type Account struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Number    string
	Balance   money.Money
	PinHash   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Builder provides a fluent API for constructing Account instances, ensuring
// only valid accounts are built.
type Builder struct {
	id        uuid.UUID
	userID    uuid.UUID
	number    string
	balance   money.Money
	pinHash   string
	currency  currency.Code
	createdAt time.Time
	updatedAt time.Time
}

// New creates a Builder with sensible defaults: a fresh UUID, the default
// currency and a zero balance.
func New() *Builder {
	return &Builder{
		id:        uuid.New(),
		currency:  currency.DefaultCurrency,
		createdAt: time.Now().UTC(),
	}
}

// WithID sets the ID for the account being built.
func (b *Builder) WithID(id uuid.UUID) *Builder {
	b.id = id
	return b
}

// WithUserID sets the owning user. Mandatory.
func (b *Builder) WithUserID(userID uuid.UUID) *Builder {
	b.userID = userID
	return b
}

// WithNumber sets the caller-visible account number. Mandatory.
func (b *Builder) WithNumber(number string) *Builder {
	b.number = number
	return b
}

// WithCurrency sets the account currency. Defaults to the system default.
func (b *Builder) WithCurrency(code currency.Code) *Builder {
	b.currency = code
	return b
}

// WithBalance sets the balance. Only for hydrating an existing account from
// the store or for test setup; new accounts always start at zero.
func (b *Builder) WithBalance(balance money.Money) *Builder {
	b.balance = balance
	return b
}

// WithPinHash sets the stored PIN hash. Only for hydration; new accounts get
// the default PIN hash from Build.
func (b *Builder) WithPinHash(hash string) *Builder {
	b.pinHash = hash
	return b
}

// WithCreatedAt sets the creation timestamp. For hydration only.
func (b *Builder) WithCreatedAt(t time.Time) *Builder {
	b.createdAt = t
	return b
}

// WithUpdatedAt sets the last-updated timestamp. For hydration only.
func (b *Builder) WithUpdatedAt(t time.Time) *Builder {
	b.updatedAt = t
	return b
}

// Build validates all invariants and returns the Account. A new account that
// was not given a PIN hash gets the hashed default PIN.
func (b *Builder) Build() (*Account, error) {
	if b.userID == uuid.Nil {
		return nil, errors.New("userID is required")
	}
	if b.number == "" {
		return nil, ErrInvalidAccountNumber
	}
	if !currency.IsValidFormat(string(b.currency)) {
		return nil, money.ErrInvalidCurrencyCode
	}
	balance := b.balance
	if balance == (money.Money{}) {
		balance = money.Zero(b.currency)
	}
	if balance.IsNegative() {
		return nil, ErrInsufficientFunds
	}
	pinHash := b.pinHash
	if pinHash == "" {
		var err error
		pinHash, err = HashPIN(DefaultPIN)
		if err != nil {
			return nil, err
		}
	}
	return &Account{
		ID:        b.id,
		UserID:    b.userID,
		Number:    b.number,
		Balance:   balance,
		PinHash:   pinHash,
		CreatedAt: b.createdAt,
		UpdatedAt: b.updatedAt,
	}, nil
}

// Currency returns the account's currency code.
func (a *Account) Currency() currency.Code {
	return a.Balance.Currency()
}

// ValidateDebit checks that the amount is positive, currency-compatible and
// covered by the current balance. It does not mutate the balance; the store's
// atomic delta primitive re-checks under its own serialization.
func (a *Account) ValidateDebit(amount money.Money) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if !a.Balance.IsSameCurrency(amount) {
		return money.ErrCurrencyMismatch
	}
	ok, err := a.Balance.GreaterThanOrEqual(amount)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInsufficientFunds
	}
	return nil
}

// ValidateCredit checks that the amount is positive and currency-compatible.
func (a *Account) ValidateCredit(amount money.Money) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if !a.Balance.IsSameCurrency(amount) {
		return money.ErrCurrencyMismatch
	}
	return nil
}

// ValidateTransfer checks a transfer from this account to dest.
func (a *Account) ValidateTransfer(dest *Account, amount money.Money) error {
	if a == nil || dest == nil {
		return ErrNilAccount
	}
	if a.ID == dest.ID {
		return ErrSelfTransfer
	}
	if err := a.ValidateDebit(amount); err != nil {
		return err
	}
	return dest.ValidateCredit(amount)
}
