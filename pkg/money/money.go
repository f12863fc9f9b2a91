// Package money provides a fixed-precision monetary value object.
//
// Invariants:
//   - Amounts are decimal.Decimal values, never floats.
//   - Currency code must be a valid ISO 4217 code (3 uppercase letters).
//   - All arithmetic and comparisons require matching currencies.
package money

import (
	"errors"
	"fmt"

	"github.com/corebank/ledger/pkg/currency"
	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidCurrencyCode is returned when a currency code is malformed.
	ErrInvalidCurrencyCode = errors.New("invalid currency code")
	// ErrCurrencyMismatch is returned when two Money values of different
	// currencies are combined or compared.
	ErrCurrencyMismatch = errors.New("currency mismatch")
	// ErrInvalidAmount is returned when an amount cannot be parsed.
	ErrInvalidAmount = errors.New("invalid amount")
)

// Money represents a monetary value in a specific currency.
type Money struct {
	amount   decimal.Decimal
	currency currency.Code
}

// New creates a Money value with the given amount and currency code.
// The amount is rounded to the currency's decimal places.
func New(amount decimal.Decimal, code currency.Code) (Money, error) {
	if code == "" {
		code = currency.DefaultCurrency
	}
	if !currency.IsValidFormat(string(code)) {
		return Money{}, ErrInvalidCurrencyCode
	}
	meta := currency.Get(code)
	return Money{amount: amount.Round(int32(meta.Decimals)), currency: code}, nil
}

// NewFromString parses a decimal string into a Money value.
func NewFromString(amount string, code currency.Code) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidAmount, amount)
	}
	return New(d, code)
}

// Zero returns a zero Money value in the given currency.
func Zero(code currency.Code) Money {
	m, _ := New(decimal.Zero, code)
	return m
}

// Amount returns the decimal amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the currency code.
func (m Money) Currency() currency.Code {
	return m.currency
}

// IsPositive reports whether the amount is strictly greater than zero.
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// IsNegative reports whether the amount is strictly less than zero.
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// IsSameCurrency reports whether the other Money value has the same currency.
func (m Money) IsSameCurrency(other Money) bool {
	return m.currency == other.currency
}

// Add returns the sum of the two values. Currencies must match.
func (m Money) Add(other Money) (Money, error) {
	if !m.IsSameCurrency(other) {
		return Money{}, ErrCurrencyMismatch
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

// Subtract returns the difference of the two values. Currencies must match.
func (m Money) Subtract(other Money) (Money, error) {
	if !m.IsSameCurrency(other) {
		return Money{}, ErrCurrencyMismatch
	}
	return Money{amount: m.amount.Sub(other.amount), currency: m.currency}, nil
}

// Negate returns the value with the opposite sign.
func (m Money) Negate() Money {
	return Money{amount: m.amount.Neg(), currency: m.currency}
}

// GreaterThan reports whether m is strictly greater than other.
func (m Money) GreaterThan(other Money) (bool, error) {
	if !m.IsSameCurrency(other) {
		return false, ErrCurrencyMismatch
	}
	return m.amount.GreaterThan(other.amount), nil
}

// GreaterThanOrEqual reports whether m is greater than or equal to other.
func (m Money) GreaterThanOrEqual(other Money) (bool, error) {
	if !m.IsSameCurrency(other) {
		return false, ErrCurrencyMismatch
	}
	return m.amount.GreaterThanOrEqual(other.amount), nil
}

// Equals reports whether the two values have the same currency and amount.
func (m Money) Equals(other Money) bool {
	return m.IsSameCurrency(other) && m.amount.Equal(other.amount)
}

// String renders the amount at the currency's precision, e.g. "12.50 USD".
func (m Money) String() string {
	meta := currency.Get(m.currency)
	return m.amount.StringFixed(int32(meta.Decimals)) + " " + m.currency.String()
}
