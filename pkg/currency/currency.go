// Package currency defines the currency codes a ledger account can be
// denominated in, together with per-currency metadata.
package currency

import "regexp"

const (
	// DefaultCurrency is the fallback currency code (USD).
	DefaultCurrency = Code("USD")
	// DefaultDecimals is the default number of decimal places for currencies.
	DefaultDecimals = 2
)

// Code is an ISO 4217 currency code (3 uppercase letters).
type Code string

// String returns the code as a plain string.
func (c Code) String() string {
	return string(c)
}

// Meta holds currency-specific metadata.
type Meta struct {
	Decimals int
	Symbol   string
}

var supported = map[Code]Meta{
	"USD": {Decimals: 2, Symbol: "$"},
	"EUR": {Decimals: 2, Symbol: "€"},
	"GBP": {Decimals: 2, Symbol: "£"},
	"JPY": {Decimals: 0, Symbol: "¥"},
	"NGN": {Decimals: 2, Symbol: "₦"},
	"CAD": {Decimals: 2, Symbol: "C$"},
	"AUD": {Decimals: 2, Symbol: "A$"},
	"CHF": {Decimals: 2, Symbol: "CHF"},
	"INR": {Decimals: 2, Symbol: "₹"},
}

var codeFormat = regexp.MustCompile(`^[A-Z]{3}$`)

// IsValidFormat returns true if the code is a well-formed ISO 4217 currency
// code (3 uppercase letters). It does not check that the code is supported.
func IsValidFormat(code string) bool {
	return codeFormat.MatchString(code)
}

// IsSupported reports whether the code is registered.
func IsSupported(code Code) bool {
	_, ok := supported[code]
	return ok
}

// Get returns the metadata for a registered currency code.
// Unknown but well-formed codes get default metadata.
func Get(code Code) Meta {
	if meta, ok := supported[code]; ok {
		return meta
	}
	return Meta{Decimals: DefaultDecimals}
}
