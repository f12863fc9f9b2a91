package account

import "golang.org/x/crypto/bcrypt"

// DefaultPIN is the PIN a freshly created account starts with. Owners are
// expected to replace it immediately.
const DefaultPIN = "0000"

// HashPIN returns a salted one-way hash of the PIN.
func HashPIN(pin string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	return string(bytes), err
}

// VerifyPIN checks a presented PIN against the stored hash. The comparison is
// constant-time. A mismatch returns false, never an error; callers decide
// whether false means a user-facing ErrInvalidPin.
func (a *Account) VerifyPIN(pin string) bool {
	return bcrypt.CompareHashAndPassword([]byte(a.PinHash), []byte(pin)) == nil
}
