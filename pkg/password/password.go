package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultCost bcrypt work factor
	DefaultCost = 12
	// MinLength shortest accepted plain-text password
	MinLength = 8
)

// Cost work factor used by Hash; tests lower it to bcrypt.MinCost
var Cost = DefaultCost

var ErrTooShort = fmt.Errorf("password must be at least %d characters", MinLength)

// Hash bcrypt-hashes a plain-text password
func Hash(plain string) (string, error) {
	if len(plain) < MinLength {
		return "", ErrTooShort
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), Cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

// Verify reports whether plain matches hash
func Verify(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
