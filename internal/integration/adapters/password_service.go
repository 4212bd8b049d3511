// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"github.com/expense-tracker/backend/internal/application/adapter"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

const (
	// DefaultBcryptCost is the cost factor used outside tests.
	DefaultBcryptCost = 12
	// minPasswordLength is the minimum required password length.
	minPasswordLength = 8
)

// passwordService implements the adapter.PasswordService interface.
type passwordService struct {
	cost int
}

// NewPasswordService creates a new password service instance.
// A cost outside bcrypt's accepted range falls back to DefaultBcryptCost.
func NewPasswordService(cost int) adapter.PasswordService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &passwordService{cost: cost}
}

// HashPassword hashes a plain text password using bcrypt.
func (s *passwordService) HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// VerifyPassword compares a plain text password with a hashed password.
func (s *passwordService) VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// ValidatePasswordStrength requires at least 8 characters with a letter and a digit.
func (s *passwordService) ValidatePasswordStrength(password string) error {
	if len(password) < minPasswordLength {
		return domainerror.ErrWeakPassword
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return domainerror.ErrWeakPassword
	}
	return nil
}
