// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

// PasswordService hashes and checks user passwords.
type PasswordService interface {
	HashPassword(password string) (string, error)

	// VerifyPassword returns nil when password matches hashedPassword.
	VerifyPassword(hashedPassword, password string) error

	// ValidatePasswordStrength returns domainerror.ErrWeakPassword for passwords that are too weak.
	ValidatePasswordStrength(password string) error
}
