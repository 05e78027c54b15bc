package crypto

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultCost is the default bcrypt cost
	DefaultCost = 12

	// inviteCodeAlphabet avoids ambiguous characters (0/O, 1/I).
	inviteCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	// InviteCodeLength is the length of generated team invite codes
	InviteCodeLength = 10
)

var (
	bcryptGenerateFromPassword = bcrypt.GenerateFromPassword
	randomRead                 = rand.Read
)

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcryptGenerateFromPassword([]byte(password), DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(bytes), nil
}

// CheckPassword compares a password with a hash
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// GenerateInviteCode generates a random upper-case team invite code.
// Uniqueness among active teams is the caller's responsibility.
func GenerateInviteCode() (string, error) {
	bytes := make([]byte, InviteCodeLength)
	if _, err := randomRead(bytes); err != nil {
		return "", fmt.Errorf("failed to generate invite code: %w", err)
	}
	for i, b := range bytes {
		bytes[i] = inviteCodeAlphabet[int(b)%len(inviteCodeAlphabet)]
	}
	return string(bytes), nil
}
