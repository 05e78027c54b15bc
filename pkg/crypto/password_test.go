package crypto

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Password123!")
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)

	assert.True(t, CheckPassword("Password123!", hash))
	assert.False(t, CheckPassword("WrongPass", hash))
}

func TestGenerateInviteCode(t *testing.T) {
	code, err := GenerateInviteCode()
	assert.NoError(t, err)
	assert.Len(t, code, InviteCodeLength)

	for _, r := range code {
		assert.True(t, strings.ContainsRune(inviteCodeAlphabet, r), "unexpected character %q", r)
	}

	// Ambiguous characters are excluded from the alphabet.
	assert.NotContains(t, inviteCodeAlphabet, "0")
	assert.NotContains(t, inviteCodeAlphabet, "O")
	assert.NotContains(t, inviteCodeAlphabet, "1")
	assert.NotContains(t, inviteCodeAlphabet, "I")

	other, err := GenerateInviteCode()
	assert.NoError(t, err)
	assert.NotEqual(t, code, other, "two generated codes should differ")
}

func TestHashPasswordAndGenerateInviteCode_ErrorBranches(t *testing.T) {
	origBcrypt := bcryptGenerateFromPassword
	origRandRead := randomRead
	t.Cleanup(func() {
		bcryptGenerateFromPassword = origBcrypt
		randomRead = origRandRead
	})

	bcryptGenerateFromPassword = func([]byte, int) ([]byte, error) {
		return nil, errors.New("bcrypt failed")
	}
	_, err := HashPassword("Password123!")
	assert.Error(t, err)

	bcryptGenerateFromPassword = origBcrypt
	randomRead = func([]byte) (int, error) {
		return 0, errors.New("rand failed")
	}
	_, err = GenerateInviteCode()
	assert.Error(t, err)
}
