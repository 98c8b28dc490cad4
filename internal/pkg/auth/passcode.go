package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPasscode hashes the admin passcode with bcrypt.
// Used by deployment tooling to produce the configured hash.
func HashPasscode(passcode string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(passcode), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPasscode compares a plaintext passcode against the configured bcrypt hash.
func CheckPasscode(passcode, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(passcode)) == nil
}
