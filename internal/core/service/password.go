package service

import (
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt ignores everything past 72 bytes, and recent implementations reject
// longer inputs outright. Passwords are truncated to that limit before both
// hashing and verification so the two sides always see the same prefix.
const maxPasswordBytes = 72

// HashPassword hashes a plaintext password with bcrypt at the default cost.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(truncatePassword(password)), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether password matches the stored bcrypt hash.
// A malformed hash verifies as false rather than erroring.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(truncatePassword(password))) == nil
}

// truncatePassword cuts the password down to maxPasswordBytes without ever
// splitting a multi-byte rune: when the limit lands mid-rune, bytes are
// dropped until the prefix decodes as valid UTF-8 again.
func truncatePassword(password string) string {
	if len(password) <= maxPasswordBytes {
		return password
	}
	truncated := password[:maxPasswordBytes]
	for len(truncated) > 0 && !utf8.ValidString(truncated) {
		truncated = truncated[:len(truncated)-1]
	}
	return truncated
}
