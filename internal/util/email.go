package util

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// IsEmailAddress reports whether the text looks like a plain email address.
func IsEmailAddress(text string) bool {
	return emailPattern.MatchString(strings.TrimSpace(text))
}

// NormalizeEmail trims surrounding whitespace and lowercases the address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// HashEmail returns the hex SHA-256 digest of the normalized address. The ad
// platform matches on this digest; the raw address must never leave the process.
func HashEmail(email string) string {
	sum := sha256.Sum256([]byte(NormalizeEmail(email)))
	return hex.EncodeToString(sum[:])
}
