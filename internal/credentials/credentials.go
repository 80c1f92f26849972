package credentials

import (
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// hashCost is the bcrypt work factor. 10 rounds keeps hashing around
// 50-100ms on current hardware.
const hashCost = 10

// emailPattern accepts local@domain.tld with a TLD of at least two
// characters. Quoted local parts and bracketed IPv4 domains are allowed.
// Purely syntactic; no DNS or MX lookup is performed.
var emailPattern = regexp.MustCompile(`^(([^<>()\[\]\\.,;:\s@"]+(\.[^<>()\[\]\\.,;:\s@"]+)*)|(".+"))@((\[[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\])|(([a-zA-Z\-0-9]+\.)+[a-zA-Z]{2,}))$`)

// ValidEmail reports whether candidate is structurally a valid email
// address. Matching is case-insensitive.
func ValidEmail(candidate string) bool {
	return emailPattern.MatchString(strings.ToLower(candidate))
}

// HashPassword returns a salted one-way hash of the plaintext. A fresh
// random salt is generated on every call and embedded in the returned
// string, so two hashes of the same password differ.
func HashPassword(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), hashCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword reports whether candidate matches the stored hash.
// Any mismatch, including a malformed stored hash, returns false rather
// than an error.
func ComparePassword(candidate, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(candidate)) == nil
}
