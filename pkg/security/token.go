package security

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
)

const oneTimeTokenBytes = 32

// NewOneTimeToken returns a random token for activation/reset links together
// with the SHA-256 digest that is stored at rest. Only the digest ever touches
// the database; the raw token goes out by mail exactly once.
func NewOneTimeToken() (token string, digest string, err error) {
	raw := make([]byte, oneTimeTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", "", fmt.Errorf("generating token: %w", err)
	}
	token = hex.EncodeToString(raw)
	return token, HashToken(token), nil
}

// HashToken returns the hex-encoded SHA-256 digest of a raw token.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// TokenMatches compares a raw token against a stored digest in constant time.
func TokenMatches(token, storedDigest string) bool {
	if token == "" || storedDigest == "" {
		return false
	}
	computed := HashToken(token)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedDigest)) == 1
}
