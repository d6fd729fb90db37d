// Package cryptox holds the credential digest used for storing and comparing
// passwords.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// Digest returns the lowercase hex SHA-256 of plaintext.
//
// The result is deterministic (no salt) so that login can re-digest the
// supplied password and compare it with the stored value by equality.
// It is one-way: nothing in the code base ever needs the plaintext back.
func Digest(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}

// DigestEqual compares two digests in constant time.
func DigestEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
