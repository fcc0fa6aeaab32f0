package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
)

// Hasher derives password digests using a process-wide secret as a global
// salt. The scheme is a single SHA-256 over password+secret with no per-user
// salt and no KDF cost; it must stay byte-compatible with hashes already in
// the accounts table, so any change here requires a migration.
type Hasher struct {
	secret string
}

// NewHasher creates a Hasher bound to the given secret. The secret is loaded
// once at startup and must never be logged.
func NewHasher(secret string) *Hasher {
	return &Hasher{secret: secret}
}

// Hash returns the base64-encoded SHA-256 digest of password+secret.
func (h *Hasher) Hash(password string) string {
	sum := sha256.Sum256([]byte(password + h.secret))
	return base64.StdEncoding.EncodeToString(sum[:])
}

// Verify reports whether password hashes to stored. A wrong password is a
// false return, never an error.
func (h *Hasher) Verify(password, stored string) bool {
	computed := h.Hash(password)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(stored)) == 1
}
