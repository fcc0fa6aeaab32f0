package auth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// sessionTokenBytes is the raw entropy per token. The bearer token is the
// sole credential for a session, so it carries 256 bits of randomness.
const sessionTokenBytes = 32

// GenerateSessionToken returns an opaque, URL-safe session bearer token.
func GenerateSessionToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
