package auth

import (
	"crypto/sha256"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasher_HashAndVerify(t *testing.T) {
	hasher := NewHasher("test-secret")

	tests := []struct {
		name     string
		password string
		attempt  string
		want     bool
	}{
		{
			name:     "correct password verifies",
			password: "password123",
			attempt:  "password123",
			want:     true,
		},
		{
			name:     "wrong password fails",
			password: "password123",
			attempt:  "password124",
			want:     false,
		},
		{
			name:     "empty attempt fails against non-empty password",
			password: "password123",
			attempt:  "",
			want:     false,
		},
		{
			name:     "empty password round-trips",
			password: "",
			attempt:  "",
			want:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stored := hasher.Hash(tt.password)
			assert.Equal(t, tt.want, hasher.Verify(tt.attempt, stored))
		})
	}
}

func TestHasher_HashIsDeterministicPerSecret(t *testing.T) {
	a := NewHasher("secret-a")
	b := NewHasher("secret-b")

	assert.Equal(t, a.Hash("password123"), a.Hash("password123"))
	assert.NotEqual(t, a.Hash("password123"), b.Hash("password123"))
}

// The stored format must stay byte-compatible with existing account rows:
// base64(sha256(password+secret)), standard encoding with padding.
func TestHasher_StoredFormat(t *testing.T) {
	hasher := NewHasher("s3cr3t")

	sum := sha256.Sum256([]byte("hunter2" + "s3cr3t"))
	want := base64.StdEncoding.EncodeToString(sum[:])

	assert.Equal(t, want, hasher.Hash("hunter2"))
}

func TestHasher_VerifyRejectsForeignSecret(t *testing.T) {
	stored := NewHasher("old-secret").Hash("password123")
	assert.False(t, NewHasher("new-secret").Verify("password123", stored))
}
