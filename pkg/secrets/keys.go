package secrets

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// KeySize is the size of derived keys: 256 bits, matching HMAC-SHA256.
	KeySize = 32

	// secretEntropy is the number of random bytes behind GenerateSecret.
	secretEntropy = 32
)

// DeriveKey stretches secret into a key of size bytes using PBKDF2-HMAC-SHA256.
// The same inputs always produce the same key.
func DeriveKey(secret string, salt []byte, iterations, size int) ([]byte, error) {
	if size <= 0 {
		return nil, ErrInvalidKeySize
	}
	if iterations <= 0 {
		return nil, errors.Join(ErrKeyDerivationFailed, errors.New("iteration count must be positive"))
	}

	return pbkdf2.Key([]byte(secret), salt, iterations, size, sha256.New), nil
}

// GenerateSecret returns a random, base64url encoded secret suitable for a ring.
func GenerateSecret() (string, error) {
	b := make([]byte, secretEntropy)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrKeyDerivationFailed, err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// clearBytes zeroes key material that is no longer referenced.
func clearBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
