package secrets

import "errors"

var (
	ErrKeyDerivationFailed = errors.New("secrets: key derivation failed")
	ErrInvalidKeySize      = errors.New("secrets: invalid key size")
)
