package token

import "errors"

var (
	// ErrEncoding is returned when a value cannot be serialized into claims.
	ErrEncoding = errors.New("token: encoding failed")

	// ErrDecoding is returned when a string is not a compact token at all.
	ErrDecoding = errors.New("token: malformed token")

	// ErrVerificationFailed is returned in strict mode when no secret verifies the token.
	ErrVerificationFailed = errors.New("token: verification failed")
)
