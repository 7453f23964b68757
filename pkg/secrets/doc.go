// Package secrets holds the operator-supplied key material used to sign and
// encrypt cookie tokens.
//
// A Ring is an ordered list of secrets. The first entry is the only one used
// to sign or encrypt new tokens; every entry is accepted when verifying or
// decrypting, which allows secrets to be rotated without invalidating cookies
// that are already in flight. An empty ring is valid and means tokens are
// produced unsecured.
//
// The ring does not judge secret quality. Length and entropy are the
// caller's responsibility; GenerateSecret returns a suitable random value.
//
// # Key derivation
//
// Secrets are passwords, not keys. DeriveKey stretches a secret with
// PBKDF2-HMAC-SHA256 (golang.org/x/crypto/pbkdf2). Derivation is slow on
// purpose, so KeyCache keeps recently derived keys in a bounded LRU and
// zeroes them on eviction.
//
// # Usage
//
//	import "github.com/dmitrymomot/sealcookie/pkg/secrets"
//
//	ring := secrets.ParseRing(os.Getenv("COOKIE_SECRETS")) // "current,previous"
//
//	current, ok := ring.Signing()
//	for _, s := range ring.Verification() {
//	    // try s
//	}
//
// # Error Handling
//
// Key derivation problems wrap ErrKeyDerivationFailed or ErrInvalidKeySize.
// Use errors.Is to match them.
package secrets
