// Package token converts arbitrary JSON-serializable values into opaque
// compact tokens suitable for a cookie value, and back.
//
// Three token shapes exist, all using the RFC 7515/7516 compact framing with
// unpadded base64url segments:
//
//   - unsecured: header {"alg":"none"}, claims, empty signature. Produced when
//     the secret ring is empty.
//   - signed (ModeSign): JWS HS256. The MAC key is derived from the ring's
//     signing secret with PBKDF2-HMAC-SHA256. Integrity only: anyone can read
//     the claims.
//   - encrypted (ModeEncrypt): JWE with PBES2-HS256+A128KW key wrapping and
//     A256GCM content encryption. Integrity and confidentiality.
//
// The value travels in a "val" claim next to an "iat" (issued-at) claim.
// The empty string is a sentinel for "no value" and bypasses encoding in both
// directions.
//
// # Key rotation
//
// Encode always uses the first secret of the ring. Decode tries every secret
// in order and returns on the first success, so a ring of [new, old] keeps
// accepting tokens issued under old.
//
// # Unsecured fallback
//
// When no secret verifies a token, Decode reads it as an unsecured token and
// returns its claims. Encrypted tokens have five segments and never match
// the unsecured framing, so they fail with ErrDecoding instead. Signed tokens
// do fall through: a forged or tampered signed token decodes successfully.
// Use WithStrictVerification to reject such tokens with ErrVerificationFailed.
//
// # Usage
//
//	ring := secrets.NewRing("current-secret", "previous-secret")
//	codec := token.New(token.WithMode(token.ModeEncrypt))
//
//	tok, err := codec.Encode(map[string]any{"uid": 42}, ring)
//	if err != nil {
//	    return err
//	}
//
//	v, err := codec.Decode(tok, ring) // map[string]any{"uid": float64(42)}
//
// Decoded values use encoding/json generic types.
//
// JWS and JWE handling is provided by github.com/go-jose/go-jose/v4.
package token
