package token

import (
	"github.com/go-jose/go-jose/v4"

	"github.com/dmitrymomot/sealcookie/pkg/logger"
	"github.com/dmitrymomot/sealcookie/pkg/secrets"
)

// Decode reads a token produced by Encode.
//
// The empty string decodes to the empty string. Secrets are tried in ring
// order and the first one that verifies (or decrypts) the token wins; failed
// attempts are not reported. When every secret fails, or the ring is empty,
// the token is read as unsecured without checking its algorithm, unless the
// codec is strict. ErrDecoding is returned when the token is not a three
// segment compact token by that point.
func (c *Codec) Decode(token string, ring secrets.Ring) (any, error) {
	if token == "" {
		return "", nil
	}

	if !ring.IsEmpty() {
		for i, secret := range ring.Verification() {
			payload, err := c.open(token, secret)
			if err != nil {
				c.logger.Debug("token rejected by secret", logger.SecretIndex(i), logger.Error(err))
				continue
			}
			return decodeClaims(payload)
		}

		if c.strict {
			return nil, ErrVerificationFailed
		}
		c.logger.Debug("no secret verified token, reading it unsecured")
	}

	payload, err := decodeUnsecured(token)
	if err != nil {
		return nil, err
	}
	return decodeClaims(payload)
}

// open verifies or decrypts token with a single secret.
func (c *Codec) open(token, secret string) ([]byte, error) {
	if c.mode == ModeEncrypt {
		obj, err := jose.ParseEncrypted(token,
			[]jose.KeyAlgorithm{jose.PBES2_HS256_A128KW},
			[]jose.ContentEncryption{jose.A256GCM},
		)
		if err != nil {
			return nil, err
		}
		return obj.Decrypt([]byte(secret))
	}

	obj, err := jose.ParseSigned(token, []jose.SignatureAlgorithm{jose.HS256})
	if err != nil {
		return nil, err
	}

	key, err := c.macKey(secret)
	if err != nil {
		return nil, err
	}
	return obj.Verify(key)
}
