package token

import (
	"encoding/json"
	"errors"

	"github.com/go-jose/go-jose/v4"

	"github.com/dmitrymomot/sealcookie/pkg/secrets"
)

// Encode turns value into a compact token.
//
// The empty string is returned unchanged. With an empty ring the token is
// unsecured; otherwise the ring's signing secret signs or encrypts it
// depending on the codec mode, and an issued-at claim is added.
// Values that cannot be marshaled to JSON fail with ErrEncoding.
func (c *Codec) Encode(value any, ring secrets.Ring) (string, error) {
	if s, ok := value.(string); ok && s == "" {
		return "", nil
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return "", errors.Join(ErrEncoding, err)
	}

	secret, ok := ring.Signing()
	if !ok {
		payload, err := json.Marshal(claims{Value: raw})
		if err != nil {
			return "", errors.Join(ErrEncoding, err)
		}
		return encodeUnsecured(payload)
	}

	payload, err := json.Marshal(claims{IssuedAt: c.now().Unix(), Value: raw})
	if err != nil {
		return "", errors.Join(ErrEncoding, err)
	}

	if c.mode == ModeEncrypt {
		return c.encrypt(payload, secret)
	}
	return c.sign(payload, secret)
}

func (c *Codec) sign(payload []byte, secret string) (string, error) {
	key, err := c.macKey(secret)
	if err != nil {
		return "", errors.Join(ErrEncoding, err)
	}

	signer, err := jose.NewSigner(
		jose.SigningKey{Algorithm: jose.HS256, Key: key},
		(&jose.SignerOptions{}).WithType(HeaderType),
	)
	if err != nil {
		return "", errors.Join(ErrEncoding, err)
	}

	obj, err := signer.Sign(payload)
	if err != nil {
		return "", errors.Join(ErrEncoding, err)
	}

	return obj.CompactSerialize()
}

func (c *Codec) encrypt(payload []byte, secret string) (string, error) {
	encrypter, err := jose.NewEncrypter(
		jose.A256GCM,
		jose.Recipient{
			Algorithm:  jose.PBES2_HS256_A128KW,
			Key:        []byte(secret),
			PBES2Count: c.pbes2Count,
		},
		(&jose.EncrypterOptions{}).WithType(HeaderType),
	)
	if err != nil {
		return "", errors.Join(ErrEncoding, err)
	}

	obj, err := encrypter.Encrypt(payload)
	if err != nil {
		return "", errors.Join(ErrEncoding, err)
	}

	return obj.CompactSerialize()
}
