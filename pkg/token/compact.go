package token

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
)

const (
	// HeaderType is the typ header of every token this package produces.
	HeaderType = "JWT"

	// AlgorithmNone marks unsecured tokens.
	AlgorithmNone = "none"

	segmentSeparator = "."

	// maxExactInteger is the largest magnitude a float64 holds without rounding.
	maxExactInteger = 1 << 53
)

type header struct {
	Algorithm string `json:"alg"`
	Type      string `json:"typ,omitempty"`
}

// claims is the token payload. The caller's value is nested under "val" so
// any JSON value round-trips and never collides with registered claims.
type claims struct {
	IssuedAt int64           `json:"iat,omitempty"`
	Value    json.RawMessage `json:"val,omitempty"`
}

// encodeUnsecured builds base64url(header).base64url(payload). with an empty
// signature segment, the unsecured JWT form of RFC 7519 section 6.
func encodeUnsecured(payload []byte) (string, error) {
	headerJSON, err := json.Marshal(header{Algorithm: AlgorithmNone, Type: HeaderType})
	if err != nil {
		return "", errors.Join(ErrEncoding, err)
	}

	return base64.RawURLEncoding.EncodeToString(headerJSON) +
		segmentSeparator +
		base64.RawURLEncoding.EncodeToString(payload) +
		segmentSeparator, nil
}

// decodeUnsecured returns the payload segment of a three segment token.
// The algorithm is not checked and any signature segment is ignored.
func decodeUnsecured(token string) ([]byte, error) {
	parts := strings.Split(token, segmentSeparator)
	if len(parts) != 3 {
		return nil, ErrDecoding
	}

	headerJSON, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, errors.Join(ErrDecoding, err)
	}

	var h header
	if err := json.Unmarshal(headerJSON, &h); err != nil {
		return nil, errors.Join(ErrDecoding, err)
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, errors.Join(ErrDecoding, err)
	}

	return payload, nil
}

// decodeClaims extracts the value claim. A payload without one decodes to nil.
func decodeClaims(payload []byte) (any, error) {
	var c claims
	if err := json.Unmarshal(payload, &c); err != nil {
		return nil, errors.Join(ErrDecoding, err)
	}
	if len(c.Value) == 0 {
		return nil, nil
	}

	return UnmarshalValue(c.Value)
}

// UnmarshalValue decodes a JSON value the way Decode returns it: numbers are
// float64 unless a float64 would round them (see normalizeNumbers).
func UnmarshalValue(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, errors.Join(ErrDecoding, err)
	}

	return normalizeNumbers(value), nil
}

// normalizeNumbers turns json.Number into float64, except integers a float64
// would round: those become int64, or stay json.Number beyond the int64 range.
func normalizeNumbers(v any) any {
	switch t := v.(type) {
	case json.Number:
		return normalizeNumber(t)
	case map[string]any:
		for k, e := range t {
			t[k] = normalizeNumbers(e)
		}
		return t
	case []any:
		for i, e := range t {
			t[i] = normalizeNumbers(e)
		}
		return t
	default:
		return v
	}
}

func normalizeNumber(n json.Number) any {
	if i, err := n.Int64(); err == nil {
		if i > maxExactInteger || i < -maxExactInteger {
			return i
		}
		return float64(i)
	}

	if !strings.ContainsAny(n.String(), ".eE") {
		return n
	}

	f, err := n.Float64()
	if err != nil {
		return n
	}
	return f
}
