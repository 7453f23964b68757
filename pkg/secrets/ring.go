package secrets

import (
	"slices"
	"strings"
)

// Ring is an ordered, immutable set of secrets.
// Index 0 signs new tokens, every index verifies.
type Ring struct {
	secrets []string
}

// NewRing returns a ring holding a copy of the given secrets in order.
// Empty strings are kept: the ring performs no validation.
func NewRing(secrets ...string) Ring {
	return Ring{secrets: slices.Clone(secrets)}
}

// ParseRing splits a comma separated list into a ring.
// Entries are trimmed and empty entries are dropped, so "a, ,b" yields [a b].
func ParseRing(csv string) Ring {
	if strings.TrimSpace(csv) == "" {
		return Ring{}
	}

	parts := strings.Split(csv, ",")
	secrets := make([]string, 0, len(parts))
	for _, s := range parts {
		if s = strings.TrimSpace(s); s != "" {
			secrets = append(secrets, s)
		}
	}

	return Ring{secrets: secrets}
}

// Signing returns the secret used for signing and encryption.
func (r Ring) Signing() (string, bool) {
	if len(r.secrets) == 0 {
		return "", false
	}
	return r.secrets[0], true
}

// Verification returns every secret accepted for verification and decryption,
// current secret first. The returned slice is a copy.
func (r Ring) Verification() []string {
	return slices.Clone(r.secrets)
}

func (r Ring) Len() int {
	return len(r.secrets)
}

func (r Ring) IsEmpty() bool {
	return len(r.secrets) == 0
}
