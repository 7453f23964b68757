package token

// Mode selects how secured tokens are produced.
type Mode int

const (
	// ModeSign produces JWS tokens: integrity only, the payload stays readable.
	ModeSign Mode = iota
	// ModeEncrypt produces JWE tokens: integrity and confidentiality.
	ModeEncrypt
)

func (m Mode) String() string {
	switch m {
	case ModeSign:
		return "sign"
	case ModeEncrypt:
		return "encrypt"
	default:
		return "unknown"
	}
}
