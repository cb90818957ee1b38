package domain

import "github.com/google/uuid"

// Token is a bearer credential bound to a single username. Expired is
// monotonic: once true it never becomes false again.
type Token struct {
	Username string
	Value    string
	Expired  bool
}

// IsTokenFormat reports whether s is a syntactically valid version-4 UUID.
// It is a cheap pre-filter only; authenticity is decided by the ledger.
func IsTokenFormat(s string) bool {
	u, err := uuid.Parse(s)
	if err != nil {
		return false
	}
	return u.Version() == 4 && u.Variant() == uuid.RFC4122
}

// TokenPrefix returns a short, log-safe prefix of a token value.
func TokenPrefix(s string) string {
	if len(s) <= 8 {
		return s
	}
	return s[:8]
}
