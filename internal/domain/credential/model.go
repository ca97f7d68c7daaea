package credential

import "strings"

// Credential is an identifier and the stored form of its secret.
type Credential struct {
	Identifier string `json:"email"`
	Secret     string `json:"password"`
}

// Outcome reports what RegisterOrLogin did.
type Outcome string

const (
	OutcomeAuthenticated Outcome = "authenticated"
	OutcomeRegistered    Outcome = "registered"
	OutcomeRejected      Outcome = "rejected"
)

// NormalizeIdentifier returns the case-insensitive lookup key for an identifier.
func NormalizeIdentifier(identifier string) string {
	return strings.ToLower(strings.TrimSpace(identifier))
}
