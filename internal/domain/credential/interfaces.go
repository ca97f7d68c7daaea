package credential

import "context"

// Repository provides persistence for credentials.
type Repository interface {
	// Find looks up a credential by normalized identifier and returns
	// repository.ErrNotFound when absent.
	Find(ctx context.Context, identifier string) (*Credential, error)
	// Create stores a new credential and returns repository.ErrConflict
	// when the identifier is already taken.
	Create(ctx context.Context, cred *Credential) error
}

// SecretHasher turns secrets into their stored form and compares them.
type SecretHasher interface {
	Hash(secret string) (string, error)
	Compare(stored, secret string) bool
}
