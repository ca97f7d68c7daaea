package jsonfile

import (
	"context"

	"github.com/rpggio/queuedesk/internal/domain/credential"
	"github.com/rpggio/queuedesk/internal/repository"
)

// CredentialRepository implements credential.Repository over a JSON file
// of {email, password} objects.
type CredentialRepository struct {
	file *File[credential.Credential]
}

// NewCredentialRepository creates a new CredentialRepository backed by path
func NewCredentialRepository(path string) *CredentialRepository {
	return &CredentialRepository{file: NewFile[credential.Credential](path)}
}

// Find scans for the identifier, ignoring case
func (r *CredentialRepository) Find(ctx context.Context, identifier string) (*credential.Credential, error) {
	creds, err := r.file.Load(ctx)
	if err != nil {
		return nil, err
	}
	key := credential.NormalizeIdentifier(identifier)
	for _, c := range creds {
		if credential.NormalizeIdentifier(c.Identifier) == key {
			found := c
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

// Create appends a credential unless the identifier is already present
func (r *CredentialRepository) Create(ctx context.Context, cred *credential.Credential) error {
	key := credential.NormalizeIdentifier(cred.Identifier)
	return r.file.Update(ctx, func(creds []credential.Credential) ([]credential.Credential, error) {
		for _, c := range creds {
			if credential.NormalizeIdentifier(c.Identifier) == key {
				return nil, repository.ErrConflict
			}
		}
		return append(creds, *cred), nil
	})
}
