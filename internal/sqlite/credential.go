package sqlite

import (
	"context"
	"database/sql"

	"github.com/rpggio/queuedesk/internal/domain/credential"
	"github.com/rpggio/queuedesk/internal/repository"
)

// CredentialRepository implements credential.Repository for SQLite
type CredentialRepository struct {
	db *DB
}

// NewCredentialRepository creates a new CredentialRepository
func NewCredentialRepository(db *DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

// Find retrieves a credential, matching the identifier without regard to case
func (r *CredentialRepository) Find(ctx context.Context, identifier string) (*credential.Credential, error) {
	var cred credential.Credential
	err := r.db.QueryRowContext(ctx,
		`SELECT identifier, secret FROM credentials WHERE identifier = ?`,
		credential.NormalizeIdentifier(identifier),
	).Scan(&cred.Identifier, &cred.Secret)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, storageError("find credential", err)
	}
	return &cred, nil
}

// Create stores a new credential
func (r *CredentialRepository) Create(ctx context.Context, cred *credential.Credential) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO credentials (identifier, secret) VALUES (?, ?)`,
		credential.NormalizeIdentifier(cred.Identifier),
		cred.Secret,
	)
	if isUniqueViolation(err) {
		return repository.ErrConflict
	}
	if err != nil {
		return storageError("create credential", err)
	}
	return nil
}
