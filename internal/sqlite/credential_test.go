package sqlite

import (
	"context"
	"testing"

	"github.com/rpggio/queuedesk/internal/domain/credential"
	"github.com/rpggio/queuedesk/internal/repository"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestCredentialRepository_CreateFind(t *testing.T) {
	ctx := context.Background()
	repo := NewCredentialRepository(NewTestDB(t))

	require.NoError(t, repo.Create(ctx, &credential.Credential{Identifier: "a@x.com", Secret: "p1"}))

	found, err := repo.Find(ctx, "A@X.COM")
	require.NoError(t, err)
	require.Equal(t, "a@x.com", found.Identifier)
	require.Equal(t, "p1", found.Secret)

	err = repo.Create(ctx, &credential.Credential{Identifier: "A@x.com", Secret: "p2"})
	require.Equal(t, repository.ErrConflict, err)

	_, err = repo.Find(ctx, "nobody@x.com")
	require.Equal(t, repository.ErrNotFound, err)
}

func TestCredentialRepository_SmartLoginWithBcrypt(t *testing.T) {
	ctx := context.Background()
	repo := NewCredentialRepository(NewTestDB(t))
	svc := credential.NewService(repo, credential.BcryptHasher{Cost: bcrypt.MinCost}, nil)

	outcome, err := svc.RegisterOrLogin(ctx, "a@x.com", "p1")
	require.NoError(t, err)
	require.Equal(t, credential.OutcomeRegistered, outcome)

	stored, err := repo.Find(ctx, "a@x.com")
	require.NoError(t, err)
	require.NotEqual(t, "p1", stored.Secret)

	outcome, err = svc.RegisterOrLogin(ctx, "a@x.com", "p1")
	require.NoError(t, err)
	require.Equal(t, credential.OutcomeAuthenticated, outcome)

	_, err = svc.RegisterOrLogin(ctx, "a@x.com", "wrong")
	require.ErrorIs(t, err, credential.ErrRejected)
}
