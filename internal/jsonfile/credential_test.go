package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rpggio/queuedesk/internal/domain/credential"
	"github.com/rpggio/queuedesk/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestCredentialRepository_SmartLogin(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "users.json")
	svc := credential.NewService(NewCredentialRepository(path), nil, nil)

	outcome, err := svc.RegisterOrLogin(ctx, "a@x.com", "p1")
	require.NoError(t, err)
	require.Equal(t, credential.OutcomeRegistered, outcome)

	outcome, err = svc.RegisterOrLogin(ctx, "a@x.com", "p1")
	require.NoError(t, err)
	require.Equal(t, credential.OutcomeAuthenticated, outcome)

	outcome, err = svc.RegisterOrLogin(ctx, "A@X.COM", "wrong")
	require.ErrorIs(t, err, credential.ErrRejected)
	require.Equal(t, credential.OutcomeRejected, outcome)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.JSONEq(t, `[{"email": "a@x.com", "password": "p1"}]`, string(data))
}

func TestCredentialRepository_CaseInsensitiveConflict(t *testing.T) {
	ctx := context.Background()
	repo := NewCredentialRepository(filepath.Join(t.TempDir(), "users.json"))

	require.NoError(t, repo.Create(ctx, &credential.Credential{Identifier: "a@x.com", Secret: "p1"}))
	err := repo.Create(ctx, &credential.Credential{Identifier: "A@x.com", Secret: "p2"})
	require.ErrorIs(t, err, repository.ErrConflict)

	found, err := repo.Find(ctx, "A@X.com")
	require.NoError(t, err)
	require.Equal(t, "p1", found.Secret)

	_, err = repo.Find(ctx, "b@x.com")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCredentialRepository_ReadsLegacyMixedCase(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "users.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"email": "Staff@Clinic.org", "password": "s3"}]`), 0o644))

	svc := credential.NewService(NewCredentialRepository(path), nil, nil)
	outcome, err := svc.RegisterOrLogin(ctx, "staff@clinic.org", "s3")
	require.NoError(t, err)
	require.Equal(t, credential.OutcomeAuthenticated, outcome)
}
