package session

import (
	"context"

	"github.com/rpggio/queuedesk/internal/domain/credential"
)

// Authenticator verifies or enrolls an identity.
type Authenticator interface {
	RegisterOrLogin(ctx context.Context, identifier, secret string) (credential.Outcome, error)
}
