package credential

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rpggio/queuedesk/internal/repository"
)

// Service implements login with auto-enrollment of unseen identifiers.
type Service struct {
	repo   Repository
	hasher SecretHasher
	logger *slog.Logger
}

// NewService creates a new credential service. A nil hasher stores secrets
// in plain text.
func NewService(repo Repository, hasher SecretHasher, logger *slog.Logger) *Service {
	if hasher == nil {
		hasher = PlainHasher{}
	}
	return &Service{repo: repo, hasher: hasher, logger: logger}
}

// RegisterOrLogin authenticates identifier, enrolling it on first use.
// A known identifier with a different secret yields OutcomeRejected and
// ErrRejected.
func (s *Service) RegisterOrLogin(ctx context.Context, identifier, secret string) (Outcome, error) {
	id := NormalizeIdentifier(identifier)
	if id == "" || strings.TrimSpace(secret) == "" {
		return OutcomeRejected, ErrInvalidInput
	}

	outcome, err := s.check(ctx, id, secret)
	if !errors.Is(err, repository.ErrNotFound) {
		return outcome, err
	}

	stored, err := s.hasher.Hash(secret)
	if err != nil {
		return OutcomeRejected, err
	}
	err = s.repo.Create(ctx, &Credential{Identifier: id, Secret: stored})
	if errors.Is(err, repository.ErrConflict) {
		// enrolled concurrently; judge against the winner
		return s.check(ctx, id, secret)
	}
	if err != nil {
		return OutcomeRejected, fmt.Errorf("creating credential: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("identity registered", "identifier", id)
	}
	return OutcomeRegistered, nil
}

func (s *Service) check(ctx context.Context, id, secret string) (Outcome, error) {
	cred, err := s.repo.Find(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return OutcomeRejected, err
		}
		return OutcomeRejected, fmt.Errorf("finding credential: %w", err)
	}
	if !s.hasher.Compare(cred.Secret, secret) {
		if s.logger != nil {
			s.logger.Warn("login rejected", "identifier", id)
		}
		return OutcomeRejected, ErrRejected
	}
	return OutcomeAuthenticated, nil
}
