package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rpggio/queuedesk/internal/domain/credential"
)

// Service keeps logged-in sessions in process memory.
type Service struct {
	auth   Authenticator
	ttl    time.Duration
	logger *slog.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewService creates a session service. Sessions idle longer than ttl are
// dropped on their next access or on any later login; a zero ttl keeps them
// until logout.
func NewService(auth Authenticator, ttl time.Duration, logger *slog.Logger) *Service {
	return &Service{
		auth:     auth,
		ttl:      ttl,
		logger:   logger,
		sessions: make(map[string]*Session),
	}
}

// Login authenticates (or enrolls) identifier and opens a session.
func (s *Service) Login(ctx context.Context, identifier, secret string) (*Session, error) {
	outcome, err := s.auth.RegisterOrLogin(ctx, identifier, secret)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	sess := &Session{
		ID:           uuid.NewString(),
		Identity:     credential.NormalizeIdentifier(identifier),
		Outcome:      outcome,
		CreatedAt:    now,
		LastActivity: now,
	}

	s.mu.Lock()
	swept := s.sweepLocked(now)
	s.sessions[sess.ID] = sess
	active := len(s.sessions)
	s.mu.Unlock()

	if s.logger != nil {
		s.logger.Info("session opened", "session_id", sess.ID, "identity", sess.Identity, "outcome", outcome, "active", active, "expired", swept)
	}
	out := *sess
	return &out, nil
}

// Resolve returns the live session for id and refreshes its activity time.
func (s *Service) Resolve(id string) (*Session, error) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if sess.Expired(now, s.ttl) {
		delete(s.sessions, id)
		return nil, ErrSessionNotFound
	}
	sess.LastActivity = now
	out := *sess
	return &out, nil
}

// Logout closes the session.
func (s *Service) Logout(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

// Active returns the number of sessions held, expired or not.
func (s *Service) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// sweepLocked drops expired sessions and reports how many were removed.
func (s *Service) sweepLocked(now time.Time) int {
	removed := 0
	for id, sess := range s.sessions {
		if sess.Expired(now, s.ttl) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}
