package queue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/rpggio/queuedesk/internal/repository"
)

// Service issues tokens and drives entries through their lifecycle.
type Service struct {
	repo       Repository
	categories []string
	logger     *slog.Logger
}

// NewService creates a new queue service. An empty category list falls
// back to DefaultCategories.
func NewService(repo Repository, categories []string, logger *slog.Logger) *Service {
	if len(categories) == 0 {
		categories = DefaultCategories
	}
	return &Service{
		repo:       repo,
		categories: slices.Clone(categories),
		logger:     logger,
	}
}

// SubmitRequest describes a person joining the queue.
type SubmitRequest struct {
	Name     string
	Age      int
	Category string
	Notes    string
	Owner    string
}

// Categories returns the configured service categories.
func (s *Service) Categories() []string {
	return slices.Clone(s.categories)
}

// Submit validates the request and appends a Waiting entry with the next token.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (*Entry, error) {
	if err := ValidateSubmitInput(req, s.categories); err != nil {
		return nil, err
	}

	entry, err := s.repo.Append(ctx, func(token int64) (*Entry, error) {
		return &Entry{
			Token:     token,
			Name:      strings.TrimSpace(req.Name),
			Age:       req.Age,
			Category:  req.Category,
			Notes:     req.Notes,
			EnteredAt: now(),
			Status:    StatusWaiting,
			Owner:     req.Owner,
		}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("appending entry: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("entry submitted", "token", entry.Token, "category", entry.Category, "owner", entry.Owner)
	}
	return entry, nil
}

// Get fetches an entry by token.
func (s *Service) Get(ctx context.Context, token int64) (*Entry, error) {
	entry, err := s.repo.Get(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("getting entry: %w", err)
	}
	return entry, nil
}

// ListByStatus returns entries in the given status, oldest first.
func (s *Service) ListByStatus(ctx context.Context, status Status) ([]Entry, error) {
	return s.List(ctx, ListOptions{Statuses: []Status{status}})
}

// List returns entries matching opts, oldest first.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]Entry, error) {
	entries, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	return entries, nil
}

// Position returns the 1-based place of token among waiting entries, or 0
// if the entry is no longer waiting.
func (s *Service) Position(ctx context.Context, token int64) (int, error) {
	entry, err := s.Get(ctx, token)
	if err != nil {
		return 0, err
	}
	if entry.Status != StatusWaiting {
		return 0, nil
	}
	waiting, err := s.ListByStatus(ctx, StatusWaiting)
	if err != nil {
		return 0, err
	}
	for i, w := range waiting {
		if w.Token == token {
			return i + 1, nil
		}
	}
	return 0, nil
}

// Stats counts entries per status.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	entries, err := s.List(ctx, ListOptions{})
	if err != nil {
		return Stats{}, err
	}
	var st Stats
	for _, e := range entries {
		st.Total++
		switch e.Status {
		case StatusWaiting:
			st.Waiting++
		case StatusInProgress:
			st.InProgress++
		case StatusCompleted:
			st.Completed++
		case StatusCancelled:
			st.Cancelled++
		}
	}
	return st, nil
}

// Transition moves an entry to target. Requesting the status the entry is
// already in succeeds without touching its timestamps.
func (s *Service) Transition(ctx context.Context, token int64, target Status) (*Entry, error) {
	return s.transition(ctx, token, target, false)
}

func (s *Service) transition(ctx context.Context, token int64, target Status, strict bool) (*Entry, error) {
	var from Status
	updated, err := s.repo.Update(ctx, token, func(e *Entry) error {
		from = e.Status
		if strict && e.Status == target {
			return ErrInvalidTransition
		}
		return apply(e, target, now())
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEntryNotFound
		}
		if errors.Is(err, ErrInvalidTransition) {
			return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, from, target)
		}
		return nil, fmt.Errorf("updating entry: %w", err)
	}

	if s.logger != nil && from != target {
		s.logger.Info("entry transitioned", "token", token, "from", from, "to", target)
	}
	return updated, nil
}

// Start marks a waiting entry as being served.
func (s *Service) Start(ctx context.Context, token int64) (*Entry, error) {
	return s.Transition(ctx, token, StatusInProgress)
}

// Finish marks an in-progress entry as completed.
func (s *Service) Finish(ctx context.Context, token int64) (*Entry, error) {
	return s.Transition(ctx, token, StatusCompleted)
}

// Cancel withdraws a waiting entry.
func (s *Service) Cancel(ctx context.Context, token int64) (*Entry, error) {
	return s.Transition(ctx, token, StatusCancelled)
}

// CallNext starts the oldest waiting entry. Entries started elsewhere
// since the listing are skipped.
func (s *Service) CallNext(ctx context.Context) (*Entry, error) {
	waiting, err := s.ListByStatus(ctx, StatusWaiting)
	if err != nil {
		return nil, err
	}
	for _, w := range waiting {
		entry, err := s.transition(ctx, w.Token, StatusInProgress, true)
		if errors.Is(err, ErrInvalidTransition) {
			continue
		}
		return entry, err
	}
	return nil, ErrQueueEmpty
}

// now is the wall clock at the whole-second precision of the stored
// timestamp format, so every store driver returns the same values.
func now() time.Time {
	return time.Now().Truncate(time.Second)
}

func apply(e *Entry, target Status, at time.Time) error {
	if e.Status != target {
		ev, err := EventFor(e.Status, target)
		if err != nil {
			return err
		}
		next, err := Next(e.Status, ev)
		if err != nil {
			return err
		}
		e.Status = next
	}

	switch e.Status {
	case StatusInProgress:
		if e.StartedAt == nil {
			e.StartedAt = &at
		}
	case StatusCompleted:
		if e.EndedAt == nil {
			e.EndedAt = &at
		}
	}
	return nil
}
