package queue

import "context"

// Repository provides persistence for queue entries.
//
// Append and Update each run as one load-mutate-save critical section, so
// token issue and status changes never race with other writers of the
// same store.
type Repository interface {
	// Append issues the next token (max existing + 1, or 1) and stores the
	// entry returned by build.
	Append(ctx context.Context, build func(token int64) (*Entry, error)) (*Entry, error)
	// Update applies mutate to the entry with the given token and stores the
	// result. It returns repository.ErrNotFound when the token is absent.
	Update(ctx context.Context, token int64, mutate func(*Entry) error) (*Entry, error)
	Get(ctx context.Context, token int64) (*Entry, error)
	List(ctx context.Context, opts ListOptions) ([]Entry, error)
}
