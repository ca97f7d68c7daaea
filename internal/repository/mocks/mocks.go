package mocks

import (
	"context"

	"github.com/rpggio/queuedesk/internal/domain/credential"
	"github.com/rpggio/queuedesk/internal/domain/queue"
	"github.com/stretchr/testify/mock"
)

// QueueRepository is a mock for queue.Repository.
//
// Append expectations return the token to issue; the build callback is
// invoked with it. Update expectations return the stored entry; the mutate
// callback is applied to a copy of it.
type QueueRepository struct {
	mock.Mock
}

func (m *QueueRepository) Append(ctx context.Context, build func(token int64) (*queue.Entry, error)) (*queue.Entry, error) {
	args := m.Called(ctx, build)
	if err := args.Error(1); err != nil {
		return nil, err
	}
	return build(args.Get(0).(int64))
}

func (m *QueueRepository) Update(ctx context.Context, token int64, mutate func(*queue.Entry) error) (*queue.Entry, error) {
	args := m.Called(ctx, token, mutate)
	if err := args.Error(1); err != nil {
		return nil, err
	}
	stored, ok := args.Get(0).(*queue.Entry)
	if !ok {
		return nil, args.Error(1)
	}
	updated := *stored
	if err := mutate(&updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (m *QueueRepository) Get(ctx context.Context, token int64) (*queue.Entry, error) {
	args := m.Called(ctx, token)
	if entry, ok := args.Get(0).(*queue.Entry); ok {
		return entry, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *QueueRepository) List(ctx context.Context, opts queue.ListOptions) ([]queue.Entry, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]queue.Entry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// CredentialRepository is a mock for credential.Repository.
type CredentialRepository struct {
	mock.Mock
}

func (m *CredentialRepository) Find(ctx context.Context, identifier string) (*credential.Credential, error) {
	args := m.Called(ctx, identifier)
	if cred, ok := args.Get(0).(*credential.Credential); ok {
		return cred, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CredentialRepository) Create(ctx context.Context, cred *credential.Credential) error {
	args := m.Called(ctx, cred)
	return args.Error(0)
}
