package sqlite

import (
	"context"
	"sync"
	"testing"

	"github.com/rpggio/queuedesk/internal/domain/queue"
	"github.com/rpggio/queuedesk/internal/repository"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *queue.Service {
	t.Helper()
	return queue.NewService(NewQueueRepository(NewTestDB(t)), nil, nil)
}

func TestQueueRepository_Submit(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	entry, err := svc.Submit(ctx, queue.SubmitRequest{Name: "Asha", Age: 30, Category: "General Service"})
	require.NoError(t, err)
	require.Equal(t, int64(1), entry.Token)
	require.Equal(t, queue.StatusWaiting, entry.Status)

	stored, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "Asha", stored.Name)
	require.True(t, entry.EnteredAt.Equal(stored.EnteredAt))
	require.Nil(t, stored.StartedAt)
	require.Nil(t, stored.EndedAt)

	second, err := svc.Submit(ctx, queue.SubmitRequest{Name: "Ravi", Age: 61, Category: "Billing"})
	require.NoError(t, err)
	require.Equal(t, int64(2), second.Token)
}

func TestQueueRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.Submit(ctx, queue.SubmitRequest{Name: "Asha", Age: 30, Category: "Billing"})
	require.NoError(t, err)

	started, err := svc.Start(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, started.StartedAt)

	again, err := svc.Start(ctx, 1)
	require.NoError(t, err)
	require.True(t, started.StartedAt.Equal(*again.StartedAt))

	done, err := svc.Finish(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, queue.StatusCompleted, done.Status)
	require.NotNil(t, done.EndedAt)

	stored, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	require.True(t, started.StartedAt.Equal(*stored.StartedAt))
	require.True(t, done.EndedAt.Equal(*stored.EndedAt))

	_, err = svc.Transition(ctx, 1, queue.StatusWaiting)
	require.ErrorIs(t, err, queue.ErrInvalidTransition)

	stored, err = svc.Get(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, queue.StatusCompleted, stored.Status)
}

func TestQueueRepository_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewQueueRepository(NewTestDB(t))

	_, err := repo.Get(ctx, 5)
	require.Equal(t, repository.ErrNotFound, err)

	_, err = repo.Update(ctx, 5, func(*queue.Entry) error { return nil })
	require.Equal(t, repository.ErrNotFound, err)
}

func TestQueueRepository_TokensAfterCancel(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	for i := 0; i < 3; i++ {
		_, err := svc.Submit(ctx, queue.SubmitRequest{Name: "P", Age: 20, Category: "Enquiry"})
		require.NoError(t, err)
	}
	_, err := svc.Cancel(ctx, 3)
	require.NoError(t, err)

	next, err := svc.Submit(ctx, queue.SubmitRequest{Name: "Q", Age: 20, Category: "Enquiry"})
	require.NoError(t, err)
	require.Equal(t, int64(4), next.Token)
}

func TestQueueRepository_ListFilters(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	for _, owner := range []string{"a@x.com", "b@x.com", "a@x.com"} {
		_, err := svc.Submit(ctx, queue.SubmitRequest{Name: "P", Age: 20, Category: "Billing", Owner: owner})
		require.NoError(t, err)
	}
	_, err := svc.Start(ctx, 1)
	require.NoError(t, err)

	waiting, err := svc.ListByStatus(ctx, queue.StatusWaiting)
	require.NoError(t, err)
	require.Len(t, waiting, 2)
	require.Equal(t, int64(2), waiting[0].Token)
	require.Equal(t, int64(3), waiting[1].Token)

	mine, err := svc.List(ctx, queue.ListOptions{Owner: "a@x.com"})
	require.NoError(t, err)
	require.Len(t, mine, 2)

	mixed, err := svc.List(ctx, queue.ListOptions{
		Statuses: []queue.Status{queue.StatusInProgress, queue.StatusWaiting},
		Owner:    "a@x.com",
	})
	require.NoError(t, err)
	require.Len(t, mixed, 2)
	require.Equal(t, int64(1), mixed[0].Token)

	next, err := svc.CallNext(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(2), next.Token)
}

func TestQueueRepository_ConcurrentSubmits(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	const n = 50
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Submit(ctx, queue.SubmitRequest{Name: "Load", Age: 40, Category: "Enquiry"})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	all, err := svc.List(ctx, queue.ListOptions{})
	require.NoError(t, err)
	require.Len(t, all, n)
	for i, e := range all {
		require.Equal(t, int64(i+1), e.Token)
	}
}
