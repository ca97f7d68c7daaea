package queue_test

import (
	"testing"

	"github.com/rpggio/queuedesk/internal/domain/queue"
	"github.com/stretchr/testify/require"
)

func TestNext(t *testing.T) {
	tests := []struct {
		from    queue.Status
		event   queue.Event
		want    queue.Status
		wantErr bool
	}{
		{queue.StatusWaiting, queue.EventStart, queue.StatusInProgress, false},
		{queue.StatusWaiting, queue.EventCancel, queue.StatusCancelled, false},
		{queue.StatusInProgress, queue.EventFinish, queue.StatusCompleted, false},
		{queue.StatusWaiting, queue.EventFinish, queue.StatusWaiting, true},
		{queue.StatusInProgress, queue.EventCancel, queue.StatusInProgress, true},
		{queue.StatusInProgress, queue.EventStart, queue.StatusInProgress, true},
		{queue.StatusCompleted, queue.EventStart, queue.StatusCompleted, true},
		{queue.StatusCancelled, queue.EventStart, queue.StatusCancelled, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"/"+string(tt.event), func(t *testing.T) {
			got, err := queue.Next(tt.from, tt.event)
			if tt.wantErr {
				require.ErrorIs(t, err, queue.ErrInvalidTransition)
			} else {
				require.NoError(t, err)
			}
			require.Equal(t, tt.want, got)
		})
	}
}

func TestEventFor_NothingReturnsToWaiting(t *testing.T) {
	for _, from := range queue.Statuses {
		if from == queue.StatusWaiting {
			continue
		}
		_, err := queue.EventFor(from, queue.StatusWaiting)
		require.ErrorIs(t, err, queue.ErrInvalidTransition, "from %s", from)
	}
}

func TestParseStatus(t *testing.T) {
	for in, want := range map[string]queue.Status{
		"Waiting":     queue.StatusWaiting,
		"InProgress":  queue.StatusInProgress,
		"in progress": queue.StatusInProgress,
		"COMPLETED":   queue.StatusCompleted,
		"Canceled":    queue.StatusCancelled,
	} {
		got, err := queue.ParseStatus(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}

	_, err := queue.ParseStatus("Paused")
	require.ErrorIs(t, err, queue.ErrUnknownStatus)
}
