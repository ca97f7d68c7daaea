package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rpggio/queuedesk/internal/config"
	"github.com/rpggio/queuedesk/internal/domain/queue"
)

func TestOpenStores(t *testing.T) {
	for _, driver := range []string{"json", "sqlite"} {
		t.Run(driver, func(t *testing.T) {
			dir := t.TempDir()
			cfg := config.Default().Store
			cfg.Driver = driver
			cfg.Dir = filepath.Join(dir, "data")
			cfg.DBPath = filepath.Join(dir, "db", "queuedesk.db")

			st, err := openStores(cfg)
			require.NoError(t, err)
			t.Cleanup(func() { _ = st.Close() })

			svc := queue.NewService(st.queue, nil, nil)
			entry, err := svc.Submit(context.Background(), queue.SubmitRequest{
				Name: "Ann", Age: 30, Category: "Billing", Owner: "a@x.com",
			})
			require.NoError(t, err)
			require.Equal(t, int64(1), entry.Token)

			started, err := svc.Start(context.Background(), entry.Token)
			require.NoError(t, err)

			stored, err := svc.Get(context.Background(), entry.Token)
			require.NoError(t, err)
			require.True(t, entry.EnteredAt.Equal(stored.EnteredAt), "entered %v vs %v", entry.EnteredAt, stored.EnteredAt)
			require.True(t, started.StartedAt.Equal(*stored.StartedAt), "started %v vs %v", started.StartedAt, stored.StartedAt)
		})
	}
}

func TestOpenStores_UnknownDriver(t *testing.T) {
	cfg := config.Default().Store
	cfg.Driver = "redis"

	_, err := openStores(cfg)
	require.Error(t, err)
}

func TestParseLogLevel(t *testing.T) {
	require.Equal(t, "DEBUG", parseLogLevel("debug").String())
	require.Equal(t, "INFO", parseLogLevel("bogus").String())
}
