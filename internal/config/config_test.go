package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "json", cfg.Store.Driver)
	require.Equal(t, "stdio", cfg.Transport.Mode)
	require.Equal(t, filepath.Join(".", "queue_data.json"), cfg.Store.QueuePath())
	require.Equal(t, "plain", cfg.Auth.SecretHashing)
	require.Empty(t, cfg.Queue.Categories)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("QUEUEDESK_SERVER_PORT", "9090")
	t.Setenv("QUEUEDESK_STORE_DRIVER", "sqlite")
	t.Setenv("QUEUEDESK_DB_PATH", "/tmp/q.db")
	t.Setenv("QUEUEDESK_TRANSPORT", "http")
	t.Setenv("QUEUEDESK_CATEGORIES", "Billing, Pharmacy ,,Lab")
	t.Setenv("QUEUEDESK_SESSION_TTL", "30m")
	t.Setenv("QUEUEDESK_API_TOKEN", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, "sqlite", cfg.Store.Driver)
	require.Equal(t, "/tmp/q.db", cfg.Store.DBPath)
	require.Equal(t, "http", cfg.Transport.Mode)
	require.Equal(t, []string{"Billing", "Pharmacy", "Lab"}, cfg.Queue.Categories)
	require.Equal(t, 30*time.Minute, cfg.Auth.SessionTTL)
	require.Equal(t, "s3cret", cfg.Server.APIToken)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "queuedesk.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
store:
  dir: /var/lib/queuedesk
queue:
  categories: [General Service, Billing]
auth:
  secret_hashing: bcrypt
log:
  level: debug
`), 0o644))
	t.Setenv("QUEUEDESK_CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "/var/lib/queuedesk/users.json", cfg.Store.UsersPath())
	require.Equal(t, []string{"General Service", "Billing"}, cfg.Queue.Categories)
	require.Equal(t, "bcrypt", cfg.Auth.SecretHashing)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("QUEUEDESK_SERVER_PORT", "eighty")
	_, err := Load()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.Store.Driver = "redis"
	require.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Transport.Mode = "grpc"
	require.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Auth.SecretHashing = "md5"
	require.Error(t, cfg.Validate())
}
