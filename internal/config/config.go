package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Transport TransportConfig `yaml:"transport"`
	Store     StoreConfig     `yaml:"store"`
	Queue     QueueConfig     `yaml:"queue"`
	Auth      AuthConfig      `yaml:"auth"`
	Log       LogConfig       `yaml:"log"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`

	// APIToken, when set, is required as a bearer token in http mode.
	APIToken string `yaml:"api_token"`
}

type TransportConfig struct {
	Mode string `yaml:"mode"`
}

// StoreConfig selects the persistence driver. The json driver keeps
// QueueFile and UsersFile under Dir; the sqlite driver uses DBPath.
type StoreConfig struct {
	Driver    string `yaml:"driver"`
	Dir       string `yaml:"dir"`
	QueueFile string `yaml:"queue_file"`
	UsersFile string `yaml:"users_file"`
	DBPath    string `yaml:"db_path"`
}

type QueueConfig struct {
	Categories []string `yaml:"categories"`
}

type AuthConfig struct {
	SecretHashing string        `yaml:"secret_hashing"`
	SessionTTL    time.Duration `yaml:"session_ttl"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// QueuePath returns the JSON queue store location.
func (c StoreConfig) QueuePath() string {
	return filepath.Join(c.Dir, c.QueueFile)
}

// UsersPath returns the JSON credential store location.
func (c StoreConfig) UsersPath() string {
	return filepath.Join(c.Dir, c.UsersFile)
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Transport: TransportConfig{
			Mode: "stdio",
		},
		Store: StoreConfig{
			Driver:    "json",
			Dir:       ".",
			QueueFile: "queue_data.json",
			UsersFile: "users.json",
			DBPath:    "queuedesk.db",
		},
		Auth: AuthConfig{
			SecretHashing: "plain",
			SessionTTL:    12 * time.Hour,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("QUEUEDESK_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("QUEUEDESK_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("QUEUEDESK_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid QUEUEDESK_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if token := os.Getenv("QUEUEDESK_API_TOKEN"); token != "" {
		cfg.Server.APIToken = token
	}
	if mode := os.Getenv("QUEUEDESK_TRANSPORT"); mode != "" {
		cfg.Transport.Mode = mode
	}
	if driver := os.Getenv("QUEUEDESK_STORE_DRIVER"); driver != "" {
		cfg.Store.Driver = driver
	}
	if dir := os.Getenv("QUEUEDESK_STORE_DIR"); dir != "" {
		cfg.Store.Dir = dir
	}
	if dbPath := os.Getenv("QUEUEDESK_DB_PATH"); dbPath != "" {
		cfg.Store.DBPath = dbPath
	}
	if hashing := os.Getenv("QUEUEDESK_SECRET_HASHING"); hashing != "" {
		cfg.Auth.SecretHashing = hashing
	}
	if ttl := os.Getenv("QUEUEDESK_SESSION_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return Config{}, fmt.Errorf("invalid QUEUEDESK_SESSION_TTL: %w", err)
		}
		cfg.Auth.SessionTTL = d
	}
	if categories := os.Getenv("QUEUEDESK_CATEGORIES"); categories != "" {
		cfg.Queue.Categories = splitList(categories)
	}
	if level := os.Getenv("QUEUEDESK_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings no component can honor.
func (c Config) Validate() error {
	switch c.Transport.Mode {
	case "stdio", "http":
	default:
		return fmt.Errorf("invalid transport mode %q", c.Transport.Mode)
	}
	switch c.Store.Driver {
	case "json":
		if c.Store.QueueFile == "" || c.Store.UsersFile == "" {
			return fmt.Errorf("json store requires queue_file and users_file")
		}
	case "sqlite":
		if c.Store.DBPath == "" {
			return fmt.Errorf("sqlite store requires db_path")
		}
	default:
		return fmt.Errorf("invalid store driver %q", c.Store.Driver)
	}
	switch c.Auth.SecretHashing {
	case "plain", "bcrypt":
	default:
		return fmt.Errorf("invalid secret hashing %q", c.Auth.SecretHashing)
	}
	if c.Auth.SessionTTL < 0 {
		return fmt.Errorf("session ttl must not be negative")
	}
	return nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
