package mcp

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rpggio/queuedesk/internal/domain/queue"
	"github.com/rpggio/queuedesk/internal/domain/session"
)

// QueueService defines queue operations needed by MCP.
type QueueService interface {
	Submit(ctx context.Context, req queue.SubmitRequest) (*queue.Entry, error)
	Get(ctx context.Context, token int64) (*queue.Entry, error)
	List(ctx context.Context, opts queue.ListOptions) ([]queue.Entry, error)
	Position(ctx context.Context, token int64) (int, error)
	Stats(ctx context.Context) (queue.Stats, error)
	Transition(ctx context.Context, token int64, target queue.Status) (*queue.Entry, error)
	CallNext(ctx context.Context) (*queue.Entry, error)
	Categories() []string
}

// SessionService defines login session operations needed by MCP.
type SessionService interface {
	Login(ctx context.Context, identifier, secret string) (*session.Session, error)
	Resolve(id string) (*session.Session, error)
	Logout(id string) error
}

// Services contains all domain services needed by MCP.
type Services struct {
	Queue    QueueService
	Sessions SessionService
}

// Config contains server configuration.
type Config struct {
	Services Services
	Version  string
	Logger   *slog.Logger
}

const serverInstructions = `Service counter queue. Call login first; it returns a session_id that
submit_entry, transition_entry and call_next require. Unknown identities are
enrolled on first login. Tokens are issued in arrival order and entries move
Waiting -> In Progress -> Completed, or Waiting -> Cancelled.`

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	version := cfg.Version
	if version == "" {
		version = "0.1.0"
	}
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "queuedesk",
		Version: version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg.Services)

	return server
}
