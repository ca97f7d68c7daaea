package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rpggio/queuedesk/internal/domain/queue"
	"github.com/rpggio/queuedesk/internal/domain/session"
)

func registerTools(server *sdkmcp.Server, services Services) {
	h := &toolHandlers{queue: services.Queue, sessions: services.Sessions}

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "login",
		Description: "Log in with an identifier and secret. Unknown identifiers are registered. Returns a session_id.",
	}, h.login)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "logout",
		Description: "End a session.",
	}, h.logout)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "submit_entry",
		Description: "Join the queue. Issues the next token with status Waiting.",
	}, h.submitEntry)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_entries",
		Description: "List queue entries in arrival order, optionally filtered by status or to the caller's own tokens.",
	}, h.listEntries)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "transition_entry",
		Description: "Move an entry to In Progress, Completed or Cancelled.",
	}, h.transitionEntry)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "call_next",
		Description: "Start serving the oldest waiting entry.",
	}, h.callNext)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "queue_stats",
		Description: "Count entries per status.",
	}, h.queueStats)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_categories",
		Description: "List the service categories accepted by submit_entry.",
	}, h.listCategories)
}

type toolHandlers struct {
	queue    QueueService
	sessions SessionService
}

func (h *toolHandlers) requireSession(sessionID string) (*session.Session, error) {
	sess, err := h.sessions.Resolve(sessionID)
	if err != nil {
		return nil, mapError(err)
	}
	return sess, nil
}

func (h *toolHandlers) login(ctx context.Context, _ *sdkmcp.CallToolRequest, in LoginParams) (*sdkmcp.CallToolResult, LoginResponse, error) {
	sess, err := h.sessions.Login(ctx, in.Identifier, in.Secret)
	if err != nil {
		return nil, LoginResponse{}, mapError(err)
	}
	return nil, LoginResponse{
		SessionID: sess.ID,
		Identity:  sess.Identity,
		Outcome:   string(sess.Outcome),
	}, nil
}

func (h *toolHandlers) logout(_ context.Context, _ *sdkmcp.CallToolRequest, in LogoutParams) (*sdkmcp.CallToolResult, LogoutResponse, error) {
	if err := h.sessions.Logout(in.SessionID); err != nil {
		return nil, LogoutResponse{}, mapError(err)
	}
	return nil, LogoutResponse{LoggedOut: true}, nil
}

func (h *toolHandlers) submitEntry(ctx context.Context, _ *sdkmcp.CallToolRequest, in SubmitEntryParams) (*sdkmcp.CallToolResult, EntryView, error) {
	sess, err := h.requireSession(in.SessionID)
	if err != nil {
		return nil, EntryView{}, err
	}
	entry, err := h.queue.Submit(ctx, queue.SubmitRequest{
		Name:     in.Name,
		Age:      in.Age,
		Category: in.Category,
		Notes:    in.Notes,
		Owner:    sess.Identity,
	})
	if err != nil {
		return nil, EntryView{}, mapError(err)
	}
	view := toEntryView(*entry)
	if pos, err := h.queue.Position(ctx, entry.Token); err == nil {
		view.Position = pos
	}
	return nil, view, nil
}

func (h *toolHandlers) listEntries(ctx context.Context, _ *sdkmcp.CallToolRequest, in ListEntriesParams) (*sdkmcp.CallToolResult, ListEntriesResponse, error) {
	var opts queue.ListOptions
	if in.Status != "" {
		status, err := queue.ParseStatus(in.Status)
		if err != nil {
			return nil, ListEntriesResponse{}, mapError(err)
		}
		opts.Statuses = []queue.Status{status}
	}
	if in.Mine {
		sess, err := h.requireSession(in.SessionID)
		if err != nil {
			return nil, ListEntriesResponse{}, err
		}
		opts.Owner = sess.Identity
	}

	entries, err := h.queue.List(ctx, opts)
	if err != nil {
		return nil, ListEntriesResponse{}, mapError(err)
	}

	resp := ListEntriesResponse{Entries: make([]EntryView, 0, len(entries))}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, toEntryView(e))
	}
	return nil, resp, nil
}

func (h *toolHandlers) transitionEntry(ctx context.Context, _ *sdkmcp.CallToolRequest, in TransitionEntryParams) (*sdkmcp.CallToolResult, EntryView, error) {
	if _, err := h.requireSession(in.SessionID); err != nil {
		return nil, EntryView{}, err
	}
	target, err := queue.ParseStatus(in.Status)
	if err != nil {
		return nil, EntryView{}, mapError(err)
	}
	entry, err := h.queue.Transition(ctx, in.Token, target)
	if err != nil {
		return nil, EntryView{}, mapError(err)
	}
	return nil, toEntryView(*entry), nil
}

func (h *toolHandlers) callNext(ctx context.Context, _ *sdkmcp.CallToolRequest, in CallNextParams) (*sdkmcp.CallToolResult, EntryView, error) {
	if _, err := h.requireSession(in.SessionID); err != nil {
		return nil, EntryView{}, err
	}
	entry, err := h.queue.CallNext(ctx)
	if err != nil {
		return nil, EntryView{}, mapError(err)
	}
	return nil, toEntryView(*entry), nil
}

func (h *toolHandlers) queueStats(ctx context.Context, _ *sdkmcp.CallToolRequest, _ EmptyParams) (*sdkmcp.CallToolResult, queue.Stats, error) {
	stats, err := h.queue.Stats(ctx)
	if err != nil {
		return nil, queue.Stats{}, mapError(err)
	}
	return nil, stats, nil
}

func (h *toolHandlers) listCategories(_ context.Context, _ *sdkmcp.CallToolRequest, _ EmptyParams) (*sdkmcp.CallToolResult, CategoriesResponse, error) {
	return nil, CategoriesResponse{Categories: h.queue.Categories()}, nil
}
