package mcp

import (
	"time"

	"github.com/rpggio/queuedesk/internal/domain/queue"
)

const timeLayout = "2006-01-02 15:04:05"

// LoginParams represents parameters for the login tool.
type LoginParams struct {
	Identifier string `json:"identifier" jsonschema:"email or user name; unknown identities are enrolled"`
	Secret     string `json:"secret" jsonschema:"password"`
}

// LoginResponse is returned by the login tool.
type LoginResponse struct {
	SessionID string `json:"session_id"`
	Identity  string `json:"identity"`
	Outcome   string `json:"outcome"`
}

// LogoutParams represents parameters for the logout tool.
type LogoutParams struct {
	SessionID string `json:"session_id"`
}

// LogoutResponse is returned by the logout tool.
type LogoutResponse struct {
	LoggedOut bool `json:"logged_out"`
}

// SubmitEntryParams represents parameters for the submit_entry tool.
type SubmitEntryParams struct {
	SessionID string `json:"session_id"`
	Name      string `json:"name"`
	Age       int    `json:"age" jsonschema:"age in years, 1 to 120"`
	Category  string `json:"category" jsonschema:"one of the categories returned by list_categories"`
	Notes     string `json:"notes,omitempty"`
}

// ListEntriesParams represents parameters for the list_entries tool.
type ListEntriesParams struct {
	Status    string `json:"status,omitempty" jsonschema:"Waiting, In Progress, Completed or Cancelled; all when empty"`
	SessionID string `json:"session_id,omitempty" jsonschema:"when set with mine, restricts to the session owner's tokens"`
	Mine      bool   `json:"mine,omitempty"`
}

// ListEntriesResponse is returned by the list_entries tool.
type ListEntriesResponse struct {
	Entries []EntryView `json:"entries"`
}

// TransitionEntryParams represents parameters for the transition_entry tool.
type TransitionEntryParams struct {
	SessionID string `json:"session_id"`
	Token     int64  `json:"token"`
	Status    string `json:"status" jsonschema:"target status"`
}

// CallNextParams represents parameters for the call_next tool.
type CallNextParams struct {
	SessionID string `json:"session_id"`
}

// EmptyParams is used by tools that take no input.
type EmptyParams struct{}

// CategoriesResponse is returned by the list_categories tool.
type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

// EntryView is the wire form of a queue entry.
type EntryView struct {
	Token    int64  `json:"token"`
	Name     string `json:"name"`
	Age      int    `json:"age"`
	Category string `json:"category"`
	Notes    string `json:"notes"`
	Entered  string `json:"entered"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Status   string `json:"status"`
	User     string `json:"user"`
	Position int    `json:"position,omitempty"`
}

func toEntryView(e queue.Entry) EntryView {
	return EntryView{
		Token:    e.Token,
		Name:     e.Name,
		Age:      e.Age,
		Category: e.Category,
		Notes:    e.Notes,
		Entered:  formatTime(&e.EnteredAt),
		Start:    formatTime(e.StartedAt),
		End:      formatTime(e.EndedAt),
		Status:   string(e.Status),
		User:     e.Owner,
	}
}

func formatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Local().Format(timeLayout)
}
