package queue

import (
	"strings"
	"time"
)

// Status represents the lifecycle state of a queue entry
type Status string

const (
	StatusWaiting    Status = "Waiting"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
	StatusCancelled  Status = "Cancelled"
)

// Statuses lists every status in lifecycle order.
var Statuses = []Status{StatusWaiting, StatusInProgress, StatusCompleted, StatusCancelled}

// ParseStatus resolves a status name, accepting any letter case and the
// compact "InProgress" spelling.
func ParseStatus(s string) (Status, error) {
	key := strings.ToLower(strings.Join(strings.Fields(s), ""))
	switch key {
	case "waiting":
		return StatusWaiting, nil
	case "inprogress":
		return StatusInProgress, nil
	case "completed":
		return StatusCompleted, nil
	case "cancelled", "canceled":
		return StatusCancelled, nil
	}
	return "", ErrUnknownStatus
}

// Terminal reports whether no further transition leaves this status.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Entry is one person waiting for (or served by) the counter
type Entry struct {
	Token     int64      `json:"token"`
	Name      string     `json:"name"`
	Age       int        `json:"age"`
	Category  string     `json:"category"`
	Notes     string     `json:"notes"`
	EnteredAt time.Time  `json:"entered"`
	StartedAt *time.Time `json:"start,omitempty"`
	EndedAt   *time.Time `json:"end,omitempty"`
	Status    Status     `json:"status"`
	Owner     string     `json:"user"`
}

// Stats counts entries per status
type Stats struct {
	Total      int `json:"total"`
	Waiting    int `json:"waiting"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
	Cancelled  int `json:"cancelled"`
}

// DefaultCategories is the service menu offered when none is configured.
var DefaultCategories = []string{
	"General Service",
	"Customer Support",
	"Billing",
	"Consultation",
	"Enquiry",
}
