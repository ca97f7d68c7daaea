package session

import (
	"time"

	"github.com/rpggio/queuedesk/internal/domain/credential"
)

// Session binds an authenticated identity to an opaque ID handed to the
// presentation layer.
type Session struct {
	ID           string             `json:"id"`
	Identity     string             `json:"identity"`
	Outcome      credential.Outcome `json:"outcome"`
	CreatedAt    time.Time          `json:"created_at"`
	LastActivity time.Time          `json:"last_activity"`
}

// Expired reports whether the session has been idle longer than ttl.
// A zero ttl never expires.
func (s Session) Expired(now time.Time, ttl time.Duration) bool {
	return ttl > 0 && now.Sub(s.LastActivity) > ttl
}
