package session

import "errors"

var (
	// ErrSessionNotFound indicates the session doesn't exist or has expired.
	ErrSessionNotFound = errors.New("session not found")
)
