package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/queuedesk/internal/domain/credential"
	"github.com/rpggio/queuedesk/internal/domain/queue"
	"github.com/rpggio/queuedesk/internal/domain/session"
	"github.com/rpggio/queuedesk/internal/repository"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	if e.RecoveryHint != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.RecoveryHint)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, queue.ErrInvalidInput):
		return &APIError{Code: "VALIDATION_ERROR", Message: err.Error(), RecoveryHint: "Check name, age and category"}
	case errors.Is(err, queue.ErrEntryNotFound):
		return &APIError{Code: "NOT_FOUND", Message: "queue entry not found", RecoveryHint: "Check the token number"}
	case errors.Is(err, queue.ErrInvalidTransition):
		return &APIError{Code: "INVALID_TRANSITION", Message: err.Error(), RecoveryHint: "Waiting -> In Progress -> Completed, or Waiting -> Cancelled"}
	case errors.Is(err, queue.ErrUnknownStatus):
		return &APIError{Code: "VALIDATION_ERROR", Message: "unknown status", RecoveryHint: "Use Waiting, In Progress, Completed or Cancelled"}
	case errors.Is(err, queue.ErrQueueEmpty):
		return &APIError{Code: "QUEUE_EMPTY", Message: "no one is waiting"}
	case errors.Is(err, credential.ErrRejected):
		return &APIError{Code: "AUTH_REJECTED", Message: "wrong secret for this identity"}
	case errors.Is(err, credential.ErrInvalidInput):
		return &APIError{Code: "VALIDATION_ERROR", Message: "identifier and secret are required"}
	case errors.Is(err, session.ErrSessionNotFound):
		return &APIError{Code: "SESSION_NOT_FOUND", Message: "session not found or expired", RecoveryHint: "Call login again"}
	case errors.Is(err, repository.ErrStorage):
		return &APIError{Code: "STORAGE_ERROR", Message: "queue store unavailable"}
	default:
		return nil
	}
}

func mapError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
