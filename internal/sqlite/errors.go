package sqlite

import (
	"fmt"
	"strings"

	"github.com/rpggio/queuedesk/internal/repository"
)

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "PRIMARY KEY constraint failed")
}

func storageError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", repository.ErrStorage, op, err)
}
