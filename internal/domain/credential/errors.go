package credential

import "errors"

var (
	// ErrRejected indicates the identifier exists with a different secret.
	ErrRejected = errors.New("credentials rejected")
	// ErrInvalidInput indicates an empty identifier or secret.
	ErrInvalidInput = errors.New("invalid credential input")
)
