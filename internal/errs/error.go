package errs

import (
	"errors"
)

// Error kinds raised by the domain services. Callers match with errors.Is;
// wrapped messages carry the business detail.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrValidation   = errors.New("validation failed")
	ErrUnavailable  = errors.New("temporarily unavailable")
)
