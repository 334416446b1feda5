package domain

import "errors"

// Error kinds surfaced by the checkout core. Concrete errors wrap one of these
// and name the offending entity, callers match them with errors.Is.
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation failed")
	// ErrConflict is returned on deadlocks, lock wait timeouts and
	// serialization failures. The operation may be retried by the caller.
	ErrConflict = errors.New("conflict")
)
