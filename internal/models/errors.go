package models

import "errors"

// Error taxonomy shared by repositories, services and handlers.
//
//   - ErrNotFound: an id did not resolve; propagated, never retried.
//   - ErrValidation: malformed input; rejected before any write.
//
// Uniqueness races on view/response inserts are not errors at all: the
// repositories translate them into the idempotent/upsert success path.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
)
