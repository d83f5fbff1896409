package domain

import "errors"

// Sentinel errors for the document lifecycle and access-control core.
// Callers branch with errors.Is; controllers map each to a distinct
// HTTP status so the client can tell the failures apart.
var (
	// ErrUnauthorized means the principal's effective permission level
	// is below the operation's required minimum.
	ErrUnauthorized = errors.New("insufficient permissions")

	// ErrInvalidTransition means the requested state change is not
	// reachable from the current state. Nothing was written.
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrNotFound means the referenced document, assignment or grant
	// does not exist, or is trashed and the caller is not trash-aware.
	ErrNotFound = errors.New("not found")

	// ErrDependencyFailure means an external collaborator failed. For
	// persistence the triggering operation is failed; for notification
	// delivery the failure is logged and the operation stands.
	ErrDependencyFailure = errors.New("dependency failure")

	// ErrValidation means the request payload failed validation.
	ErrValidation = errors.New("validation failed")
)
