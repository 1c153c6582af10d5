package domain

import "errors"

var (
	// ErrNotFound indicates that the id does not resolve or is not owned by
	// the caller.
	ErrNotFound = errors.New("not found")
	// ErrSearchIndexMissing indicates that the search backend has no index
	// for the collection.
	ErrSearchIndexMissing = errors.New("search index missing")
	// ErrValidation indicates that an entity was rejected as invalid.
	ErrValidation = errors.New("validation failed")
	// ErrConflict indicates a conflicting concurrent change.
	ErrConflict = errors.New("conflict")
	// ErrUnauthorized indicates missing or rejected credentials.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNewEntity indicates an operation that needs a persisted entity.
	ErrNewEntity = errors.New("entity has no id")
)
