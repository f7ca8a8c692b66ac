package types

import "errors"

// Engine error kinds. Every operation failure wraps exactly one of these so
// callers can classify a failed ExecutionResult with errors.Is.
var (
	// ErrSchema reports an invalid or conflicting column/table definition.
	ErrSchema = errors.New("schema error")

	// ErrConflict reports that a table or role already exists where
	// uniqueness is required.
	ErrConflict = errors.New("already exists")

	// ErrNotFound reports that a referenced table, column, or role is absent.
	ErrNotFound = errors.New("not found")

	// ErrPrivilege reports that the acting role lacks a required privilege.
	ErrPrivilege = errors.New("privilege denied")

	// ErrValidation reports row data that violates column constraints, or a
	// malformed operation payload.
	ErrValidation = errors.New("validation failed")
)

// Store lifecycle errors.
var (
	ErrStoreClosed = errors.New("store is closed")
	ErrAlreadyOpen = errors.New("store is already open")
)

// Config validation errors.
var (
	ErrSyncStrategyUnknown = errors.New("unknown sync strategy")
)
