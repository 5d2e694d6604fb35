package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound reports that the requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized reports that the operation requires a signed-in actor.
	ErrUnauthorized = errors.New("authentication required")
	// ErrForbidden reports that the actor lacks the admin capability.
	ErrForbidden = errors.New("admin role required")
)

// ValidationError reports malformed input. It is raised before any
// store call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ReferentialConflictError blocks a category deletion while tools still
// reference it (block policy).
type ReferentialConflictError struct {
	CategoryID string
	ToolCount  int64
}

func (e *ReferentialConflictError) Error() string {
	return fmt.Sprintf("category %s still has %d tools attached", e.CategoryID, e.ToolCount)
}

// ConfirmationRequiredError asks the caller to confirm a cascading
// category deletion that would move dependent tools to uncategorized
// (reassign policy).
type ConfirmationRequiredError struct {
	CategoryID string
	ToolCount  int64
}

func (e *ConfirmationRequiredError) Error() string {
	return fmt.Sprintf("deleting category %s will uncategorize %d tools; confirmation required", e.CategoryID, e.ToolCount)
}
