// Copyright (c) The Terradrive Authors
// SPDX-License-Identifier: MPL-2.0

package lifecycle

import "fmt"

// LookupError means the remote object could not be located or
// materialized. It is distinct from provider malfunction so callers can
// treat it as "does not exist" rather than "try again later".
type LookupError struct {
	Message string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("resource lookup failed: %s", e.Message)
}

func lookupErrorf(format string, args ...any) *LookupError {
	return &LookupError{Message: fmt.Sprintf(format, args...)}
}

// ConflictError means an import was requested for a different id than the
// one already recorded for this resource.
type ConflictError struct {
	Recorded  string
	Requested string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("resource is already bound to id %q, refusing to import id %q", e.Recorded, e.Requested)
}

// IncompleteStateError means a mutating operation was invoked on a record
// that is missing its state or private payload. That is a caller bug, not
// a remote condition.
type IncompleteStateError struct {
	Operation string
}

func (e *IncompleteStateError) Error() string {
	return fmt.Sprintf("cannot %s: resource state record is incomplete", e.Operation)
}
