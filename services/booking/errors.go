package booking

import (
	"fmt"

	"courtbook/services/slot"
)

// ValidationError reports malformed or missing input. The caller must fix
// the request before retrying.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validationError: %s", e.Message)
}

// ConflictError reports that a candidate range overlaps an already
// persisted reservation. The caller may retry with different ranges.
// Which overlapping pair is reported depends on storage return order; only
// the fact that a conflict exists is meaningful.
type ConflictError struct {
	Candidate     slot.HourRange
	Existing      slot.HourRange
	ReservationID string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflictError: requested hours [%d,%d) overlap reserved hours [%d,%d)",
		e.Candidate.Start, e.Candidate.End, e.Existing.Start, e.Existing.End)
}

// NotFoundError reports an unknown court.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("notFoundError: %s %q not found", e.Resource, e.ID)
}

// DependencyError wraps a storage-layer failure.
type DependencyError struct {
	Op  string
	Err error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("dependencyError: %s: %v", e.Op, e.Err)
}

func (e *DependencyError) Unwrap() error {
	return e.Err
}
