package booking

import (
	"context"

	"courtbook/services/slot"
)

// CheckConflict loads every reservation stored for the exact (courtID,
// date) pair, expands each to canonical intervals and tests every
// (existing, candidate) combination for half-open overlap. The check is
// all-or-nothing: the first overlap found, scanning reservations in
// storage return order, aborts the whole request.
func (s *DefaultReservationService) CheckConflict(ctx context.Context, courtID, date string, candidate []slot.HourRange) error {
	existing, err := s.Repo.GetByCourtAndDate(ctx, courtID, date)
	if err != nil {
		return &DependencyError{Op: "load reservations", Err: err}
	}

	for _, res := range existing {
		occupied, err := slot.Expand(res.Ranges)
		if err != nil {
			// A stored document we cannot expand means we cannot prove the
			// request is conflict-free, so fail closed.
			return &DependencyError{Op: "expand stored ranges", Err: err}
		}
		for _, taken := range occupied {
			for _, want := range candidate {
				if want.Overlaps(taken) {
					return &ConflictError{
						Candidate:     want,
						Existing:      taken,
						ReservationID: res.ID,
					}
				}
			}
		}
	}
	return nil
}
