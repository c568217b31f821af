package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"courtbook/models"
	"courtbook/services/slot"
	"courtbook/utils"

	"go.uber.org/zap"
)

// CreateReservation runs the full admission sequence: parse and validate
// the requested ranges, serialize against other writers for the same court
// and date, check for conflicts, persist, then fire a best-effort notice.
// The response is all-or-nothing: either a fully persisted reservation or a
// specific error with no write at all.
func (s *DefaultReservationService) CreateReservation(ctx context.Context, req models.CreateReservationRequest) (*models.ReservationResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	ranges, err := slot.ParseRanges(req.Ranges)
	if err != nil {
		return nil, &ValidationError{Message: fmt.Sprintf("invalid ranges: %v", err)}
	}

	exists, err := s.CourtRepo.Exists(ctx, req.CourtID)
	if err != nil {
		return nil, &DependencyError{Op: "court lookup", Err: err}
	}
	if !exists {
		return nil, &NotFoundError{Resource: "court", ID: req.CourtID}
	}

	// Hold the per-court-and-date lock across the read-check-write
	// sequence. Without it two requests could both pass the conflict check
	// against the same snapshot and both be persisted.
	release := s.locks.acquire(lockKey(req.CourtID, req.Date))
	defer release()

	if err := s.CheckConflict(ctx, req.CourtID, req.Date, ranges); err != nil {
		return nil, err
	}

	reservation := models.Reservation{
		CourtID:       req.CourtID,
		Date:          req.Date,
		Ranges:        slot.ToStorageForm(ranges),
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		AmountPaid:    req.AmountPaid,
	}
	if err := s.Repo.Insert(ctx, &reservation); err != nil {
		return nil, &DependencyError{Op: "insert reservation", Err: err}
	}

	s.invalidateAvailability(ctx, req.CourtID, req.Date)
	s.notifyCreated(ctx, reservation, ranges)

	return &models.ReservationResponse{
		Reservation:      reservation,
		BookedStartHours: slot.StartHours(ranges),
	}, nil
}

func validateRequest(req models.CreateReservationRequest) error {
	if strings.TrimSpace(req.CourtID) == "" {
		return &ValidationError{Message: "courtId is required"}
	}
	if strings.TrimSpace(req.CustomerName) == "" {
		return &ValidationError{Message: "customerName is required"}
	}
	if strings.TrimSpace(req.CustomerPhone) == "" {
		return &ValidationError{Message: "customerPhone is required"}
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return &ValidationError{Message: "date must be formatted YYYY-MM-DD"}
	}
	if req.AmountPaid < 0 {
		return &ValidationError{Message: "amountPaid must not be negative"}
	}
	return nil
}

func lockKey(courtID, date string) string {
	return courtID + "|" + date
}

// notifyCreated hands the confirmation text to the dispatcher. Enqueue
// failures are logged and swallowed: the reservation is already committed
// and must never be reported as failed because a notice did not go out.
func (s *DefaultReservationService) notifyCreated(ctx context.Context, res models.Reservation, ranges []slot.HourRange) {
	if s.Dispatcher == nil {
		return
	}

	parts := make([]string, len(ranges))
	for i, r := range ranges {
		parts[i] = fmt.Sprintf("%02d:00-%02d:00", r.Start, r.End)
	}
	text := fmt.Sprintf("Hi %s, your reservation on %s for %s is confirmed.",
		res.CustomerName, res.Date, strings.Join(parts, ", "))

	payload := models.NotificationPayload{
		Recipient:     res.CustomerPhone,
		Text:          text,
		ReservationID: res.ID,
	}
	if err := s.Dispatcher.DispatchReservationNotice(ctx, payload); err != nil {
		utils.GetLogger().Warn("failed to dispatch reservation notice",
			zap.String("reservationID", res.ID), zap.Error(err))
	}
}
