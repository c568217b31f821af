package booking

import (
	"context"

	courtRepo "courtbook/database/repository/court"
	reservationRepo "courtbook/database/repository/reservation"
	"courtbook/models"
	"courtbook/services/slot"

	"github.com/go-redis/redis/v8"
)

// ReservationService is the slot-availability and admission-control engine.
type ReservationService interface {
	CreateReservation(ctx context.Context, req models.CreateReservationRequest) (*models.ReservationResponse, error)
	CheckConflict(ctx context.Context, courtID, date string, candidate []slot.HourRange) error
	UnavailableRanges(ctx context.Context, courtID, date string) ([]slot.HourRange, error)
	FullyBookedDates(ctx context.Context, courtID string) ([]string, error)
	BookedHourTotals(ctx context.Context, courtID string) (map[string]int, error)
}

// NotificationDispatcher enqueues a best-effort outbound notice. Failures
// are the caller's to log, never to propagate.
type NotificationDispatcher interface {
	DispatchReservationNotice(ctx context.Context, payload models.NotificationPayload) error
}

// DefaultReservationService is the production implementation.
type DefaultReservationService struct {
	Repo       reservationRepo.ReservationRepository
	CourtRepo  courtRepo.CourtRepository
	Dispatcher NotificationDispatcher
	Cache      *redis.Client // optional; nil disables availability caching

	locks keyedLocks
}

// NewDefaultReservationService wires the engine with its collaborators.
func NewDefaultReservationService(
	repo reservationRepo.ReservationRepository,
	courts courtRepo.CourtRepository,
	dispatcher NotificationDispatcher,
	cache *redis.Client,
) *DefaultReservationService {
	return &DefaultReservationService{
		Repo:       repo,
		CourtRepo:  courts,
		Dispatcher: dispatcher,
		Cache:      cache,
	}
}
