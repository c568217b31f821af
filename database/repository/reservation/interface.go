// File: database/repository/reservation/interface.go
package reservationRepo

import (
	"context"

	"courtbook/config"
	"courtbook/database"
	"courtbook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type ReservationRepository interface {
	Insert(ctx context.Context, res *models.Reservation) error
	GetByCourtAndDate(ctx context.Context, courtID, date string) ([]models.Reservation, error)
	GetByCourt(ctx context.Context, courtID string) ([]models.Reservation, error)
	CountRangeEntriesByDate(ctx context.Context, courtID string) (map[string]int, error)
	EnsureIndexes() error
}

type mongoReservationRepo struct {
	coll *mongo.Collection
}

// NewMongoReservationRepo constructs a new MongoDB ReservationRepository.
func NewMongoReservationRepo() ReservationRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &mongoReservationRepo{
		coll: db.Collection("reservations"),
	}
}
