// File: database/repository/court/interface.go
package courtRepo

import (
	"context"

	"courtbook/config"
	"courtbook/database"
	"courtbook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type CourtRepository interface {
	Insert(ctx context.Context, court *models.Court) error
	GetByID(ctx context.Context, id string) (*models.Court, error)
	GetAll(ctx context.Context) ([]models.Court, error)
	Exists(ctx context.Context, id string) (bool, error)
	EnsureIndexes() error
}

type mongoCourtRepo struct {
	coll *mongo.Collection
}

// NewMongoCourtRepo constructs a new MongoDB CourtRepository.
func NewMongoCourtRepo() CourtRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &mongoCourtRepo{
		coll: db.Collection("courts"),
	}
}
