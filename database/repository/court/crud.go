// File: database/repository/court/crud.go
package courtRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"courtbook/models"
)

func (r *mongoCourtRepo) Insert(ctx context.Context, court *models.Court) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	if court.ID == "" {
		court.ID = uuid.New().String()
	}
	court.CreatedAt = now
	court.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, court); err != nil {
		return fmt.Errorf("failed to insert court: %w", err)
	}
	return nil
}

func (r *mongoCourtRepo) GetByID(ctx context.Context, id string) (*models.Court, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var court models.Court
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&court)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, mongo.ErrNoDocuments
		}
		return nil, fmt.Errorf("find error: %w", err)
	}
	return &court, nil
}

func (r *mongoCourtRepo) GetAll(ctx context.Context) ([]models.Court, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch courts: %w", err)
	}
	defer cursor.Close(ctx)

	var courts []models.Court
	if err := cursor.All(ctx, &courts); err != nil {
		return nil, fmt.Errorf("error decoding courts: %w", err)
	}
	return courts, nil
}

func (r *mongoCourtRepo) Exists(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, bson.M{"id": id})
	if err != nil {
		return false, fmt.Errorf("failed to count courts: %w", err)
	}
	return count > 0, nil
}
