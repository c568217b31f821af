// File: database/repository/reservation/aggregates.go
package reservationRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CountRangeEntriesByDate counts stored range entries per date for a court.
// Each element of a reservation's ranges array counts once, whether it is a
// degenerate [start] or a [start, end] pair of any width. This is the raw
// input for the legacy fully-booked metric; it is not an hour count.
func (r *mongoReservationRepo) CountRangeEntriesByDate(ctx context.Context, courtID string) (map[string]int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"courtId": courtID}}},
		{{Key: "$unwind", Value: "$ranges"}},
		{{Key: "$group", Value: bson.M{
			"_id":     "$date",
			"entries": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate range entries: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Date    string `bson:"_id"`
		Entries int    `bson:"entries"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode error: %w", err)
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Date] = row.Entries
	}
	return counts, nil
}
