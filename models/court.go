package models

import "time"

// Court represents a bookable court in the catalog.
type Court struct {
	ID          string    `bson:"id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	HourlyPrice float64   `bson:"hourlyPrice" json:"hourlyPrice"`
	Active      bool      `bson:"active" json:"active"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}
