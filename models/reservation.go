package models

import (
	"encoding/json"
	"time"
)

// Reservation is one customer's booking of hour ranges on a court for a
// single calendar day. Dates are matched by exact string equality; no
// timezone normalization is applied.
//
// Ranges holds the stored encoding: 2-element [start, end] pairs, except
// that a reservation made of exactly one range is persisted as a 1-element
// [start] with the end implied as start+1. See services/slot for the
// expand/collapse rules.
type Reservation struct {
	ID            string    `bson:"id" json:"id"`
	CourtID       string    `bson:"courtId" json:"courtId"`
	Date          string    `bson:"date" json:"date"` // "2006-01-02"
	Ranges        [][]int   `bson:"ranges" json:"ranges"`
	CustomerName  string    `bson:"customerName" json:"customerName"`
	CustomerPhone string    `bson:"customerPhone" json:"customerPhone"`
	AmountPaid    float64   `bson:"amountPaid" json:"amountPaid"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`
}

// CreateReservationRequest is the inbound creation payload. Ranges is kept
// raw because clients have historically sent hours as numbers, numeric
// strings, extra-nested arrays, or a double-encoded JSON string; the slot
// parser sorts that out.
type CreateReservationRequest struct {
	CourtID       string          `json:"courtId" binding:"required"`
	CustomerName  string          `json:"customerName" binding:"required"`
	CustomerPhone string          `json:"customerPhone" binding:"required"`
	Date          string          `json:"date" binding:"required"`
	Ranges        json.RawMessage `json:"ranges" binding:"required"`
	AmountPaid    float64         `json:"amountPaid"`
}

// ReservationResponse is what a successful creation returns to the caller.
// BookedStartHours lists the start hour of each created range for display.
type ReservationResponse struct {
	Reservation      Reservation `json:"reservation"`
	BookedStartHours []int       `json:"bookedStartHours"`
}
