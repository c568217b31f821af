package models

// NotificationPayload carries a best-effort outbound notice. Delivery
// failures are logged and never affect the reservation that triggered them.
type NotificationPayload struct {
	Recipient     string `json:"recipient"` // customer phone number
	Text          string `json:"text"`
	ReservationID string `json:"reservationId"`
}
