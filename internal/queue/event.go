// Package queue defines message payloads exchanged over the message broker.
package queue

// StatusQueueName is the durable queue carrying booking status changes.
const StatusQueueName = "booking.status"

// BookingStatusEvent is published when a hall owner changes a booking's
// status. It carries enough context for downstream consumers to notify the
// client or feed analytics without querying the primary database.
type BookingStatusEvent struct {
	BookingID uint64 `json:"booking_id"`
	HallID    uint64 `json:"hall_id"`
	HallName  string `json:"hall_name"`
	ClientID  uint64 `json:"client_id"`
	OwnerID   uint64 `json:"owner_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Status    string `json:"status"`
	UpdatedAt string `json:"updated_at"`
}
