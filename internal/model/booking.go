package model

import (
	"errors"
	"time"
)

// DateLayout is the wire format for booking dates. Dates are inclusive
// calendar days, not instants, so the service never deals in clock time.
const DateLayout = "2006-01-02"

// BookingStatus is the lifecycle state of a booking. A booking is created
// pending and moves only by an action of the hall's owner.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusApproved  BookingStatus = "approved"
	StatusRejected  BookingStatus = "rejected"
	StatusCancelled BookingStatus = "cancelled"
)

// ParseBookingStatus validates a status supplied by a client.
func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled:
		return BookingStatus(s), true
	}
	return "", false
}

var (
	// ErrBadDate is returned when a date is not in YYYY-MM-DD form.
	ErrBadDate = errors.New("invalid date format, use YYYY-MM-DD")
	// ErrRangeInverted is returned when the start date falls after the end date.
	ErrRangeInverted = errors.New("start date must not be after end date")
)

// DateRange is an inclusive range of calendar days. Both bounds are
// normalized to midnight UTC.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange parses and validates a start/end pair in DateLayout form.
func NewDateRange(start, end string) (DateRange, error) {
	s, err := time.Parse(DateLayout, start)
	if err != nil {
		return DateRange{}, ErrBadDate
	}
	e, err := time.Parse(DateLayout, end)
	if err != nil {
		return DateRange{}, ErrBadDate
	}
	if s.After(e) {
		return DateRange{}, ErrRangeInverted
	}
	return DateRange{Start: s, End: e}, nil
}

// Overlaps reports whether two inclusive ranges share at least one day.
// Because the bounds are whole days rather than half-open intervals, a range
// ending on the day another starts counts as a conflict.
func (r DateRange) Overlaps(o DateRange) bool {
	return !o.Start.After(r.End) && !o.End.Before(r.Start)
}

// StartsBefore reports whether the range begins before the given day.
// Used to reject bookings whose start date lies in the past.
func (r DateRange) StartsBefore(day time.Time) bool {
	return r.Start.Before(day.Truncate(24 * time.Hour))
}

// Booking mirrors the `bookings` table. Dates are serialized in
// DateLayout form.
type Booking struct {
	ID        uint64        `json:"id"`
	UserID    uint64        `json:"user_id"`
	HallID    uint64        `json:"hall_id"`
	StartDate string        `json:"start_date"`
	EndDate   string        `json:"end_date"`
	Status    BookingStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}

// BookingDetail is a booking joined with the hall it targets and the
// counterparty of the viewer: clients see the hall's owner, owners see the
// booking's client. Unused counterparty fields stay empty and are omitted.
type BookingDetail struct {
	Booking
	HallName    string `json:"hall_name"`
	ClientName  string `json:"client_name,omitempty"`
	ClientEmail string `json:"client_email,omitempty"`
	OwnerName   string `json:"owner_name,omitempty"`
	OwnerEmail  string `json:"owner_email,omitempty"`
}
