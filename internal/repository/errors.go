// Package repository holds the data access layer. Each entity has its own
// repo struct wrapping *sql.DB and issuing parameterized SQL. The sentinel
// errors below let handlers distinguish failure scenarios without inspecting
// driver errors: handlers translate them into the HTTP error taxonomy
// (404 for the not-found family, 409 for conflicts).
package repository

import (
	"errors"
	"strings"
)

// ErrEmailExists is returned when a signup collides with an existing email.
var ErrEmailExists = errors.New("email already exists")

// ErrHallNotFound is returned when a hall lookup fails, including the case
// where the hall exists but does not belong to the acting owner.
var ErrHallNotFound = errors.New("hall not found")

// ErrBookingNotFound is returned when a booking lookup fails or when the
// acting owner does not own the hall the booking targets.
var ErrBookingNotFound = errors.New("booking not found")

// ErrBookingConflict is returned when a requested date range overlaps an
// approved booking for the same hall, either on creation or on a transition
// to approved.
var ErrBookingConflict = errors.New("booking dates conflict with an approved booking")

// duplicateKey reports whether a MySQL error is a unique key violation
// (error 1062). The driver does not export a typed constant for this, so the
// code is matched in the message the same way across repos.
func duplicateKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}
