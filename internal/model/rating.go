package model

import "time"

// Rating mirrors the `ratings` table. One row per (user, hall); a
// resubmission overwrites the value in place and bumps UpdatedAt.
type Rating struct {
	ID        uint64    `json:"id"`
	UserID    uint64    `json:"user_id"`
	HallID    uint64    `json:"hall_id"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RatingStats is the aggregate reported for a hall: the arithmetic mean of
// all stored ratings rounded to one decimal place, and the row count. A hall
// with no ratings reports 0 / 0.
type RatingStats struct {
	Average float64 `json:"average_rating"`
	Count   int     `json:"total_ratings"`
}
