package model

import "time"

// Hall is a bookable venue listing owned by exactly one owner-role user.
// Images and Services are stored as JSON arrays in the `halls` table.
// OwnerName and the rating aggregate are filled by list/detail queries that
// join users and ratings; they are zero-valued on freshly created rows.
type Hall struct {
	ID            uint64    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Location      string    `json:"location"`
	Price         float64   `json:"price"`
	Capacity      uint32    `json:"capacity"`
	Images        []string  `json:"images"`
	Services      []string  `json:"services"`
	OwnerID       uint64    `json:"owner_id"`
	OwnerName     string    `json:"owner_name,omitempty"`
	AverageRating float64   `json:"average_rating"`
	TotalRatings  int       `json:"total_ratings"`
	CreatedAt     time.Time `json:"created_at"`
}
