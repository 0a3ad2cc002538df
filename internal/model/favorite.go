package model

import "time"

// Favorite mirrors the `favorites` table. The (UserID, HallID) pair is
// unique; adding the same hall twice leaves a single row.
type Favorite struct {
	ID        uint64    `json:"id"`
	UserID    uint64    `json:"user_id"`
	HallID    uint64    `json:"hall_id"`
	CreatedAt time.Time `json:"created_at"`
}

// FavoriteHall is a favorite joined with its hall and the hall's owner,
// shaped for the client's favorites listing.
type FavoriteHall struct {
	HallID      uint64   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Price       float64  `json:"price"`
	Capacity    uint32   `json:"capacity"`
	Images      []string `json:"images"`
	OwnerID     uint64   `json:"owner_id"`
	OwnerName   string   `json:"owner_name"`
}
