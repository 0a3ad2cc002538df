package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/wedding-hall-booking/internal/model"
)

// RatingRepo maintains the single rating each user may hold per hall and
// computes the aggregate reported on listings and the ratings endpoint.
type RatingRepo struct {
	db *sql.DB
}

func NewRatingRepo(db *sql.DB) *RatingRepo { return &RatingRepo{db: db} }

// Upsert stores the user's rating for a hall. The (user_id, hall_id) unique
// key turns a resubmission into an in-place overwrite: the value and
// updated_at change, the row count does not. No history is retained.
func (r *RatingRepo) Upsert(ctx context.Context, userID, hallID uint64, value int) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO ratings (user_id, hall_id, rating) VALUES (?,?,?)
		 ON DUPLICATE KEY UPDATE rating = VALUES(rating), updated_at = CURRENT_TIMESTAMP`,
		userID, hallID, value)
	return err
}

// StatsByHall returns the arithmetic mean rounded to one decimal place and
// the count of ratings for a hall. A hall with no ratings yields 0 / 0
// rather than an error.
func (r *RatingRepo) StatsByHall(ctx context.Context, hallID uint64) (model.RatingStats, error) {
	var stats model.RatingStats
	err := r.db.QueryRowContext(ctx,
		"SELECT IFNULL(ROUND(AVG(rating), 1), 0), COUNT(*) FROM ratings WHERE hall_id = ?",
		hallID).Scan(&stats.Average, &stats.Count)
	return stats, err
}

// UserRating returns the caller's own rating row for a hall, or nil when the
// user has not rated it.
func (r *RatingRepo) UserRating(ctx context.Context, userID, hallID uint64) (*model.Rating, error) {
	var rt model.Rating
	err := r.db.QueryRowContext(ctx,
		"SELECT id, user_id, hall_id, rating, created_at, updated_at FROM ratings WHERE user_id = ? AND hall_id = ?",
		userID, hallID).
		Scan(&rt.ID, &rt.UserID, &rt.HallID, &rt.Rating, &rt.CreatedAt, &rt.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rt, nil
}
