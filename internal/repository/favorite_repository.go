package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/wedding-hall-booking/internal/model"
)

// FavoriteRepo provides persistence for a client's bookmarked halls.
type FavoriteRepo struct {
	db *sql.DB
}

func NewFavoriteRepo(db *sql.DB) *FavoriteRepo { return &FavoriteRepo{db: db} }

// Add bookmarks a hall for the user. The statement is idempotent over the
// (user_id, hall_id) unique key: re-adding an existing favorite leaves the
// single row untouched and succeeds, so repeated add calls are safe.
func (r *FavoriteRepo) Add(ctx context.Context, userID, hallID uint64) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO favorites (user_id, hall_id) VALUES (?,?) ON DUPLICATE KEY UPDATE id = id",
		userID, hallID)
	return err
}

// Remove deletes the user's favorite for the hall. Removing a favorite that
// does not exist is not an error.
func (r *FavoriteRepo) Remove(ctx context.Context, userID, hallID uint64) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM favorites WHERE user_id = ? AND hall_id = ?", userID, hallID)
	return err
}

// ListByUser returns the user's favorited halls with owner names, most
// recently favorited first.
func (r *FavoriteRepo) ListByUser(ctx context.Context, userID uint64) ([]*model.FavoriteHall, error) {
	const q = `SELECT h.id, h.name, h.description, h.location, h.price, h.capacity, h.images,
	                  h.owner_id, u.name
	           FROM favorites f
	           JOIN halls h ON h.id = f.hall_id
	           JOIN users u ON u.id = h.owner_id
	           WHERE f.user_id = ?
	           ORDER BY f.id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.FavoriteHall
	for rows.Next() {
		fh := new(model.FavoriteHall)
		var images []byte
		if err := rows.Scan(&fh.HallID, &fh.Name, &fh.Description, &fh.Location, &fh.Price,
			&fh.Capacity, &images, &fh.OwnerID, &fh.OwnerName); err != nil {
			return nil, err
		}
		fh.Images = decodeList(images)
		out = append(out, fh)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
