package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/wedding-hall-booking/internal/model"
)

// HallRepo provides persistence for hall listings. List queries join the
// owning user for display names and aggregate ratings so listings carry the
// hall's average score without extra round trips.
type HallRepo struct {
	db *sql.DB
}

func NewHallRepo(db *sql.DB) *HallRepo { return &HallRepo{db: db} }

const hallSelect = `SELECT h.id, h.name, h.description, h.location, h.price, h.capacity,
       h.images, h.services, h.owner_id, u.name AS owner_name, h.created_at,
       IFNULL(ROUND(AVG(r.rating), 1), 0) AS average_rating,
       COUNT(r.id) AS total_ratings
FROM halls h
JOIN users u ON u.id = h.owner_id
LEFT JOIN ratings r ON r.hall_id = h.id`

// List returns every hall with owner name and rating aggregate, newest first.
func (r *HallRepo) List(ctx context.Context) ([]*model.Hall, error) {
	const q = hallSelect + `
GROUP BY h.id, u.name
ORDER BY h.created_at DESC`
	return r.queryHalls(ctx, q)
}

// ListByOwner returns the acting owner's halls, newest first.
func (r *HallRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]*model.Hall, error) {
	const q = hallSelect + `
WHERE h.owner_id = ?
GROUP BY h.id, u.name
ORDER BY h.created_at DESC`
	return r.queryHalls(ctx, q, ownerID)
}

// GetByID returns a single hall with owner and rating aggregate. Returns
// ErrHallNotFound when no row exists.
func (r *HallRepo) GetByID(ctx context.Context, id uint64) (*model.Hall, error) {
	const q = hallSelect + `
WHERE h.id = ?
GROUP BY h.id, u.name`
	halls, err := r.queryHalls(ctx, q, id)
	if err != nil {
		return nil, err
	}
	if len(halls) == 0 {
		return nil, ErrHallNotFound
	}
	return halls[0], nil
}

// Create inserts a hall and reads the stored row back so the caller gets the
// generated id and creation timestamp.
func (r *HallRepo) Create(ctx context.Context, h *model.Hall) error {
	images, err := encodeList(h.Images)
	if err != nil {
		return err
	}
	services, err := encodeList(h.Services)
	if err != nil {
		return err
	}
	const q = `INSERT INTO halls (name, description, location, price, capacity, images, services, owner_id)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		h.Name, h.Description, h.Location, h.Price, h.Capacity, images, services, h.OwnerID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	stored, err := r.GetByID(ctx, uint64(id))
	if err != nil {
		return err
	}
	*h = *stored
	return nil
}

// Update rewrites a hall's fields, but only when it belongs to the given
// owner. The owner filter in the WHERE clause is the object-level
// authorization check; a miss is indistinguishable from a missing hall and
// maps to ErrHallNotFound.
func (r *HallRepo) Update(ctx context.Context, h *model.Hall) error {
	images, err := encodeList(h.Images)
	if err != nil {
		return err
	}
	services, err := encodeList(h.Services)
	if err != nil {
		return err
	}
	const q = `UPDATE halls
	           SET name = ?, description = ?, location = ?, price = ?, capacity = ?, images = ?, services = ?
	           WHERE id = ? AND owner_id = ?`
	res, err := r.db.ExecContext(ctx, q,
		h.Name, h.Description, h.Location, h.Price, h.Capacity, images, services, h.ID, h.OwnerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Distinguish "no such hall for this owner" from "update was a no-op".
		var exists uint64
		err := r.db.QueryRowContext(ctx,
			"SELECT id FROM halls WHERE id = ? AND owner_id = ?", h.ID, h.OwnerID).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrHallNotFound
		}
		if err != nil {
			return err
		}
	}
	stored, err := r.GetByID(ctx, h.ID)
	if err != nil {
		return err
	}
	*h = *stored
	return nil
}

// Delete removes a hall owned by the given owner. Favorites, bookings and
// ratings referencing it are removed by ON DELETE CASCADE.
func (r *HallRepo) Delete(ctx context.Context, id, ownerID uint64) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM halls WHERE id = ? AND owner_id = ?", id, ownerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrHallNotFound
	}
	return nil
}

func (r *HallRepo) queryHalls(ctx context.Context, query string, args ...any) ([]*model.Hall, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Hall
	for rows.Next() {
		h := new(model.Hall)
		var images, services []byte
		if err := rows.Scan(&h.ID, &h.Name, &h.Description, &h.Location, &h.Price, &h.Capacity,
			&images, &services, &h.OwnerID, &h.OwnerName, &h.CreatedAt,
			&h.AverageRating, &h.TotalRatings); err != nil {
			return nil, err
		}
		h.Images = decodeList(images)
		h.Services = decodeList(services)
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
