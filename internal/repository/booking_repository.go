package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/wedding-hall-booking/internal/model"
)

// BookingRepo provides persistence for bookings. The conflict rule (no two
// approved bookings on one hall may share a day) is enforced here, inside a
// serializable transaction, so two concurrent requests for overlapping ranges
// cannot both succeed. Only approved rows participate in conflict checks;
// pending, rejected and cancelled bookings never block a request.
type BookingRepo struct {
	db *sql.DB
}

func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// approvedOverlap finds an approved booking on the hall whose inclusive
// [start_date, end_date] intersects the given range: S' <= E AND E' >= S.
// The trailing placeholder excludes a booking id (0 matches nothing) so the
// same statement serves creation and re-approval checks. FOR UPDATE locks the
// scanned index range until commit.
const approvedOverlap = `SELECT id FROM bookings
WHERE hall_id = ? AND status = 'approved' AND start_date <= ? AND end_date >= ? AND id <> ?
LIMIT 1 FOR UPDATE`

// Create inserts a pending booking unless its range overlaps an approved one.
// The check and insert run in one serializable transaction; on conflict
// nothing is written and ErrBookingConflict is returned. On success the
// generated id, status and creation time are filled in on b.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := checkOverlapTx(ctx, tx, b.HallID, b.StartDate, b.EndDate, 0); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx,
		"INSERT INTO bookings (user_id, hall_id, start_date, end_date, status) VALUES (?,?,?,?,'pending')",
		b.UserID, b.HallID, b.StartDate, b.EndDate)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	if err := scanBookingTx(ctx, tx, b); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// UpdateStatus moves a booking to the given status on behalf of the owner of
// the hall it targets. The join against halls is the object-level check: a
// booking on someone else's hall is reported as ErrBookingNotFound. A
// transition to approved re-runs the overlap guard against other approved
// bookings, so approving the second of two overlapping pending requests fails
// with ErrBookingConflict and the first approval stands.
func (r *BookingRepo) UpdateStatus(ctx context.Context, bookingID, ownerID uint64, status model.BookingStatus) (*model.Booking, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	b := &model.Booking{ID: bookingID}
	var start, end time.Time
	err = tx.QueryRowContext(ctx,
		`SELECT b.user_id, b.hall_id, b.start_date, b.end_date, b.status, b.created_at
		 FROM bookings b
		 JOIN halls h ON h.id = b.hall_id
		 WHERE b.id = ? AND h.owner_id = ?
		 FOR UPDATE`,
		bookingID, ownerID).
		Scan(&b.UserID, &b.HallID, &start, &end, &b.Status, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	b.StartDate = start.Format(model.DateLayout)
	b.EndDate = end.Format(model.DateLayout)

	if status == model.StatusApproved && b.Status != model.StatusApproved {
		if err := checkOverlapTx(ctx, tx, b.HallID, b.StartDate, b.EndDate, b.ID); err != nil {
			return nil, err
		}
	}

	if _, err := tx.ExecContext(ctx, "UPDATE bookings SET status = ? WHERE id = ?", status, bookingID); err != nil {
		return nil, err
	}
	b.Status = status
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return b, nil
}

// HasApproved reports whether the user holds at least one approved booking
// for the hall. Gates rating submission.
func (r *BookingRepo) HasApproved(ctx context.Context, userID, hallID uint64) (bool, error) {
	var id uint64
	err := r.db.QueryRowContext(ctx,
		"SELECT id FROM bookings WHERE user_id = ? AND hall_id = ? AND status = 'approved' LIMIT 1",
		userID, hallID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListForClient returns the user's own bookings joined with each hall and its
// owner's contact details, newest first.
func (r *BookingRepo) ListForClient(ctx context.Context, userID uint64) ([]*model.BookingDetail, error) {
	const q = `SELECT b.id, b.user_id, b.hall_id, b.start_date, b.end_date, b.status, b.created_at,
	                  h.name, u.name, u.email
	           FROM bookings b
	           JOIN halls h ON h.id = b.hall_id
	           JOIN users u ON u.id = h.owner_id
	           WHERE b.user_id = ?
	           ORDER BY b.created_at DESC`
	return r.queryDetails(ctx, q, false, userID)
}

// ListForOwner returns every booking across the owner's halls joined with the
// requesting client's contact details, newest first.
func (r *BookingRepo) ListForOwner(ctx context.Context, ownerID uint64) ([]*model.BookingDetail, error) {
	const q = `SELECT b.id, b.user_id, b.hall_id, b.start_date, b.end_date, b.status, b.created_at,
	                  h.name, u.name, u.email
	           FROM bookings b
	           JOIN halls h ON h.id = b.hall_id
	           JOIN users u ON u.id = b.user_id
	           WHERE h.owner_id = ?
	           ORDER BY b.created_at DESC`
	return r.queryDetails(ctx, q, true, ownerID)
}

func checkOverlapTx(ctx context.Context, tx *sql.Tx, hallID uint64, start, end string, excludeID uint64) error {
	var existing uint64
	err := tx.QueryRowContext(ctx, approvedOverlap, hallID, end, start, excludeID).Scan(&existing)
	if err == nil {
		return ErrBookingConflict
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	return nil
}

func scanBookingTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	var start, end time.Time
	err := tx.QueryRowContext(ctx,
		"SELECT user_id, hall_id, start_date, end_date, status, created_at FROM bookings WHERE id = ?",
		b.ID).Scan(&b.UserID, &b.HallID, &start, &end, &b.Status, &b.CreatedAt)
	if err != nil {
		return err
	}
	b.StartDate = start.Format(model.DateLayout)
	b.EndDate = end.Format(model.DateLayout)
	return nil
}

// queryDetails scans booking rows where the trailing name/email columns
// describe the counterparty: the client when ownerView is true, otherwise the
// hall's owner.
func (r *BookingRepo) queryDetails(ctx context.Context, query string, ownerView bool, args ...any) ([]*model.BookingDetail, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.BookingDetail
	for rows.Next() {
		d := new(model.BookingDetail)
		var start, end time.Time
		var name, email string
		if err := rows.Scan(&d.ID, &d.UserID, &d.HallID, &start, &end, &d.Status, &d.CreatedAt,
			&d.HallName, &name, &email); err != nil {
			return nil, err
		}
		d.StartDate = start.Format(model.DateLayout)
		d.EndDate = end.Format(model.DateLayout)
		if ownerView {
			d.ClientName, d.ClientEmail = name, email
		} else {
			d.OwnerName, d.OwnerEmail = name, email
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
