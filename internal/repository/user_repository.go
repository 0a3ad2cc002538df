package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/wedding-hall-booking/internal/model"
	"github.com/iliyamo/wedding-hall-booking/internal/utils"
)

type UserRepo struct{ db *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

const userCols = "id, name, email, password_hash, role, profile_picture, created_at"

// Create hashes the password, inserts the user and returns the stored row.
// A duplicate email maps to ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, name, email, password string, role model.Role, cost int) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return nil, err
	}
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO users (name, email, password_hash, role) VALUES (?,?,?,?)",
		name, email, hash, role)
	if err != nil {
		if duplicateKey(err) {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByEmail fetches a user by normalized email. Returns sql.ErrNoRows when
// no account exists; login treats that the same as a bad password.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.scanOne(ctx, "SELECT "+userCols+" FROM users WHERE email = ? LIMIT 1", email)
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	return r.scanOne(ctx, "SELECT "+userCols+" FROM users WHERE id = ? LIMIT 1", id)
}

// UpdateName renames the user and returns the updated row.
func (r *UserRepo) UpdateName(ctx context.Context, id uint64, name string) (*model.User, error) {
	if _, err := r.db.ExecContext(ctx, "UPDATE users SET name = ? WHERE id = ?", name, id); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// UpdateProfilePicture stores the served URL of the user's picture and
// returns the updated row.
func (r *UserRepo) UpdateProfilePicture(ctx context.Context, id uint64, url string) (*model.User, error) {
	if _, err := r.db.ExecContext(ctx, "UPDATE users SET profile_picture = ? WHERE id = ?", url, id); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *UserRepo) scanOne(ctx context.Context, query string, args ...any) (*model.User, error) {
	var (
		u       model.User
		role    string
		picture sql.NullString
	)
	err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &role, &picture, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	u.Role = model.Role(role)
	if picture.Valid {
		u.ProfilePicture = &picture.String
	}
	return &u, nil
}
