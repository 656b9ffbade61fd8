package repository

import (
	"context"

	"github.com/google/uuid"

	"GO2GETHER_CREATOR-HUB/internal/db"
	"GO2GETHER_CREATOR-HUB/internal/models"
)

// UserRepository persists accounts.
type UserRepository struct {
	db db.Querier
}

// NewUserRepository creates a UserRepository.
func NewUserRepository(q db.Querier) *UserRepository {
	return &UserRepository{db: q}
}

const userColumns = `id, email, password_hash, full_name, is_active, created_at, updated_at`

// Create inserts u. u.ID must be set; timestamps are filled from the database.
func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO users (id, email, password_hash, full_name, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`,
		u.ID, u.Email, u.PasswordHash, u.FullName, u.IsActive,
	).Scan(&u.CreatedAt, &u.UpdatedAt)
	return mapError(err, "create user", models.ErrUserNotFound)
}

// GetByID loads a user by id.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var u models.User
	err := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, mapError(err, "get user", models.ErrUserNotFound)
	}
	return &u, nil
}

// GetByEmail loads a user by email, compared case-insensitively.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, mapError(err, "get user by email", models.ErrUserNotFound)
	}
	return &u, nil
}
