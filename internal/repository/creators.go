package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"GO2GETHER_CREATOR-HUB/internal/db"
	"GO2GETHER_CREATOR-HUB/internal/models"
)

// CreatorRepository persists creator profiles. Uniqueness of user_id and
// username is enforced by the creators_user_id_key and creators_username_key
// constraints.
type CreatorRepository struct {
	db db.Querier
}

// NewCreatorRepository creates a CreatorRepository.
func NewCreatorRepository(q db.Querier) *CreatorRepository {
	return &CreatorRepository{db: q}
}

const creatorColumns = `id, user_id, username, display_name, bio, status, commission_rate, created_at, updated_at`

func scanCreator(row pgx.Row) (*models.Creator, error) {
	var (
		c      models.Creator
		status string
	)
	if err := row.Scan(&c.ID, &c.UserID, &c.Username, &c.DisplayName, &c.Bio, &status,
		&c.CommissionRate, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.Status = models.CreatorStatus(status)
	return &c, nil
}

// Create inserts c. A second profile for the same user or a taken username
// fails with a *models.ConflictError.
func (r *CreatorRepository) Create(ctx context.Context, c *models.Creator) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO creators (id, user_id, username, display_name, bio, status, commission_rate)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`,
		c.ID, c.UserID, c.Username, c.DisplayName, c.Bio, string(c.Status), c.CommissionRate,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	return mapError(err, "create creator", models.ErrCreatorProfileNotFound)
}

// GetByUserID returns the profile owned by userID.
func (r *CreatorRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Creator, error) {
	c, err := scanCreator(r.db.QueryRow(ctx,
		`SELECT `+creatorColumns+` FROM creators WHERE user_id = $1`, userID))
	if err != nil {
		return nil, mapError(err, "get creator by user", models.ErrCreatorProfileNotFound)
	}
	return c, nil
}

// Update writes the mutable profile fields and returns the stored row.
func (r *CreatorRepository) Update(ctx context.Context, c *models.Creator) (*models.Creator, error) {
	updated, err := scanCreator(r.db.QueryRow(ctx, `
		UPDATE creators
		   SET display_name = $2, bio = $3, updated_at = now()
		 WHERE id = $1
		RETURNING `+creatorColumns,
		c.ID, c.DisplayName, c.Bio))
	if err != nil {
		return nil, mapError(err, "update creator", models.ErrCreatorProfileNotFound)
	}
	return updated, nil
}
