// Package services holds the creator hub's business rules. Services depend on
// the store interfaces below, publish domain events, and return the error
// kinds declared in package models.
package services

import (
	"context"

	"github.com/google/uuid"

	"GO2GETHER_CREATOR-HUB/internal/models"
)

// UserStore persists accounts.
type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// CreatorStore persists creator profiles. Create must fail with a
// *models.ConflictError when the user or the username already has a profile.
type CreatorStore interface {
	Create(ctx context.Context, c *models.Creator) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Creator, error)
	Update(ctx context.Context, c *models.Creator) (*models.Creator, error)
}

// TemplateStore persists trip templates.
type TemplateStore interface {
	Create(ctx context.Context, t *models.TripTemplate) error
	GetOwned(ctx context.Context, creatorID, id uuid.UUID) (*models.TripTemplate, error)
	ListByCreator(ctx context.Context, creatorID uuid.UUID, page models.Page) (models.PageResult[*models.TripTemplate], error)
	UpdateDraft(ctx context.Context, t *models.TripTemplate) (*models.TripTemplate, error)
	Publish(ctx context.Context, creatorID, id uuid.UUID) (*models.TripTemplate, error)
	Discover(ctx context.Context, f models.DiscoverFilter) (models.PageResult[*models.TripTemplate], error)
	RecordView(ctx context.Context, id uuid.UUID) (*models.TripTemplate, error)
}

// AffiliateStore persists affiliate links.
type AffiliateStore interface {
	Create(ctx context.Context, l *models.AffiliateLink) error
	ListByCreator(ctx context.Context, creatorID uuid.UUID, page models.Page) (models.PageResult[*models.AffiliateLink], error)
	ResolveCode(ctx context.Context, code string) (*models.TripTemplate, error)
}
