package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"GO2GETHER_CREATOR-HUB/internal/events"
	"GO2GETHER_CREATOR-HUB/internal/models"
)

// CreatorService manages creator profiles.
type CreatorService struct {
	creators       CreatorStore
	commissionRate float64
	events         events.Publisher
	log            *slog.Logger
}

// NewCreatorService creates a CreatorService. New profiles get commissionRate.
func NewCreatorService(creators CreatorStore, commissionRate float64, pub events.Publisher, log *slog.Logger) *CreatorService {
	return &CreatorService{
		creators:       creators,
		commissionRate: commissionRate,
		events:         pub,
		log:            log.With("service", "creators"),
	}
}

// GetProfile returns the user's creator profile or models.ErrCreatorProfileNotFound.
func (s *CreatorService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.Creator, error) {
	return s.creators.GetByUserID(ctx, userID)
}

// CreateProfile sets up the user's one creator profile. New profiles are
// active and carry the default commission rate. A second profile for the same
// user, or a taken username, is a conflict; the store's unique constraints
// settle concurrent attempts.
func (s *CreatorService) CreateProfile(ctx context.Context, userID uuid.UUID, in models.CreateCreatorInput) (*models.Creator, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	_, err := s.creators.GetByUserID(ctx, userID)
	switch {
	case err == nil:
		return nil, models.NewConflictError("creators_user_id_key", "creator profile already exists for this user")
	case !errors.Is(err, models.ErrCreatorProfileNotFound):
		return nil, err
	}

	c := &models.Creator{
		ID:             uuid.New(),
		UserID:         userID,
		Username:       in.Username,
		DisplayName:    in.DisplayName,
		Bio:            in.Bio,
		Status:         models.CreatorStatusActive,
		CommissionRate: s.commissionRate,
	}
	if err := s.creators.Create(ctx, c); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "creator profile created",
		slog.String("creator_id", c.ID.String()),
		slog.String("username", c.Username),
	)
	s.events.Publish(ctx, events.Event{
		Type:     events.CreatorProfileCreated,
		ActorID:  userID,
		EntityID: c.ID,
		Data:     map[string]any{"username": c.Username},
	})
	return c, nil
}

// UpdateProfile patches display_name and bio. Username cannot change.
func (s *CreatorService) UpdateProfile(ctx context.Context, userID uuid.UUID, in models.UpdateCreatorInput) (*models.Creator, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	c, err := s.creators.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if in.IsEmpty() {
		return c, nil
	}
	if in.DisplayName != nil {
		c.DisplayName = *in.DisplayName
	}
	if in.Bio != nil {
		c.Bio = trimmed(in.Bio)
	}

	updated, err := s.creators.Update(ctx, c)
	if err != nil {
		return nil, err
	}
	s.events.Publish(ctx, events.Event{
		Type:     events.CreatorProfileUpdated,
		ActorID:  userID,
		EntityID: updated.ID,
	})
	return updated, nil
}

// RequireActive returns the user's profile if it may author content.
func (s *CreatorService) RequireActive(ctx context.Context, userID uuid.UUID) (*models.Creator, error) {
	c, err := s.creators.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	switch c.Status {
	case models.CreatorStatusActive:
		return c, nil
	case models.CreatorStatusPending:
		return nil, fmt.Errorf("%w: creator account is pending approval", models.ErrForbidden)
	case models.CreatorStatusSuspended:
		return nil, fmt.Errorf("%w: creator account is suspended", models.ErrForbidden)
	default:
		return nil, fmt.Errorf("%w: creator account is %s", models.ErrForbidden, c.Status)
	}
}
