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

// TemplateService lets a creator author and publish trip templates. Every
// operation is scoped to the caller's own profile; templates of other
// creators look exactly like missing ones.
type TemplateService struct {
	creators  *CreatorService
	templates TemplateStore
	events    events.Publisher
	log       *slog.Logger
}

// NewTemplateService creates a TemplateService.
func NewTemplateService(creators *CreatorService, templates TemplateStore, pub events.Publisher, log *slog.Logger) *TemplateService {
	return &TemplateService{
		creators:  creators,
		templates: templates,
		events:    pub,
		log:       log.With("service", "templates"),
	}
}

// ListMine returns one page of the caller's templates in every status,
// newest first.
func (s *TemplateService) ListMine(ctx context.Context, userID uuid.UUID, page models.Page) (models.PageResult[*models.TripTemplate], error) {
	c, err := s.creators.GetProfile(ctx, userID)
	if err != nil {
		return models.PageResult[*models.TripTemplate]{}, err
	}
	return s.templates.ListByCreator(ctx, c.ID, page.Normalize())
}

// Create stores a new template. Status defaults to draft; attribute maps the
// caller leaves out are stored empty.
func (s *TemplateService) Create(ctx context.Context, userID uuid.UUID, in models.CreateTemplateInput) (*models.TripTemplate, error) {
	c, err := s.creators.RequireActive(ctx, userID)
	if err != nil {
		return nil, err
	}
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	t := &models.TripTemplate{
		ID:                uuid.New(),
		CreatorID:         c.ID,
		Title:             in.Title,
		Description:       in.Description,
		CreatorNotes:      in.CreatorNotes,
		CoreExperience:    in.CoreExperience,
		FlexibleLogistics: in.FlexibleLogistics,
		Status:            in.Status,
	}
	if err := s.templates.Create(ctx, t); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "template created",
		slog.String("template_id", t.ID.String()),
		slog.String("creator_id", c.ID.String()),
		slog.String("status", string(t.Status)),
	)
	s.events.Publish(ctx, events.Event{
		Type:     events.TemplateCreated,
		ActorID:  userID,
		EntityID: t.ID,
		Data:     map[string]any{"title": t.Title, "status": string(t.Status)},
	})
	if t.Status == models.TemplateStatusPublished {
		s.events.Publish(ctx, events.Event{
			Type:     events.TemplatePublished,
			ActorID:  userID,
			EntityID: t.ID,
			Data:     map[string]any{"title": t.Title},
		})
	}
	return t, nil
}

// Get returns one of the caller's templates.
func (s *TemplateService) Get(ctx context.Context, userID, templateID uuid.UUID) (*models.TripTemplate, error) {
	c, err := s.creators.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.templates.GetOwned(ctx, c.ID, templateID)
}

// Update patches one of the caller's drafts. Published templates are frozen.
func (s *TemplateService) Update(ctx context.Context, userID, templateID uuid.UUID, in models.UpdateTemplateInput) (*models.TripTemplate, error) {
	c, err := s.creators.RequireActive(ctx, userID)
	if err != nil {
		return nil, err
	}
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	t, err := s.templates.GetOwned(ctx, c.ID, templateID)
	if err != nil {
		return nil, err
	}
	if t.Status != models.TemplateStatusDraft {
		return nil, fmt.Errorf("%w: only draft templates can be edited", models.ErrInvalidState)
	}
	if in.IsEmpty() {
		return t, nil
	}
	in.Apply(t)

	updated, err := s.templates.UpdateDraft(ctx, t)
	if errors.Is(err, models.ErrTemplateNotFound) {
		// Published between the read and the write.
		return nil, s.classifyMissing(ctx, c.ID, templateID, "only draft templates can be edited")
	}
	if err != nil {
		return nil, err
	}

	s.events.Publish(ctx, events.Event{
		Type:     events.TemplateUpdated,
		ActorID:  userID,
		EntityID: updated.ID,
	})
	return updated, nil
}

// Publish makes one of the caller's drafts publicly discoverable. Publishing
// an already published template is models.ErrInvalidState.
func (s *TemplateService) Publish(ctx context.Context, userID, templateID uuid.UUID) (*models.TripTemplate, error) {
	c, err := s.creators.RequireActive(ctx, userID)
	if err != nil {
		return nil, err
	}

	t, err := s.templates.Publish(ctx, c.ID, templateID)
	if errors.Is(err, models.ErrTemplateNotFound) {
		return nil, s.classifyMissing(ctx, c.ID, templateID, "template is already published")
	}
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "template published",
		slog.String("template_id", t.ID.String()),
		slog.String("creator_id", c.ID.String()),
	)
	s.events.Publish(ctx, events.Event{
		Type:     events.TemplatePublished,
		ActorID:  userID,
		EntityID: t.ID,
		Data:     map[string]any{"title": t.Title},
	})
	return t, nil
}

// classifyMissing explains why a draft-only write matched no row: the
// template is absent or not owned, or it is no longer a draft.
func (s *TemplateService) classifyMissing(ctx context.Context, creatorID, templateID uuid.UUID, stateMsg string) error {
	t, err := s.templates.GetOwned(ctx, creatorID, templateID)
	if err != nil {
		return err
	}
	if t.Status != models.TemplateStatusDraft {
		return fmt.Errorf("%w: %s", models.ErrInvalidState, stateMsg)
	}
	return fmt.Errorf("%w: template changed concurrently", models.ErrConflict)
}
