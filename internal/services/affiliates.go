package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/google/uuid"

	"GO2GETHER_CREATOR-HUB/internal/events"
	"GO2GETHER_CREATOR-HUB/internal/models"
)

const (
	affiliateCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	affiliateCodeAttempts = 5
	linkCodeConstraint    = "affiliate_links_link_code_key"
)

// AffiliateService manages the affiliate links creators share for their
// published templates.
type AffiliateService struct {
	creators   *CreatorService
	templates  TemplateStore
	affiliates AffiliateStore
	events     events.Publisher
	log        *slog.Logger
	newCode    func() (string, error)
}

// NewAffiliateService creates an AffiliateService.
func NewAffiliateService(creators *CreatorService, templates TemplateStore, affiliates AffiliateStore, pub events.Publisher, log *slog.Logger) *AffiliateService {
	return &AffiliateService{
		creators:   creators,
		templates:  templates,
		affiliates: affiliates,
		events:     pub,
		log:        log.With("service", "affiliates"),
		newCode:    generateAffiliateCode,
	}
}

// Create issues a new link for one of the caller's published templates.
func (s *AffiliateService) Create(ctx context.Context, userID, templateID uuid.UUID) (*models.AffiliateLink, error) {
	c, err := s.creators.RequireActive(ctx, userID)
	if err != nil {
		return nil, err
	}
	t, err := s.templates.GetOwned(ctx, c.ID, templateID)
	if err != nil {
		return nil, err
	}
	if t.Status != models.TemplateStatusPublished {
		return nil, fmt.Errorf("%w: affiliate links can only be created for published templates", models.ErrInvalidState)
	}

	for attempt := 1; ; attempt++ {
		code, err := s.newCode()
		if err != nil {
			return nil, fmt.Errorf("generate affiliate code: %w", err)
		}
		l := &models.AffiliateLink{
			ID:         uuid.New(),
			TemplateID: t.ID,
			CreatorID:  c.ID,
			LinkCode:   code,
		}
		err = s.affiliates.Create(ctx, l)

		var conflict *models.ConflictError
		if errors.As(err, &conflict) && conflict.Constraint == linkCodeConstraint && attempt < affiliateCodeAttempts {
			s.log.WarnContext(ctx, "affiliate code collision, retrying", slog.Int("attempt", attempt))
			continue
		}
		if err != nil {
			return nil, err
		}

		s.events.Publish(ctx, events.Event{
			Type:     events.AffiliateLinkCreated,
			ActorID:  userID,
			EntityID: l.ID,
			Data:     map[string]any{"template_id": t.ID.String(), "link_code": l.LinkCode},
		})
		return l, nil
	}
}

// ListMine returns one page of the caller's links, newest first.
func (s *AffiliateService) ListMine(ctx context.Context, userID uuid.UUID, page models.Page) (models.PageResult[*models.AffiliateLink], error) {
	c, err := s.creators.GetProfile(ctx, userID)
	if err != nil {
		return models.PageResult[*models.AffiliateLink]{}, err
	}
	return s.affiliates.ListByCreator(ctx, c.ID, page.Normalize())
}

func generateAffiliateCode() (string, error) {
	alphabetLen := big.NewInt(int64(len(affiliateCodeAlphabet)))
	b := make([]byte, models.AffiliateCodeLength)
	for i := range b {
		n, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", err
		}
		b[i] = affiliateCodeAlphabet[n.Int64()]
	}
	return string(b), nil
}
