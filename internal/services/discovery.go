package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"GO2GETHER_CREATOR-HUB/internal/models"
)

// DiscoveryService serves the public catalogue. It needs no identity.
type DiscoveryService struct {
	templates  TemplateStore
	affiliates AffiliateStore
	log        *slog.Logger
}

// NewDiscoveryService creates a DiscoveryService.
func NewDiscoveryService(templates TemplateStore, affiliates AffiliateStore, log *slog.Logger) *DiscoveryService {
	return &DiscoveryService{templates: templates, affiliates: affiliates, log: log.With("service", "discovery")}
}

// Discover lists published templates of non-suspended creators, newest
// first, optionally narrowed by a case-insensitive substring of title or
// description.
func (s *DiscoveryService) Discover(ctx context.Context, f models.DiscoverFilter) (models.PageResult[*models.TripTemplate], error) {
	f.Search = strings.TrimSpace(f.Search)
	f.Page = f.Page.Normalize()
	return s.templates.Discover(ctx, f)
}

// View returns a public template and counts the view.
func (s *DiscoveryService) View(ctx context.Context, templateID uuid.UUID) (*models.TripTemplate, error) {
	return s.templates.RecordView(ctx, templateID)
}

// ResolveAffiliate returns the public template behind an affiliate code,
// counting a click on the link and a view on the template.
func (s *DiscoveryService) ResolveAffiliate(ctx context.Context, code string) (*models.TripTemplate, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, models.ErrAffiliateLinkNotFound
	}
	t, err := s.affiliates.ResolveCode(ctx, code)
	if err != nil {
		return nil, err
	}
	s.log.DebugContext(ctx, "affiliate link followed",
		slog.String("template_id", t.ID.String()),
	)
	return t, nil
}
