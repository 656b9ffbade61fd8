package services

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"GO2GETHER_CREATOR-HUB/internal/events"
	"GO2GETHER_CREATOR-HUB/internal/models"
)

// memDB is an in-memory stand-in for Postgres with the same unique
// constraints and visibility rules as the SQL repositories.
type memDB struct {
	mu        sync.Mutex
	clock     time.Time
	users     map[uuid.UUID]*models.User
	creators  map[uuid.UUID]*models.Creator
	templates map[uuid.UUID]*models.TripTemplate
	links     map[uuid.UUID]*models.AffiliateLink
}

func newMemDB() *memDB {
	return &memDB{
		clock:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		users:     map[uuid.UUID]*models.User{},
		creators:  map[uuid.UUID]*models.Creator{},
		templates: map[uuid.UUID]*models.TripTemplate{},
		links:     map[uuid.UUID]*models.AffiliateLink{},
	}
}

// tick returns a strictly increasing timestamp. Callers hold mu.
func (db *memDB) tick() time.Time {
	db.clock = db.clock.Add(time.Second)
	return db.clock
}

type memUsers struct{ db *memDB }

func (s memUsers) Create(_ context.Context, u *models.User) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, other := range s.db.users {
		if strings.EqualFold(other.Email, u.Email) {
			return models.NewConflictError("users_email_key", "email already registered")
		}
	}
	u.CreatedAt = s.db.tick()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	s.db.users[u.ID] = &cp
	return nil
}

func (s memUsers) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	u, ok := s.db.users[id]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (s memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, u := range s.db.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, models.ErrUserNotFound
}

type memCreators struct{ db *memDB }

func (s memCreators) Create(_ context.Context, c *models.Creator) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, other := range s.db.creators {
		if other.UserID == c.UserID {
			return models.NewConflictError("creators_user_id_key", "creator profile already exists for this user")
		}
		if other.Username == c.Username {
			return models.NewConflictError("creators_username_key", "username already taken")
		}
	}
	c.CreatedAt = s.db.tick()
	c.UpdatedAt = c.CreatedAt
	cp := *c
	s.db.creators[c.ID] = &cp
	return nil
}

func (s memCreators) GetByUserID(_ context.Context, userID uuid.UUID) (*models.Creator, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, c := range s.db.creators {
		if c.UserID == userID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, models.ErrCreatorProfileNotFound
}

func (s memCreators) Update(_ context.Context, c *models.Creator) (*models.Creator, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	stored, ok := s.db.creators[c.ID]
	if !ok {
		return nil, models.ErrCreatorProfileNotFound
	}
	stored.DisplayName = c.DisplayName
	stored.Bio = c.Bio
	stored.UpdatedAt = s.db.tick()
	cp := *stored
	return &cp, nil
}

type memTemplates struct{ db *memDB }

func (s memTemplates) Create(_ context.Context, t *models.TripTemplate) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.creators[t.CreatorID]; !ok {
		return models.ErrCreatorProfileNotFound
	}
	t.CreatedAt = s.db.tick()
	t.UpdatedAt = t.CreatedAt
	cp := *t
	s.db.templates[t.ID] = &cp
	return nil
}

func (s memTemplates) GetOwned(_ context.Context, creatorID, id uuid.UUID) (*models.TripTemplate, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	t, ok := s.db.templates[id]
	if !ok || t.CreatorID != creatorID {
		return nil, models.ErrTemplateNotFound
	}
	cp := *t
	return &cp, nil
}

func (s memTemplates) ListByCreator(_ context.Context, creatorID uuid.UUID, page models.Page) (models.PageResult[*models.TripTemplate], error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return s.page(func(t *models.TripTemplate) bool { return t.CreatorID == creatorID }, page, false), nil
}

func (s memTemplates) Discover(_ context.Context, f models.DiscoverFilter) (models.PageResult[*models.TripTemplate], error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	needle := strings.ToLower(f.Search)
	return s.page(func(t *models.TripTemplate) bool {
		if !s.publicLocked(t) {
			return false
		}
		return needle == "" ||
			strings.Contains(strings.ToLower(t.Title), needle) ||
			strings.Contains(strings.ToLower(t.Description), needle)
	}, f.Page, true), nil
}

func (s memTemplates) publicLocked(t *models.TripTemplate) bool {
	c := s.db.creators[t.CreatorID]
	return t.Status == models.TemplateStatusPublished && c != nil && c.Status != models.CreatorStatusSuspended
}

func (s memTemplates) page(keep func(*models.TripTemplate) bool, page models.Page, withCreator bool) models.PageResult[*models.TripTemplate] {
	page = page.Normalize()
	var all []*models.TripTemplate
	for _, t := range s.db.templates {
		if keep(t) {
			cp := *t
			if withCreator {
				c := s.db.creators[t.CreatorID]
				cp.Creator = &models.CreatorSnapshot{Username: c.Username, DisplayName: c.DisplayName}
			}
			all = append(all, &cp)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID.String() > all[j].ID.String()
	})

	res := models.PageResult[*models.TripTemplate]{TotalCount: len(all), Items: []*models.TripTemplate{}}
	if page.Skip < len(all) {
		end := min(page.Skip+page.Limit, len(all))
		res.Items = all[page.Skip:end]
	}
	return res
}

func (s memTemplates) UpdateDraft(_ context.Context, t *models.TripTemplate) (*models.TripTemplate, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	stored, ok := s.db.templates[t.ID]
	if !ok || stored.CreatorID != t.CreatorID || stored.Status != models.TemplateStatusDraft {
		return nil, models.ErrTemplateNotFound
	}
	stored.Title = t.Title
	stored.Description = t.Description
	stored.CreatorNotes = t.CreatorNotes
	stored.CoreExperience = t.CoreExperience
	stored.FlexibleLogistics = t.FlexibleLogistics
	stored.UpdatedAt = s.db.tick()
	cp := *stored
	return &cp, nil
}

func (s memTemplates) Publish(_ context.Context, creatorID, id uuid.UUID) (*models.TripTemplate, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	t, ok := s.db.templates[id]
	if !ok || t.CreatorID != creatorID || t.Status != models.TemplateStatusDraft {
		return nil, models.ErrTemplateNotFound
	}
	t.Status = models.TemplateStatusPublished
	t.UpdatedAt = s.db.tick()
	cp := *t
	return &cp, nil
}

func (s memTemplates) RecordView(_ context.Context, id uuid.UUID) (*models.TripTemplate, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	t, ok := s.db.templates[id]
	if !ok || !s.publicLocked(t) {
		return nil, models.ErrTemplateNotFound
	}
	t.ViewsCount++
	c := s.db.creators[t.CreatorID]
	cp := *t
	cp.Creator = &models.CreatorSnapshot{Username: c.Username, DisplayName: c.DisplayName}
	return &cp, nil
}

type memAffiliates struct{ db *memDB }

func (s memAffiliates) Create(_ context.Context, l *models.AffiliateLink) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, other := range s.db.links {
		if other.LinkCode == l.LinkCode {
			return models.NewConflictError("affiliate_links_link_code_key", "affiliate link code already in use")
		}
	}
	l.CreatedAt = s.db.tick()
	cp := *l
	s.db.links[l.ID] = &cp
	return nil
}

func (s memAffiliates) ListByCreator(_ context.Context, creatorID uuid.UUID, page models.Page) (models.PageResult[*models.AffiliateLink], error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	page = page.Normalize()
	var all []*models.AffiliateLink
	for _, l := range s.db.links {
		if l.CreatorID == creatorID {
			cp := *l
			all = append(all, &cp)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	res := models.PageResult[*models.AffiliateLink]{TotalCount: len(all), Items: []*models.AffiliateLink{}}
	if page.Skip < len(all) {
		res.Items = all[page.Skip:min(page.Skip+page.Limit, len(all))]
	}
	return res, nil
}

func (s memAffiliates) ResolveCode(_ context.Context, code string) (*models.TripTemplate, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, l := range s.db.links {
		if l.LinkCode != code {
			continue
		}
		t, ok := s.db.templates[l.TemplateID]
		if !ok || !(memTemplates{s.db}).publicLocked(t) {
			break
		}
		l.Clicks++
		t.ViewsCount++
		c := s.db.creators[t.CreatorID]
		cp := *t
		cp.Creator = &models.CreatorSnapshot{Username: c.Username, DisplayName: c.DisplayName}
		return &cp, nil
	}
	return nil, models.ErrAffiliateLinkNotFound
}

// recorder captures published events.
type recorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recorder) Publish(_ context.Context, e events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) types() []events.Type {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.Type, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}

// fixture wires every service against one memDB.
type fixture struct {
	db         *memDB
	events     *recorder
	creators   *CreatorService
	templates  *TemplateService
	discovery  *DiscoveryService
	affiliates *AffiliateService
}

func newFixture() *fixture {
	db := newMemDB()
	rec := &recorder{}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	creators := NewCreatorService(memCreators{db}, models.DefaultCommissionRate, rec, log)
	return &fixture{
		db:         db,
		events:     rec,
		creators:   creators,
		templates:  NewTemplateService(creators, memTemplates{db}, rec, log),
		discovery:  NewDiscoveryService(memTemplates{db}, memAffiliates{db}, log),
		affiliates: NewAffiliateService(creators, memTemplates{db}, memAffiliates{db}, rec, log),
	}
}

func (f *fixture) templateCount() int {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	return len(f.db.templates)
}

func (f *fixture) setCreatorStatus(userID uuid.UUID, status models.CreatorStatus) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	for _, c := range f.db.creators {
		if c.UserID == userID {
			c.Status = status
		}
	}
}
