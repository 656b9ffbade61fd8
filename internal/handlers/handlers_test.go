package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GO2GETHER_CREATOR-HUB/internal/config"
	"GO2GETHER_CREATOR-HUB/internal/dto"
	"GO2GETHER_CREATOR-HUB/internal/models"
	"GO2GETHER_CREATOR-HUB/internal/services"
	"GO2GETHER_CREATOR-HUB/internal/utils"
)

type stubAccounts struct {
	googleEmail string
}

func (s *stubAccounts) Register(_ context.Context, in services.RegisterInput) (*models.User, string, error) {
	if in.Email == "taken@example.com" {
		return nil, "", models.NewConflictError("users_email_key", "email is already registered")
	}
	return &models.User{ID: uuid.New(), Email: in.Email, IsActive: true}, "tok", nil
}

func (s *stubAccounts) Login(_ context.Context, email, password string) (*models.User, string, error) {
	if password != "correct-horse" {
		return nil, "", models.ErrUnauthorized
	}
	return &models.User{ID: uuid.New(), Email: email, IsActive: true}, "tok", nil
}

func (s *stubAccounts) LoginWithGoogle(_ context.Context, email, _ string) (*models.User, string, error) {
	s.googleEmail = email
	return &models.User{ID: uuid.New(), Email: email, IsActive: true}, "google-tok", nil
}

func (s *stubAccounts) Me(_ context.Context, userID uuid.UUID) (*models.User, error) {
	return &models.User{ID: userID, Email: "me@example.com", IsActive: true}, nil
}

type stubProfiles struct {
	profiles map[uuid.UUID]*models.Creator
}

func (s *stubProfiles) GetProfile(_ context.Context, userID uuid.UUID) (*models.Creator, error) {
	if c, ok := s.profiles[userID]; ok {
		return c, nil
	}
	return nil, models.ErrCreatorProfileNotFound
}

func (s *stubProfiles) CreateProfile(_ context.Context, userID uuid.UUID, in models.CreateCreatorInput) (*models.Creator, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if _, ok := s.profiles[userID]; ok {
		return nil, models.NewConflictError("creators_user_id_key", "user already has a creator profile")
	}
	c := &models.Creator{
		ID: uuid.New(), UserID: userID, Username: in.Username, DisplayName: in.DisplayName,
		Status: models.CreatorStatusActive, CommissionRate: models.DefaultCommissionRate,
	}
	s.profiles[userID] = c
	return c, nil
}

func (s *stubProfiles) UpdateProfile(ctx context.Context, userID uuid.UUID, in models.UpdateCreatorInput) (*models.Creator, error) {
	c, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if in.DisplayName != nil {
		c.DisplayName = *in.DisplayName
	}
	return c, nil
}

type stubAuthoring struct {
	templates map[uuid.UUID]*models.TripTemplate
}

func (s *stubAuthoring) ListMine(context.Context, uuid.UUID, models.Page) (models.PageResult[*models.TripTemplate], error) {
	return models.PageResult[*models.TripTemplate]{Items: []*models.TripTemplate{}}, nil
}

func (s *stubAuthoring) Create(_ context.Context, _ uuid.UUID, in models.CreateTemplateInput) (*models.TripTemplate, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	t := &models.TripTemplate{
		ID: uuid.New(), Title: in.Title, Description: in.Description,
		CoreExperience: in.CoreExperience, Status: in.Status,
	}
	s.templates[t.ID] = t
	return t, nil
}

func (s *stubAuthoring) Get(_ context.Context, _, id uuid.UUID) (*models.TripTemplate, error) {
	if t, ok := s.templates[id]; ok {
		return t, nil
	}
	return nil, models.ErrTemplateNotFound
}

func (s *stubAuthoring) Update(ctx context.Context, userID, id uuid.UUID, _ models.UpdateTemplateInput) (*models.TripTemplate, error) {
	return s.Get(ctx, userID, id)
}

func (s *stubAuthoring) Publish(ctx context.Context, userID, id uuid.UUID) (*models.TripTemplate, error) {
	t, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if t.Status == models.TemplateStatusPublished {
		return nil, errors.Join(models.ErrInvalidState, errors.New("template is already published"))
	}
	t.Status = models.TemplateStatusPublished
	return t, nil
}

type stubCatalogue struct {
	lastFilter models.DiscoverFilter
}

func (s *stubCatalogue) Discover(_ context.Context, f models.DiscoverFilter) (models.PageResult[*models.TripTemplate], error) {
	s.lastFilter = f
	return models.PageResult[*models.TripTemplate]{
		Items: []*models.TripTemplate{{
			ID: uuid.New(), Title: "7-Day Tokyo Adventure", Status: models.TemplateStatusPublished,
			Creator: &models.CreatorSnapshot{Username: "ana", DisplayName: "Ana"},
		}},
		TotalCount: 1,
	}, nil
}

func (s *stubCatalogue) View(context.Context, uuid.UUID) (*models.TripTemplate, error) {
	return nil, models.ErrTemplateNotFound
}

func (s *stubCatalogue) ResolveAffiliate(_ context.Context, code string) (*models.TripTemplate, error) {
	if code != "aB3dE5fG7hJ9" {
		return nil, models.ErrAffiliateLinkNotFound
	}
	return &models.TripTemplate{ID: uuid.New(), Title: "Kyoto", ViewsCount: 3}, nil
}

func withUser(r *http.Request, id uuid.UUID) *http.Request {
	return r.WithContext(utils.WithUser(r.Context(), &models.User{ID: id, IsActive: true}))
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestAuthHandler(t *testing.T) {
	h := NewAuthHandler(&stubAccounts{})

	t.Run("register created", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Register(rec, httptest.NewRequest(http.MethodPost, "/api/auth/register",
			strings.NewReader(`{"email":"new@example.com","password":"correct-horse"}`)))

		assert.Equal(t, http.StatusCreated, rec.Code)
		resp := decode[dto.AuthResponse](t, rec)
		assert.Equal(t, "tok", resp.Token)
		assert.Equal(t, "bearer", resp.TokenType)
	})

	t.Run("register duplicate", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Register(rec, httptest.NewRequest(http.MethodPost, "/api/auth/register",
			strings.NewReader(`{"email":"taken@example.com","password":"correct-horse"}`)))

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("login missing fields", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Login(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"a@b.c"}`)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("login bad password", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Login(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login",
			strings.NewReader(`{"email":"a@b.c","password":"nope"}`)))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("me without identity", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Me(rec, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestCreatorHandler(t *testing.T) {
	h := NewCreatorHandler(&stubProfiles{profiles: map[uuid.UUID]*models.Creator{}})
	userID := uuid.New()

	rec := httptest.NewRecorder()
	h.GetMe(rec, withUser(httptest.NewRequest(http.MethodGet, "/api/creators/me", nil), userID))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, utils.CodeCreatorProfileNotFound, decode[dto.ErrorResponse](t, rec).Code)

	rec = httptest.NewRecorder()
	h.CreateMe(rec, withUser(httptest.NewRequest(http.MethodPost, "/api/creators/me",
		strings.NewReader(`{"username":"","display_name":""}`)), userID))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NotEmpty(t, decode[dto.ErrorResponse](t, rec).Fields)

	rec = httptest.NewRecorder()
	h.CreateMe(rec, withUser(httptest.NewRequest(http.MethodPost, "/api/creators/me",
		strings.NewReader(`{"username":"ana","display_name":"Ana"}`)), userID))
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[dto.CreatorResponse](t, rec)
	assert.Equal(t, "active", created.Status)
	assert.Equal(t, models.DefaultCommissionRate, created.CommissionRate)

	rec = httptest.NewRecorder()
	h.CreateMe(rec, withUser(httptest.NewRequest(http.MethodPost, "/api/creators/me",
		strings.NewReader(`{"username":"ana2","display_name":"Ana"}`)), userID))
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = httptest.NewRecorder()
	h.UpdateMe(rec, withUser(httptest.NewRequest(http.MethodPut, "/api/creators/me",
		strings.NewReader(`{"display_name":"Ana M."}`)), userID))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Ana M.", decode[dto.CreatorResponse](t, rec).DisplayName)
}

func TestTemplateHandler(t *testing.T) {
	h := NewTemplateHandler(&stubAuthoring{templates: map[uuid.UUID]*models.TripTemplate{}})
	userID := uuid.New()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /templates", h.Create)
	mux.HandleFunc("GET /templates", h.ListMine)
	mux.HandleFunc("GET /templates/{id}", h.Get)
	mux.HandleFunc("POST /templates/{id}/publish", h.Publish)
	do := func(method, target, body string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		r := httptest.NewRequest(method, target, strings.NewReader(body))
		mux.ServeHTTP(rec, withUser(r, userID))
		return rec
	}

	rec := do(http.MethodPost, "/templates", `{"title":"","description":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(http.MethodPost, "/templates", `{"title":"Tokyo","description":"Ramen","core_experience":{"days":7,"cities":["Tokyo"]}}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[dto.TemplateResponse](t, rec)
	assert.Equal(t, "draft", created.Status)
	assert.Len(t, created.CoreExperience, 2)
	assert.NotNil(t, created.FlexibleLogistics)

	rec = do(http.MethodPost, "/templates/"+created.ID+"/publish", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "published", decode[dto.TemplateResponse](t, rec).Status)

	rec = do(http.MethodPost, "/templates/"+created.ID+"/publish", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, utils.CodeInvalidState, decode[dto.ErrorResponse](t, rec).Code)

	rec = do(http.MethodGet, "/templates/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, utils.CodeTemplateNotFound, decode[dto.ErrorResponse](t, rec).Code)

	rec = do(http.MethodGet, "/templates/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(http.MethodGet, "/templates?skip=-1", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(http.MethodGet, "/templates", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"items":[],"total_count":0,"skip":0,"limit":100}`, rec.Body.String())
}

func TestDiscoveryHandler(t *testing.T) {
	cat := &stubCatalogue{}
	h := NewDiscoveryHandler(cat)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/templates", h.Discover)
	mux.HandleFunc("GET /api/templates/{id}", h.GetTemplate)
	mux.HandleFunc("GET /api/templates/by-affiliate/{code}", h.GetByAffiliate)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/templates?search=tokyo&skip=0&limit=10", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[dto.TemplateListResponse](t, rec)
	assert.Equal(t, 1, list.TotalCount)
	assert.Equal(t, 10, list.Limit)
	require.NotNil(t, list.Items[0].Creator)
	assert.Equal(t, "ana", list.Items[0].Creator.Username)
	assert.Equal(t, "tokyo", cat.lastFilter.Search)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/templates/"+uuid.NewString(), nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/templates/by-affiliate/aB3dE5fG7hJ9", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(3), decode[dto.TemplateResponse](t, rec).ViewsCount)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/templates/by-affiliate/unknown", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, utils.CodeAffiliateLinkNotFound, decode[dto.ErrorResponse](t, rec).Code)
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func TestHealthHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHealthHandler(stubPinger{}).ReadinessCheck(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	ready := decode[dto.HealthResponse](t, rec)
	assert.Equal(t, "ready", ready.Status)
	require.NotNil(t, ready.Components)
	assert.Equal(t, "ok", ready.Components.Database)

	rec = httptest.NewRecorder()
	NewHealthHandler(stubPinger{err: errors.New("db down")}).ReadinessCheck(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	degraded := decode[dto.HealthResponse](t, rec)
	assert.Equal(t, "degraded", degraded.Status)
	require.NotNil(t, degraded.Components)
	assert.Equal(t, "unreachable", degraded.Components.Database)
	assert.NotContains(t, rec.Body.String(), "db down")

	rec = httptest.NewRecorder()
	NewHealthHandler(nil).LivenessCheck(rec, httptest.NewRequest(http.MethodGet, "/livez", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func newGoogleHandler(accounts AccountService, info *dto.GoogleUserInfo, err error) *GoogleAuthHandler {
	h := NewGoogleAuthHandler(accounts, config.GoogleOAuthConfig{
		ClientID:            "client",
		ClientSecret:        "secret",
		RedirectURL:         "http://localhost:8080/api/auth/google/callback",
		FrontendCallbackURL: "http://localhost:5173/auth/callback",
	})
	h.fetchUser = func(context.Context, string) (*dto.GoogleUserInfo, error) { return info, err }
	return h
}

func TestGoogleLogin(t *testing.T) {
	h := newGoogleHandler(&stubAccounts{}, nil, nil)
	rec := httptest.NewRecorder()
	h.GoogleLogin(rec, httptest.NewRequest(http.MethodGet, "/api/auth/google/login", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[dto.GoogleLoginResponse](t, rec)
	assert.Contains(t, resp.AuthURL, "accounts.google.com")
	assert.Contains(t, resp.AuthURL, "state="+resp.State)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, oauthStateCookie, cookies[0].Name)
	assert.Equal(t, resp.State, cookies[0].Value)
}

func TestGoogleCallback(t *testing.T) {
	verified := &dto.GoogleUserInfo{Email: "ana@example.com", Name: "Ana", Verified: true}

	t.Run("redirects with token", func(t *testing.T) {
		accounts := &stubAccounts{}
		h := newGoogleHandler(accounts, verified, nil)
		r := httptest.NewRequest(http.MethodGet, "/api/auth/google/callback?code=abc&state=s1", nil)
		r.AddCookie(&http.Cookie{Name: oauthStateCookie, Value: "s1", Expires: time.Now().Add(time.Minute)})
		rec := httptest.NewRecorder()
		h.GoogleCallback(rec, r)

		require.Equal(t, http.StatusFound, rec.Code)
		loc, err := url.Parse(rec.Header().Get("Location"))
		require.NoError(t, err)
		assert.Equal(t, "/auth/callback", loc.Path)
		assert.Equal(t, "google-tok", loc.Query().Get("token"))
		assert.Equal(t, "google", loc.Query().Get("provider"))
		assert.Equal(t, "ana@example.com", accounts.googleEmail)
	})

	t.Run("missing code", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newGoogleHandler(&stubAccounts{}, verified, nil).
			GoogleCallback(rec, httptest.NewRequest(http.MethodGet, "/api/auth/google/callback", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("state mismatch", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/auth/google/callback?code=abc&state=other", nil)
		r.AddCookie(&http.Cookie{Name: oauthStateCookie, Value: "s1"})
		rec := httptest.NewRecorder()
		newGoogleHandler(&stubAccounts{}, verified, nil).GoogleCallback(rec, r)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("exchange failure", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newGoogleHandler(&stubAccounts{}, nil, errors.New("invalid_grant")).
			GoogleCallback(rec, httptest.NewRequest(http.MethodGet, "/api/auth/google/callback?code=abc", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unverified email", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newGoogleHandler(&stubAccounts{}, &dto.GoogleUserInfo{Email: "x@example.com"}, nil).
			GoogleCallback(rec, httptest.NewRequest(http.MethodGet, "/api/auth/google/callback?code=abc", nil))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
