package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	googleOAuth2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"GO2GETHER_CREATOR-HUB/internal/config"
	"GO2GETHER_CREATOR-HUB/internal/dto"
	"GO2GETHER_CREATOR-HUB/internal/utils"
)

const oauthStateCookie = "oauth_state"

// GoogleAuthHandler handles Google OAuth authentication
type GoogleAuthHandler struct {
	accounts     AccountService
	oauth2Config *oauth2.Config
	frontendURL  string

	// fetchUser exchanges an authorization code for the Google profile.
	fetchUser func(ctx context.Context, code string) (*dto.GoogleUserInfo, error)
}

// NewGoogleAuthHandler creates a new GoogleAuthHandler instance
func NewGoogleAuthHandler(accounts AccountService, cfg config.GoogleOAuthConfig) *GoogleAuthHandler {
	h := &GoogleAuthHandler{
		accounts: accounts,
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
		frontendURL: cfg.FrontendCallbackURL,
	}
	h.fetchUser = h.exchangeAndFetch
	return h
}

// GoogleLogin initiates Google OAuth login
// @Summary Google OAuth login
// @Description Initiate Google OAuth login flow
// @Tags authentication
// @Produce json
// @Success 200 {object} dto.GoogleLoginResponse "Google OAuth URL"
// @Router /api/auth/google/login [get]
func (h *GoogleAuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	state := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/api/auth/google",
		Expires:  time.Now().Add(10 * time.Minute),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	utils.WriteJSONResponse(w, http.StatusOK, dto.GoogleLoginResponse{
		AuthURL: h.oauth2Config.AuthCodeURL(state, oauth2.AccessTypeOffline),
		State:   state,
	})
}

// GoogleCallback handles Google OAuth callback
// @Summary Google OAuth callback
// @Description Exchange the authorization code and redirect to the frontend with a bearer token
// @Tags authentication
// @Param code query string true "Authorization code from Google"
// @Param state query string false "State parameter for CSRF protection"
// @Success 302 "Redirect to the frontend callback"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid authorization code"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/auth/google/callback [get]
func (h *GoogleAuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, utils.CodeBadRequest, "Authorization code is required")
		return
	}
	if c, err := r.Cookie(oauthStateCookie); err == nil && c.Value != r.URL.Query().Get("state") {
		utils.WriteErrorResponse(w, http.StatusBadRequest, utils.CodeBadRequest, "OAuth state mismatch")
		return
	}

	info, err := h.fetchUser(r.Context(), code)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, utils.CodeUnauthorized, "Invalid authorization code")
		return
	}
	if !info.Verified {
		utils.WriteErrorResponse(w, http.StatusForbidden, utils.CodeForbidden, "Google email address is not verified")
		return
	}

	user, token, err := h.accounts.LoginWithGoogle(r.Context(), info.Email, info.Name)
	if err != nil {
		utils.WriteServiceError(w, r, err)
		return
	}

	target, err := url.Parse(h.frontendURL)
	if err != nil {
		utils.WriteServiceError(w, r, errors.New("invalid frontend callback url"))
		return
	}
	q := target.Query()
	q.Set("token", token)
	q.Set("user_id", user.ID.String())
	q.Set("email", user.Email)
	q.Set("provider", "google")
	target.RawQuery = q.Encode()

	http.Redirect(w, r, target.String(), http.StatusFound)
}

// exchangeAndFetch trades the code for an access token and reads the
// Google userinfo endpoint.
func (h *GoogleAuthHandler) exchangeAndFetch(ctx context.Context, code string) (*dto.GoogleUserInfo, error) {
	token, err := h.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}

	service, err := googleOAuth2.NewService(ctx, option.WithTokenSource(h.oauth2Config.TokenSource(ctx, token)))
	if err != nil {
		return nil, err
	}
	userInfo, err := service.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return nil, err
	}

	verified := false
	if userInfo.VerifiedEmail != nil {
		verified = *userInfo.VerifiedEmail
	}
	return &dto.GoogleUserInfo{
		ID:       userInfo.Id,
		Email:    userInfo.Email,
		Name:     userInfo.Name,
		Picture:  userInfo.Picture,
		Verified: verified,
	}, nil
}
