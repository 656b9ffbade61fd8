package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"GO2GETHER_CREATOR-HUB/internal/models"
)

const (
	PasswordMinLen = 8
	PasswordMaxLen = 40
)

// TokenIssuer signs and verifies bearer tokens.
type TokenIssuer interface {
	GenerateToken(userID uuid.UUID, email string) (string, error)
	ValidateToken(token string) (uuid.UUID, error)
}

// RegisterInput holds the fields of a new password account.
type RegisterInput struct {
	Email    string
	Password string
	FullName *string
}

// AuthService manages accounts and resolves bearer tokens to users.
type AuthService struct {
	users  UserStore
	tokens TokenIssuer
	log    *slog.Logger
}

// NewAuthService creates an AuthService.
func NewAuthService(users UserStore, tokens TokenIssuer, log *slog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, log: log.With("service", "auth")}
}

// Register creates a password account and returns it with a fresh token.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	v := &models.ValidationError{}
	if email == "" {
		v.Add("email", "is required")
	} else if !strings.Contains(email, "@") {
		v.Add("email", "must be a valid email address")
	}
	if n := len(in.Password); n < PasswordMinLen || n > PasswordMaxLen {
		v.Add("password", "must be between 8 and 40 characters")
	}
	if err := v.OrNil(); err != nil {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	u := &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		FullName:     trimmed(in.FullName),
		IsActive:     true,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, "", err
	}
	s.log.InfoContext(ctx, "user registered", slog.String("user_id", u.ID.String()))

	token, err := s.tokens.GenerateToken(u.ID, u.Email)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Login checks email and password. Unknown emails and wrong passwords are
// reported the same way.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	u, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, models.ErrNotFound) {
		return nil, "", fmt.Errorf("%w: incorrect email or password", models.ErrUnauthorized)
	}
	if err != nil {
		return nil, "", err
	}
	if u.PasswordHash == "" ||
		bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, "", fmt.Errorf("%w: incorrect email or password", models.ErrUnauthorized)
	}
	if !u.IsActive {
		return nil, "", fmt.Errorf("%w: inactive user", models.ErrForbidden)
	}

	token, err := s.tokens.GenerateToken(u.ID, u.Email)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// LoginWithGoogle finds the account for a verified Google email, creating a
// passwordless one on first sign-in.
func (s *AuthService) LoginWithGoogle(ctx context.Context, email, name string) (*models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, "", models.NewValidationError("email", "is required")
	}

	u, err := s.users.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, models.ErrNotFound):
		u = &models.User{ID: uuid.New(), Email: email, FullName: trimmed(&name), IsActive: true}
		if err := s.users.Create(ctx, u); err != nil {
			return nil, "", err
		}
		s.log.InfoContext(ctx, "user registered via google", slog.String("user_id", u.ID.String()))
	case err != nil:
		return nil, "", err
	case !u.IsActive:
		return nil, "", fmt.Errorf("%w: inactive user", models.ErrForbidden)
	}

	token, err := s.tokens.GenerateToken(u.ID, u.Email)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// ResolveIdentity maps a bearer token to an active user. A bad token or a
// token for an unknown user is ErrUnauthorized; an inactive user is
// ErrForbidden.
func (s *AuthService) ResolveIdentity(ctx context.Context, token string) (*models.User, error) {
	userID, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil, fmt.Errorf("%w: could not validate credentials", models.ErrUnauthorized)
	}

	u, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("%w: user not found", models.ErrUnauthorized)
	}
	if err != nil {
		return nil, err
	}
	if !u.IsActive {
		return nil, fmt.Errorf("%w: inactive user", models.ErrForbidden)
	}
	return u, nil
}

// Me returns the account for userID.
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return s.users.GetByID(ctx, userID)
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
