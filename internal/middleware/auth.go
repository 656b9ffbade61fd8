package middleware

import (
	"context"
	"net/http"
	"strings"

	"GO2GETHER_CREATOR-HUB/internal/models"
	"GO2GETHER_CREATOR-HUB/internal/utils"
)

// IdentityResolver maps a bearer token to an active user. It fails with
// models.ErrUnauthorized or models.ErrForbidden.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, token string) (*models.User, error)
}

// Auth requires a valid bearer token. Missing or rejected credentials get
// 401, which tells clients to drop the token; an inactive account gets 403,
// which does not.
func Auth(resolver IdentityResolver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				utils.WriteErrorResponse(w, http.StatusUnauthorized, utils.CodeUnauthorized, "Authorization header required")
				return
			}

			user, err := resolver.ResolveIdentity(r.Context(), token)
			if err != nil {
				utils.WriteServiceError(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(utils.WithUser(r.Context(), user)))
		})
	}
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
