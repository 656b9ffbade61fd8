package utils

import (
	"context"

	"github.com/google/uuid"

	"GO2GETHER_CREATOR-HUB/internal/models"
)

type ctxKey int

const (
	userKey ctxKey = iota
	requestIDKey
	requestInfoKey
)

// RequestInfo collects facts learned by inner handlers so outer middleware
// can log them after the request completes.
type RequestInfo struct {
	UserID uuid.UUID
}

// WithRequestInfo attaches an empty RequestInfo to ctx.
func WithRequestInfo(ctx context.Context) (context.Context, *RequestInfo) {
	info := &RequestInfo{}
	return context.WithValue(ctx, requestInfoKey, info), info
}

// WithUser stores the authenticated user in ctx.
func WithUser(ctx context.Context, u *models.User) context.Context {
	if info, ok := ctx.Value(requestInfoKey).(*RequestInfo); ok {
		info.UserID = u.ID
	}
	return context.WithValue(ctx, userKey, u)
}

// GetUserFromContext returns the authenticated user, if any.
func GetUserFromContext(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(userKey).(*models.User)
	return u, ok && u != nil
}

// GetUserIDFromContext returns the authenticated user's id.
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	u, ok := GetUserFromContext(ctx)
	if !ok {
		return uuid.Nil, false
	}
	return u.ID, true
}

// WithRequestID stores the request id in ctx.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// GetRequestID returns the request id or "".
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
