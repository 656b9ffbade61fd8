package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"GO2GETHER_CREATOR-HUB/internal/models"
)

// SQLSTATE codes the repositories translate.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var conflictMessages = map[string]string{
	"users_email_key":               "email already registered",
	"creators_user_id_key":          "creator profile already exists for this user",
	"creators_username_key":         "username already taken",
	"affiliate_links_link_code_key": "affiliate link code already in use",
}

// mapError converts pgx errors to domain errors. notFound is returned for
// pgx.ErrNoRows. Context errors pass through wrapped.
func mapError(err error, op string, notFound error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", op, err)
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return notFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			msg, ok := conflictMessages[pgErr.ConstraintName]
			if !ok {
				msg = "duplicate value violates " + pgErr.ConstraintName
			}
			return models.NewConflictError(pgErr.ConstraintName, msg)
		case pgForeignKeyViolation:
			return fmt.Errorf("%s: %w", op, notFound)
		case pgCheckViolation:
			return fmt.Errorf("%s: %s: %w", op, pgErr.ConstraintName, models.ErrValidation)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// likePattern wraps s for a substring ILIKE match, escaping LIKE wildcards.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}
