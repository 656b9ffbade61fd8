package repository

import (
	"context"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"GO2GETHER_CREATOR-HUB/internal/db"
	"GO2GETHER_CREATOR-HUB/internal/models"
)

// TemplateRepository persists trip templates.
type TemplateRepository struct {
	db db.Querier
}

// NewTemplateRepository creates a TemplateRepository.
func NewTemplateRepository(q db.Querier) *TemplateRepository {
	return &TemplateRepository{db: q}
}

var templateColumns = []string{
	"t.id", "t.creator_id", "t.title", "t.description", "t.creator_notes",
	"t.core_experience", "t.flexible_logistics", "t.status", "t.views_count",
	"t.created_at", "t.updated_at",
}

const templateReturning = `t.id, t.creator_id, t.title, t.description, t.creator_notes,
	t.core_experience, t.flexible_logistics, t.status, t.views_count, t.created_at, t.updated_at`

// scanTemplate reads templateColumns, optionally followed by the owning
// creator's username and display_name.
func scanTemplate(row pgx.Row, withCreator bool) (*models.TripTemplate, error) {
	var (
		t              models.TripTemplate
		core, logistic []byte
		status         string
		snap           models.CreatorSnapshot
	)
	dest := []any{&t.ID, &t.CreatorID, &t.Title, &t.Description, &t.CreatorNotes,
		&core, &logistic, &status, &t.ViewsCount, &t.CreatedAt, &t.UpdatedAt}
	if withCreator {
		dest = append(dest, &snap.Username, &snap.DisplayName)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	t.Status = models.TemplateStatus(status)
	if err := decodeAttributes(core, &t.CoreExperience); err != nil {
		return nil, fmt.Errorf("decode core_experience: %w", err)
	}
	if err := decodeAttributes(logistic, &t.FlexibleLogistics); err != nil {
		return nil, fmt.Errorf("decode flexible_logistics: %w", err)
	}
	if withCreator {
		t.Creator = &snap
	}
	return &t, nil
}

func decodeAttributes(raw []byte, dst *models.Attributes) error {
	if len(raw) == 0 {
		*dst = models.Attributes{}
		return nil
	}
	return json.Unmarshal(raw, dst)
}

// encodeAttributes returns the JSON text of a; text rather than bytes so the
// value binds as jsonb under the simple query protocol.
func encodeAttributes(a models.Attributes) (string, error) {
	b, err := a.MarshalJSON()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Create inserts t. t.ID must be set; views_count starts at zero.
func (r *TemplateRepository) Create(ctx context.Context, t *models.TripTemplate) error {
	core, err := encodeAttributes(t.CoreExperience)
	if err != nil {
		return fmt.Errorf("encode core_experience: %w", err)
	}
	logistics, err := encodeAttributes(t.FlexibleLogistics)
	if err != nil {
		return fmt.Errorf("encode flexible_logistics: %w", err)
	}

	err = r.db.QueryRow(ctx, `
		INSERT INTO trip_templates (id, creator_id, title, description, creator_notes,
		                            core_experience, flexible_logistics, status)
		VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7::jsonb, $8)
		RETURNING views_count, created_at, updated_at`,
		t.ID, t.CreatorID, t.Title, t.Description, t.CreatorNotes, core, logistics, string(t.Status),
	).Scan(&t.ViewsCount, &t.CreatedAt, &t.UpdatedAt)
	return mapError(err, "create template", models.ErrCreatorProfileNotFound)
}

// GetOwned returns template id only if it belongs to creatorID. A template of
// another creator is reported exactly like a missing one.
func (r *TemplateRepository) GetOwned(ctx context.Context, creatorID, id uuid.UUID) (*models.TripTemplate, error) {
	query, args, err := psql.Select(templateColumns...).
		From("trip_templates t").
		Where(sq.Eq{"t.id": id, "t.creator_id": creatorID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	t, err := scanTemplate(r.db.QueryRow(ctx, query, args...), false)
	if err != nil {
		return nil, mapError(err, "get template", models.ErrTemplateNotFound)
	}
	return t, nil
}

// ListByCreator returns one page of a creator's templates in every status,
// newest first with ties broken by id.
func (r *TemplateRepository) ListByCreator(ctx context.Context, creatorID uuid.UUID, page models.Page) (models.PageResult[*models.TripTemplate], error) {
	page = page.Normalize()
	base := psql.Select().From("trip_templates t").Where(sq.Eq{"t.creator_id": creatorID})
	return r.list(ctx, base, page, false)
}

// Discover returns one page of published templates whose creator is not
// suspended, optionally filtered by a substring of title or description.
// Items carry the creator snapshot.
func (r *TemplateRepository) Discover(ctx context.Context, f models.DiscoverFilter) (models.PageResult[*models.TripTemplate], error) {
	page := f.Page.Normalize()
	base := psql.Select().
		From("trip_templates t").
		Join("creators c ON c.id = t.creator_id").
		Where(sq.Eq{"t.status": string(models.TemplateStatusPublished)}).
		Where(sq.NotEq{"c.status": string(models.CreatorStatusSuspended)})
	if f.Search != "" {
		pattern := likePattern(f.Search)
		base = base.Where(sq.Or{
			sq.ILike{"t.title": pattern},
			sq.ILike{"t.description": pattern},
		})
	}
	return r.list(ctx, base, page, true)
}

func (r *TemplateRepository) list(ctx context.Context, base sq.SelectBuilder, page models.Page, withCreator bool) (models.PageResult[*models.TripTemplate], error) {
	var res models.PageResult[*models.TripTemplate]

	countSQL, countArgs, err := base.Columns("COUNT(*)").ToSql()
	if err != nil {
		return res, fmt.Errorf("build count query: %w", err)
	}
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&res.TotalCount); err != nil {
		return res, mapError(err, "count templates", models.ErrTemplateNotFound)
	}

	cols := templateColumns
	if withCreator {
		cols = append(append([]string{}, templateColumns...), "c.username", "c.display_name")
	}
	listSQL, listArgs, err := base.Columns(cols...).
		OrderBy("t.created_at DESC", "t.id DESC").
		Limit(uint64(page.Limit)).
		Offset(uint64(page.Skip)).
		ToSql()
	if err != nil {
		return res, fmt.Errorf("build list query: %w", err)
	}

	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return res, mapError(err, "list templates", models.ErrTemplateNotFound)
	}
	defer rows.Close()

	res.Items = make([]*models.TripTemplate, 0, page.Limit)
	for rows.Next() {
		t, err := scanTemplate(rows, withCreator)
		if err != nil {
			return res, fmt.Errorf("scan template: %w", err)
		}
		res.Items = append(res.Items, t)
	}
	if err := rows.Err(); err != nil {
		return res, mapError(err, "list templates", models.ErrTemplateNotFound)
	}
	return res, nil
}

// UpdateDraft writes the authored fields of t, provided it is still an owned
// draft. Otherwise ErrTemplateNotFound is returned.
func (r *TemplateRepository) UpdateDraft(ctx context.Context, t *models.TripTemplate) (*models.TripTemplate, error) {
	core, err := encodeAttributes(t.CoreExperience)
	if err != nil {
		return nil, fmt.Errorf("encode core_experience: %w", err)
	}
	logistics, err := encodeAttributes(t.FlexibleLogistics)
	if err != nil {
		return nil, fmt.Errorf("encode flexible_logistics: %w", err)
	}

	updated, err := scanTemplate(r.db.QueryRow(ctx, `
		UPDATE trip_templates t
		   SET title = $3, description = $4, creator_notes = $5,
		       core_experience = $6::jsonb, flexible_logistics = $7::jsonb, updated_at = now()
		 WHERE t.id = $1 AND t.creator_id = $2 AND t.status = 'draft'
		RETURNING `+templateReturning,
		t.ID, t.CreatorID, t.Title, t.Description, t.CreatorNotes, core, logistics), false)
	if err != nil {
		return nil, mapError(err, "update template", models.ErrTemplateNotFound)
	}
	return updated, nil
}

// Publish moves an owned draft to published in one statement. If the template
// is missing, not owned, or not a draft, ErrTemplateNotFound is returned and
// the caller decides which case applies.
func (r *TemplateRepository) Publish(ctx context.Context, creatorID, id uuid.UUID) (*models.TripTemplate, error) {
	t, err := scanTemplate(r.db.QueryRow(ctx, `
		UPDATE trip_templates t
		   SET status = 'published', updated_at = now()
		 WHERE t.id = $1 AND t.creator_id = $2 AND t.status = 'draft'
		RETURNING `+templateReturning,
		id, creatorID), false)
	if err != nil {
		return nil, mapError(err, "publish template", models.ErrTemplateNotFound)
	}
	return t, nil
}

// RecordView increments views_count of a publicly visible template and
// returns it with the creator snapshot.
func (r *TemplateRepository) RecordView(ctx context.Context, id uuid.UUID) (*models.TripTemplate, error) {
	t, err := scanTemplate(r.db.QueryRow(ctx, `
		UPDATE trip_templates t
		   SET views_count = t.views_count + 1
		  FROM creators c
		 WHERE t.id = $1
		   AND t.status = 'published'
		   AND c.id = t.creator_id
		   AND c.status <> 'suspended'
		RETURNING `+templateReturning+`, c.username, c.display_name`,
		id), true)
	if err != nil {
		return nil, mapError(err, "record template view", models.ErrTemplateNotFound)
	}
	return t, nil
}
