package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"GO2GETHER_CREATOR-HUB/internal/db"
	"GO2GETHER_CREATOR-HUB/internal/models"
)

// AffiliateRepository persists affiliate links.
type AffiliateRepository struct {
	db db.Querier
}

// NewAffiliateRepository creates an AffiliateRepository.
func NewAffiliateRepository(q db.Querier) *AffiliateRepository {
	return &AffiliateRepository{db: q}
}

var affiliateColumns = []string{
	"id", "template_id", "creator_id", "link_code", "clicks", "conversions",
	"revenue_generated", "created_at",
}

func scanAffiliateLink(row pgx.Row) (*models.AffiliateLink, error) {
	var l models.AffiliateLink
	if err := row.Scan(&l.ID, &l.TemplateID, &l.CreatorID, &l.LinkCode, &l.Clicks,
		&l.Conversions, &l.RevenueGenerated, &l.CreatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}

// Create inserts l. A duplicate link code fails with a *models.ConflictError.
func (r *AffiliateRepository) Create(ctx context.Context, l *models.AffiliateLink) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO affiliate_links (id, template_id, creator_id, link_code)
		VALUES ($1, $2, $3, $4)
		RETURNING clicks, conversions, revenue_generated, created_at`,
		l.ID, l.TemplateID, l.CreatorID, l.LinkCode,
	).Scan(&l.Clicks, &l.Conversions, &l.RevenueGenerated, &l.CreatedAt)
	return mapError(err, "create affiliate link", models.ErrTemplateNotFound)
}

// ListByCreator returns one page of a creator's links, newest first.
func (r *AffiliateRepository) ListByCreator(ctx context.Context, creatorID uuid.UUID, page models.Page) (models.PageResult[*models.AffiliateLink], error) {
	page = page.Normalize()
	var res models.PageResult[*models.AffiliateLink]

	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM affiliate_links WHERE creator_id = $1`, creatorID,
	).Scan(&res.TotalCount); err != nil {
		return res, mapError(err, "count affiliate links", models.ErrAffiliateLinkNotFound)
	}

	query, args, err := psql.Select(affiliateColumns...).
		From("affiliate_links").
		Where(sq.Eq{"creator_id": creatorID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(page.Limit)).
		Offset(uint64(page.Skip)).
		ToSql()
	if err != nil {
		return res, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return res, mapError(err, "list affiliate links", models.ErrAffiliateLinkNotFound)
	}
	defer rows.Close()

	res.Items = make([]*models.AffiliateLink, 0, page.Limit)
	for rows.Next() {
		l, err := scanAffiliateLink(rows)
		if err != nil {
			return res, fmt.Errorf("scan affiliate link: %w", err)
		}
		res.Items = append(res.Items, l)
	}
	if err := rows.Err(); err != nil {
		return res, mapError(err, "list affiliate links", models.ErrAffiliateLinkNotFound)
	}
	return res, nil
}

// ResolveCode counts a click on the link and a view on its template in one
// statement, returning the template with its creator snapshot. Links whose
// template is not publicly visible resolve to ErrAffiliateLinkNotFound and
// are not counted.
func (r *AffiliateRepository) ResolveCode(ctx context.Context, code string) (*models.TripTemplate, error) {
	t, err := scanTemplate(r.db.QueryRow(ctx, `
		WITH link AS (
			UPDATE affiliate_links l
			   SET clicks = l.clicks + 1
			 WHERE l.link_code = $1
			   AND EXISTS (
			       SELECT 1
			         FROM trip_templates pt
			         JOIN creators pc ON pc.id = pt.creator_id
			        WHERE pt.id = l.template_id
			          AND pt.status = 'published'
			          AND pc.status <> 'suspended')
			RETURNING l.template_id
		)
		UPDATE trip_templates t
		   SET views_count = t.views_count + 1
		  FROM link, creators c
		 WHERE t.id = link.template_id
		   AND c.id = t.creator_id
		RETURNING `+templateReturning+`, c.username, c.display_name`,
		code), true)
	if err != nil {
		return nil, mapError(err, "resolve affiliate link", models.ErrAffiliateLinkNotFound)
	}
	return t, nil
}
