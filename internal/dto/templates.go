package dto

import "GO2GETHER_CREATOR-HUB/internal/models"

// CreateTemplateRequest is the body of POST /api/creators/me/templates.
type CreateTemplateRequest struct {
	Title             string            `json:"title" example:"7-Day Tokyo Adventure"`
	Description       string            `json:"description" example:"Temples, ramen and day trips"`
	CreatorNotes      *string           `json:"creator_notes,omitempty"`
	CoreExperience    models.Attributes `json:"core_experience,omitempty" swaggertype:"object"`
	FlexibleLogistics models.Attributes `json:"flexible_logistics,omitempty" swaggertype:"object"`
	Status            string            `json:"status,omitempty" enums:"draft,published" example:"draft"`
}

// UpdateTemplateRequest is the body of PUT /api/creators/me/templates/{id}.
type UpdateTemplateRequest struct {
	Title             *string           `json:"title,omitempty"`
	Description       *string           `json:"description,omitempty"`
	CreatorNotes      *string           `json:"creator_notes,omitempty"`
	CoreExperience    models.Attributes `json:"core_experience,omitempty" swaggertype:"object"`
	FlexibleLogistics models.Attributes `json:"flexible_logistics,omitempty" swaggertype:"object"`
}

// CreatorSnapshotResponse is the creator data shown on public templates.
type CreatorSnapshotResponse struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

// TemplateResponse represents a trip template.
type TemplateResponse struct {
	ID                string                   `json:"id"`
	CreatorID         string                   `json:"creator_id"`
	Title             string                   `json:"title"`
	Description       string                   `json:"description"`
	CreatorNotes      *string                  `json:"creator_notes"`
	CoreExperience    models.Attributes        `json:"core_experience" swaggertype:"object"`
	FlexibleLogistics models.Attributes        `json:"flexible_logistics" swaggertype:"object"`
	Status            string                   `json:"status" example:"published"`
	ViewsCount        int64                    `json:"views_count"`
	CreatedAt         string                   `json:"created_at"`
	UpdatedAt         string                   `json:"updated_at"`
	Creator           *CreatorSnapshotResponse `json:"creator,omitempty"`
}

// TemplateListResponse is a page of templates.
type TemplateListResponse struct {
	Items      []TemplateResponse `json:"items"`
	TotalCount int                `json:"total_count"`
	Skip       int                `json:"skip"`
	Limit      int                `json:"limit"`
}
