package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// TemplateStatus is the lifecycle state of a trip template.
type TemplateStatus string

const (
	TemplateStatusDraft     TemplateStatus = "draft"
	TemplateStatusPublished TemplateStatus = "published"
)

// Valid reports whether s is a known status.
func (s TemplateStatus) Valid() bool {
	return s == TemplateStatusDraft || s == TemplateStatusPublished
}

const (
	TitleMaxLen        = 255
	DescriptionMaxLen  = 2000
	CreatorNotesMaxLen = 2000
)

// TripTemplate is an authored, reusable trip description owned by a creator.
type TripTemplate struct {
	ID                uuid.UUID        `json:"id" db:"id"`
	CreatorID         uuid.UUID        `json:"creator_id" db:"creator_id"`
	Title             string           `json:"title" db:"title"`
	Description       string           `json:"description" db:"description"`
	CreatorNotes      *string          `json:"creator_notes" db:"creator_notes"`
	CoreExperience    Attributes       `json:"core_experience" db:"core_experience"`
	FlexibleLogistics Attributes       `json:"flexible_logistics" db:"flexible_logistics"`
	Status            TemplateStatus   `json:"status" db:"status"`
	ViewsCount        int64            `json:"views_count" db:"views_count"`
	CreatedAt         time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at" db:"updated_at"`
	Creator           *CreatorSnapshot `json:"creator,omitempty" db:"-"`
}

// CreateTemplateInput holds the authored fields of a new template.
// Omitted attribute maps are stored empty; nothing is derived from the title.
type CreateTemplateInput struct {
	Title             string
	Description       string
	CreatorNotes      *string
	CoreExperience    Attributes
	FlexibleLogistics Attributes
	Status            TemplateStatus
}

// Normalize trims text fields and fills defaults.
func (in *CreateTemplateInput) Normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.CreatorNotes = trimOrNil(in.CreatorNotes)
	if in.CoreExperience == nil {
		in.CoreExperience = Attributes{}
	}
	if in.FlexibleLogistics == nil {
		in.FlexibleLogistics = Attributes{}
	}
	if in.Status == "" {
		in.Status = TemplateStatusDraft
	}
}

// Validate checks required fields, limits and attribute shape.
func (in CreateTemplateInput) Validate() error {
	v := &ValidationError{}
	validateTitle(v, in.Title)
	validateDescription(v, in.Description)
	validateNotes(v, in.CreatorNotes)
	validateAttributes(v, "core_experience", in.CoreExperience)
	validateAttributes(v, "flexible_logistics", in.FlexibleLogistics)
	if !in.Status.Valid() {
		v.Add("status", "must be draft or published")
	}
	return v.OrNil()
}

// UpdateTemplateInput patches a draft template. Nil fields are left unchanged.
type UpdateTemplateInput struct {
	Title             *string
	Description       *string
	CreatorNotes      *string
	CoreExperience    Attributes
	FlexibleLogistics Attributes
}

// Normalize trims text fields.
func (in *UpdateTemplateInput) Normalize() {
	if in.Title != nil {
		s := strings.TrimSpace(*in.Title)
		in.Title = &s
	}
	if in.Description != nil {
		s := strings.TrimSpace(*in.Description)
		in.Description = &s
	}
	if in.CreatorNotes != nil {
		s := strings.TrimSpace(*in.CreatorNotes)
		in.CreatorNotes = &s
	}
}

// Validate checks the supplied fields.
func (in UpdateTemplateInput) Validate() error {
	v := &ValidationError{}
	if in.Title != nil {
		validateTitle(v, *in.Title)
	}
	if in.Description != nil {
		validateDescription(v, *in.Description)
	}
	validateNotes(v, in.CreatorNotes)
	validateAttributes(v, "core_experience", in.CoreExperience)
	validateAttributes(v, "flexible_logistics", in.FlexibleLogistics)
	return v.OrNil()
}

// IsEmpty reports whether the patch changes nothing.
func (in UpdateTemplateInput) IsEmpty() bool {
	return in.Title == nil && in.Description == nil && in.CreatorNotes == nil &&
		in.CoreExperience == nil && in.FlexibleLogistics == nil
}

// Apply copies the patch onto t. An empty creator_notes string clears the notes.
func (in UpdateTemplateInput) Apply(t *TripTemplate) {
	if in.Title != nil {
		t.Title = *in.Title
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if in.CreatorNotes != nil {
		t.CreatorNotes = trimOrNil(in.CreatorNotes)
	}
	if in.CoreExperience != nil {
		t.CoreExperience = in.CoreExperience
	}
	if in.FlexibleLogistics != nil {
		t.FlexibleLogistics = in.FlexibleLogistics
	}
}

// DiscoverFilter selects public templates.
type DiscoverFilter struct {
	// Search is matched case-insensitively as a substring of title or description.
	Search string
	Page   Page
}

func validateTitle(v *ValidationError, title string) {
	if title == "" {
		v.Add("title", "is required")
	} else if len([]rune(title)) > TitleMaxLen {
		v.Add("title", "must be at most 255 characters")
	}
}

func validateDescription(v *ValidationError, description string) {
	if description == "" {
		v.Add("description", "is required")
	} else if len([]rune(description)) > DescriptionMaxLen {
		v.Add("description", "must be at most 2000 characters")
	}
}

func validateNotes(v *ValidationError, notes *string) {
	if notes != nil && len([]rune(*notes)) > CreatorNotesMaxLen {
		v.Add("creator_notes", "must be at most 2000 characters")
	}
}

func validateAttributes(v *ValidationError, field string, a Attributes) {
	if a == nil {
		return
	}
	if err := a.Validate(); err != nil {
		v.Add(field, err.Error())
	}
}
