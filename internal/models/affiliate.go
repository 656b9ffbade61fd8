package models

import (
	"time"

	"github.com/google/uuid"
)

// AffiliateCodeLength is the length of generated affiliate link codes.
const AffiliateCodeLength = 12

// AffiliateLink is a trackable share link a creator issues for a published template.
type AffiliateLink struct {
	ID               uuid.UUID `json:"id" db:"id"`
	TemplateID       uuid.UUID `json:"template_id" db:"template_id"`
	CreatorID        uuid.UUID `json:"creator_id" db:"creator_id"`
	LinkCode         string    `json:"link_code" db:"link_code"`
	Clicks           int64     `json:"clicks" db:"clicks"`
	Conversions      int64     `json:"conversions" db:"conversions"`
	RevenueGenerated float64   `json:"revenue_generated" db:"revenue_generated"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}
