package dto

// AffiliateLinkResponse represents an affiliate link.
type AffiliateLinkResponse struct {
	ID               string  `json:"id"`
	TemplateID       string  `json:"template_id"`
	CreatorID        string  `json:"creator_id"`
	LinkCode         string  `json:"link_code" example:"aB3dE5fG7hJ9"`
	Clicks           int64   `json:"clicks"`
	Conversions      int64   `json:"conversions"`
	RevenueGenerated float64 `json:"revenue_generated"`
	CreatedAt        string  `json:"created_at"`
}

// AffiliateLinkListResponse is a page of affiliate links.
type AffiliateLinkListResponse struct {
	Items      []AffiliateLinkResponse `json:"items"`
	TotalCount int                     `json:"total_count"`
	Skip       int                     `json:"skip"`
	Limit      int                     `json:"limit"`
}
