package dto

// CreateCreatorRequest is the body of POST /api/creators/me.
type CreateCreatorRequest struct {
	Username    string  `json:"username" example:"ana.travels"`
	DisplayName string  `json:"display_name" example:"Ana Lima"`
	Bio         *string `json:"bio,omitempty" example:"Slow travel in Southeast Asia"`
}

// UpdateCreatorRequest is the body of PUT /api/creators/me. Omitted fields are unchanged.
type UpdateCreatorRequest struct {
	DisplayName *string `json:"display_name,omitempty"`
	Bio         *string `json:"bio,omitempty"`
}

// CreatorResponse represents a creator profile.
type CreatorResponse struct {
	ID             string  `json:"id"`
	UserID         string  `json:"user_id"`
	Username       string  `json:"username"`
	DisplayName    string  `json:"display_name"`
	Bio            *string `json:"bio"`
	Status         string  `json:"status" example:"active"`
	CommissionRate float64 `json:"commission_rate" example:"0.1"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}
