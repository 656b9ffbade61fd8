package dto

import "GO2GETHER_CREATOR-HUB/internal/models"

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string              `json:"error"`
	Message string              `json:"message,omitempty"`
	Code    string              `json:"code,omitempty" example:"creator_profile_not_found"`
	Fields  []models.FieldError `json:"fields,omitempty"`
}
