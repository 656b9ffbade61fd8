package dto

// RegisterRequest represents the request payload for user registration
type RegisterRequest struct {
	Email    string  `json:"email" example:"ana@example.com"`
	Password string  `json:"password" example:"correct-horse-battery"`
	FullName *string `json:"full_name,omitempty" example:"Ana Lima"`
}

// LoginRequest represents the request payload for user login
type LoginRequest struct {
	Email    string `json:"email" example:"ana@example.com"`
	Password string `json:"password" example:"correct-horse-battery"`
}

// AuthResponse represents the response after successful authentication
type AuthResponse struct {
	User      UserResponse `json:"user"`
	Token     string       `json:"token"`
	TokenType string       `json:"token_type" example:"bearer"`
}

// UserResponse represents user data in API responses
type UserResponse struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	FullName  *string `json:"full_name"`
	IsActive  bool    `json:"is_active"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}
