package models

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CreatorStatus is the platform-controlled state of a creator account.
type CreatorStatus string

const (
	CreatorStatusPending   CreatorStatus = "pending"
	CreatorStatusActive    CreatorStatus = "active"
	CreatorStatusSuspended CreatorStatus = "suspended"
)

const (
	UsernameMinLen        = 3
	UsernameMaxLen        = 50
	DisplayNameMaxLen     = 100
	BioMaxLen             = 1000
	DefaultCommissionRate = 0.1
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// Creator is the content-producing profile attached to exactly one user.
type Creator struct {
	ID             uuid.UUID     `json:"id" db:"id"`
	UserID         uuid.UUID     `json:"user_id" db:"user_id"`
	Username       string        `json:"username" db:"username"`
	DisplayName    string        `json:"display_name" db:"display_name"`
	Bio            *string       `json:"bio" db:"bio"`
	Status         CreatorStatus `json:"status" db:"status"`
	CommissionRate float64       `json:"commission_rate" db:"commission_rate"`
	CreatedAt      time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at" db:"updated_at"`
}

// CreatorSnapshot is the read-only creator data joined onto public templates.
type CreatorSnapshot struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

// CreateCreatorInput holds the fields a user supplies when setting up a profile.
type CreateCreatorInput struct {
	Username    string
	DisplayName string
	Bio         *string
}

// Normalize trims surrounding whitespace; an empty bio becomes nil.
func (in *CreateCreatorInput) Normalize() {
	in.Username = strings.TrimSpace(in.Username)
	in.DisplayName = strings.TrimSpace(in.DisplayName)
	in.Bio = trimOrNil(in.Bio)
}

// Validate checks required fields and length limits.
func (in CreateCreatorInput) Validate() error {
	v := &ValidationError{}
	switch {
	case in.Username == "":
		v.Add("username", "is required")
	case len(in.Username) < UsernameMinLen || len(in.Username) > UsernameMaxLen:
		v.Add("username", "must be between 3 and 50 characters")
	case !usernamePattern.MatchString(in.Username):
		v.Add("username", "may contain only letters, digits, '_', '.' and '-'")
	}
	validateDisplayName(v, in.DisplayName)
	validateBio(v, in.Bio)
	return v.OrNil()
}

// UpdateCreatorInput patches the mutable profile fields. Username is immutable.
type UpdateCreatorInput struct {
	DisplayName *string
	Bio         *string
}

// Normalize trims surrounding whitespace.
func (in *UpdateCreatorInput) Normalize() {
	if in.DisplayName != nil {
		s := strings.TrimSpace(*in.DisplayName)
		in.DisplayName = &s
	}
	if in.Bio != nil {
		s := strings.TrimSpace(*in.Bio)
		in.Bio = &s
	}
}

// Validate checks the supplied fields.
func (in UpdateCreatorInput) Validate() error {
	v := &ValidationError{}
	if in.DisplayName != nil {
		validateDisplayName(v, *in.DisplayName)
	}
	validateBio(v, in.Bio)
	return v.OrNil()
}

// IsEmpty reports whether the patch changes nothing.
func (in UpdateCreatorInput) IsEmpty() bool {
	return in.DisplayName == nil && in.Bio == nil
}

func validateDisplayName(v *ValidationError, name string) {
	if name == "" {
		v.Add("display_name", "is required")
	} else if len([]rune(name)) > DisplayNameMaxLen {
		v.Add("display_name", "must be at most 100 characters")
	}
}

func validateBio(v *ValidationError, bio *string) {
	if bio != nil && len([]rune(*bio)) > BioMaxLen {
		v.Add("bio", "must be at most 1000 characters")
	}
}

func trimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
