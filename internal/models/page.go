package models

const (
	DefaultPageLimit = 100
	MaxPageLimit     = 100
)

// Page is an offset/limit window over an ordered listing.
type Page struct {
	Skip  int
	Limit int
}

// Normalize clamps the window: negative skip becomes 0, a non-positive limit
// becomes DefaultPageLimit and limits above MaxPageLimit are cut down.
func (p Page) Normalize() Page {
	if p.Skip < 0 {
		p.Skip = 0
	}
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	return p
}

// PageResult is one page of items plus the size of the full listing.
type PageResult[T any] struct {
	Items      []T
	TotalCount int
}
