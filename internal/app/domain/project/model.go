package project

import "time"

// Project groups tasks. A project has exactly one owner for its whole lifetime.
type Project struct {
	ID          string    `json:"id" db:"id"`
	OwnerID     string    `json:"ownerId" db:"owner_id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// Update carries the mutable fields of a project. A nil Description leaves the
// stored value unchanged.
type Update struct {
	Name        string
	Description *string
}

// Apply returns p with the update applied.
func (u Update) Apply(p Project) Project {
	p.Name = u.Name
	if u.Description != nil {
		p.Description = *u.Description
	}
	return p
}

const (
	MaxNameLength        = 120
	MaxDescriptionLength = 1000
)
