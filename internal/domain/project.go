package domain

import (
	"time"

	"github.com/google/uuid"
)

// MaxProjectNameLength bounds Project.Name in runes.
const MaxProjectNameLength = 120

// Project groups tasks of the tracker service.
type Project struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewProject creates a Project owned by ownerID.
func NewProject(ownerID uuid.UUID, name, description string, now time.Time) (*Project, error) {
	p := &Project{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Name:        name,
		Description: description,
		CreatedAt:   now.UTC(),
		UpdatedAt:   now.UTC(),
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks if the Project has valid data.
func (p *Project) Validate() error {
	if p.ID == uuid.Nil {
		return ErrEmptyID
	}
	if p.OwnerID == uuid.Nil {
		return ErrEmptyOwner
	}
	return validName(p.Name, MaxProjectNameLength)
}

// Rename replaces the project's name and description.
func (p *Project) Rename(name, description string, now time.Time) error {
	p.Name = name
	p.Description = description
	p.UpdatedAt = now.UTC()
	return p.Validate()
}
