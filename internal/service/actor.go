package service

import (
	"github.com/google/uuid"
	"github.com/phrazzld/crud-suite/internal/domain"
)

// Actor is the authenticated user on whose behalf an operation runs.
type Actor struct {
	UserID uuid.UUID
	Role   domain.Role
}

// IsAdmin reports whether the actor has the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == domain.RoleAdmin
}

// CanManage reports whether the actor may mutate a resource owned by ownerID.
func (a Actor) CanManage(ownerID uuid.UUID) bool {
	return a.IsAdmin() || a.UserID == ownerID
}
