// internal/services/moderation.go
package services

import (
	"github.com/google/uuid"

	"github.com/gamebazaar/gamebazaar-backend/internal/models"
)

// Actor is the authenticated identity a request acts as.
type Actor struct {
	ID   uuid.UUID
	Role models.UserRole
}

func (a Actor) IsAdmin() bool {
	return a.Role == models.UserRoleAdmin
}

// IsOwner gates every edit path: only the author may change a node's
// content. Admins get no bypass here.
func IsOwner(actor Actor, authorID uuid.UUID) bool {
	return actor.ID == authorID
}

// CanModerate gates every delete path: the author, or any admin.
func CanModerate(actor Actor, authorID uuid.UUID) bool {
	return actor.ID == authorID || actor.IsAdmin()
}

// PermissionFlags are derived per viewer at serialization time and
// never persisted.
type PermissionFlags struct {
	CanEdit   bool `json:"can_edit"`
	CanDelete bool `json:"can_delete"`
}

// Permissions computes the viewer-relative flags for a node. A nil
// viewer (anonymous request) gets neither flag.
func Permissions(viewer *Actor, authorID uuid.UUID) PermissionFlags {
	if viewer == nil {
		return PermissionFlags{}
	}
	return PermissionFlags{
		CanEdit:   IsOwner(*viewer, authorID),
		CanDelete: CanModerate(*viewer, authorID),
	}
}
