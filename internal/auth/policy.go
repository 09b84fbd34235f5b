package auth

import (
	"github.com/google/uuid"

	"folio/internal/model"
)

// CanModify is the owner-or-admin rule: the resource's creator or any
// actor holding the admin role may act on it. Every handler that guards
// a user-owned resource goes through this single check.
func CanModify(actorID uuid.UUID, actorRole string, ownerID uuid.UUID) bool {
	if actorRole == model.RoleAdmin {
		return true
	}
	return actorID == ownerID
}

// HasRole reports whether role is in the required list.
func HasRole(role string, required ...string) bool {
	for _, r := range required {
		if role == r {
			return true
		}
	}
	return false
}
