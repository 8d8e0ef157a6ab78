// Package access makes ownership and role based authorization decisions.
// Every function is a pure decision over the resolved subject: no I/O, no
// stored state, safe to call repeatedly.
package access

import (
	"ungatekeep/internal/identity"
	"ungatekeep/internal/models"
)

// IsAdmin reports whether the role set contains the admin role.
func IsAdmin(roles []string) bool {
	for _, role := range roles {
		if role == models.RoleAdmin {
			return true
		}
	}
	return false
}

// AssertOwnerOrAdmin succeeds when the subject is the resource owner or an
// admin; otherwise it fails Forbidden. This is the single authorization gate
// for every ownership-gated mutation.
func AssertOwnerOrAdmin(sub identity.Subject, ownerAuthID string) error {
	if sub.AuthID == ownerAuthID || IsAdmin(sub.Roles) {
		return nil
	}
	return models.NewForbiddenError("You are not authorized to access this resource")
}

// AssertAdmin succeeds only for admin subjects, regardless of ownership.
// Role mutations go through this gate.
func AssertAdmin(sub identity.Subject) error {
	if IsAdmin(sub.Roles) {
		return nil
	}
	return models.NewForbiddenError("Only administrators can perform this operation")
}
