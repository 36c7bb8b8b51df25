// Package authz decides which roles may perform which mutations. The check
// runs before any row is touched, so a denied request leaves no side effects
// and no audit entries.
package authz

import (
	apperrors "sentinel/internal/errors"
	"sentinel/internal/models"
)

// Action is a mutation category checked against the role table.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Actor identifies the authenticated user behind a request.
type Actor struct {
	ID   string
	Role models.Role
}

// Authorize checks whether role may perform action on entityType. ReadOnly is
// denied every write. Delete is only defined for accounts and requires Admin.
func Authorize(role models.Role, action Action, entityType string) error {
	if role == models.RoleReadOnly {
		return apperrors.ErrForbidden
	}
	if action == ActionDelete {
		if entityType != models.EntityAccount {
			return apperrors.ErrForbidden
		}
		if role != models.RoleAdmin {
			return apperrors.ErrForbidden
		}
	}
	return nil
}

// ScopesReads reports whether the actor only sees their own assigned book of
// business. Applies to accounts and prospects.
func (a Actor) ScopesReads() bool {
	return a.Role == models.RoleProducer
}

// CanRead checks a single fetched row against the producer scope. A row
// outside the actor's book is Forbidden, not NotFound: the caller already
// proved the row exists.
func (a Actor) CanRead(assignedProducerID *string) error {
	if !a.ScopesReads() {
		return nil
	}
	if assignedProducerID != nil && *assignedProducerID == a.ID {
		return nil
	}
	return apperrors.ErrForbidden
}
