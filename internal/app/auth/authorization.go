// Package auth implements the ownership-based access policy applied to every
// resource a student or administrator touches. Authorization is a pure
// predicate over the caller's verified identity and role; it performs no I/O.
package auth

import (
	"github.com/google/uuid"

	"github.com/apavel/studygate/internal/app/models"
	"github.com/apavel/studygate/internal/pkg/apperrors"
)

// Principal is the verified identity of a caller, extracted from the access
// token by the authentication middleware and passed explicitly into every
// service operation.
type Principal struct {
	UserID uuid.UUID
	Email  string
	Role   models.Role
}

// IsAdmin reports whether the caller holds the administrator role.
func (p Principal) IsAdmin() bool {
	return p.Role == models.RoleAdmin
}

// IsStudent reports whether the caller holds the student role.
func (p Principal) IsStudent() bool {
	return p.Role == models.RoleStudent
}

// Authorize allows access to a resource owned by ownerID when the caller is
// the owner or an administrator. A denial is reported as a not-found error so
// a caller can never learn that another student's resource exists.
func Authorize(p Principal, ownerID uuid.UUID) error {
	return AuthorizeNamed(p, ownerID, "user", ownerID)
}

// AuthorizeNamed is Authorize with an explicit resource kind and id used to
// render the not-found message.
func AuthorizeNamed(p Principal, ownerID uuid.UUID, kind string, id interface{}) error {
	if p.UserID == ownerID || p.IsAdmin() {
		return nil
	}
	return apperrors.NewNamedNotFoundError(kind, id)
}

// RequireAdmin rejects callers that do not hold the administrator role.
func RequireAdmin(p Principal) error {
	if !p.IsAdmin() {
		return apperrors.NewForbiddenError("administrator role required")
	}
	return nil
}
