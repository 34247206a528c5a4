// Package policy decides whether a requester may act on a user record.
// Every function is pure: it only inspects its arguments.
package policy

import (
	"fmt"

	"github.com/sps/users-api/internal/core/domain"
)

var (
	ErrNotSelfOrAdmin = fmt.Errorf("%w: no permission to edit this user", domain.ErrForbidden)
	ErrRoleEscalation = fmt.Errorf("%w: only admin can set type admin", domain.ErrForbidden)
	ErrAdminRequired  = fmt.Errorf("%w: admin access required", domain.ErrForbidden)
)

// CanView allows any authenticated principal to list and read users.
func CanView(p *domain.Principal) error {
	if p == nil {
		return domain.ErrUnauthenticated
	}
	return nil
}

// CanUpdate allows self-edit and admin-edit.
func CanUpdate(p *domain.Principal, targetID string) error {
	if p == nil {
		return domain.ErrUnauthenticated
	}
	if p.Subject == targetID || p.IsAdmin() {
		return nil
	}
	return ErrNotSelfOrAdmin
}

// CanAssignRole guards privilege escalation: only admins hand out admin.
func CanAssignRole(p *domain.Principal, role domain.Role) error {
	if p == nil {
		return domain.ErrUnauthenticated
	}
	if role == domain.RoleAdmin && !p.IsAdmin() {
		return ErrRoleEscalation
	}
	return nil
}

// CanDelete is admin only, including for the requester's own account.
func CanDelete(p *domain.Principal, _ string) error {
	if p == nil {
		return domain.ErrUnauthenticated
	}
	if !p.IsAdmin() {
		return ErrAdminRequired
	}
	return nil
}

// Registration gates anonymous account creation.
type Registration struct {
	// AllowAdmin lets anonymous callers register with the admin role.
	AllowAdmin bool
}

func (r Registration) Check(role domain.Role) error {
	if role == domain.RoleAdmin && !r.AllowAdmin {
		return ErrRoleEscalation
	}
	return nil
}
