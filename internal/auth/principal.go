package auth

import (
	"time"

	"github.com/abrigo-digital/shelter-admin/internal/rbac"
)

// Principal is the resolved identity of a caller.
// Role is the snapshot captured when the session was issued.
type Principal struct {
	UserID    uint64
	Name      string
	Email     string
	Role      rbac.Role
	ExpiresAt time.Time
	// ValidUntil is the end of the account validity, nil when unlimited.
	ValidUntil *time.Time
}

// Can reports whether the principal may perform action on resource.
// A nil principal can do nothing.
func (p *Principal) Can(resource rbac.Resource, action rbac.Action) bool {
	if p == nil {
		return false
	}

	return rbac.CanAccessResource(p.Role, resource, action)
}
