package rbac

import (
	"errors"
	"strings"
)

// Role is the privilege level assigned to a user. Exactly one role per user.
type Role string

const (
	// RoleViewer may only read shelter records.
	RoleViewer Role = "VIEWER"
	// RoleEditor is mid-tier staff: may read, create and edit, never delete.
	RoleEditor Role = "EDITOR"
	// RoleAdmin may perform every action, including user management.
	RoleAdmin Role = "ADMIN"
)

// Action is a capability requested against a resource.
type Action string

const (
	// ActionView reads a listing or a single record.
	ActionView Action = "view"
	// ActionCreate inserts a new record.
	ActionCreate Action = "create"
	// ActionEdit modifies an existing record (full or partial update).
	ActionEdit Action = "edit"
	// ActionDelete removes a record.
	ActionDelete Action = "delete"
)

// Resource names a family of records guarded by the matrix.
type Resource string

const (
	// ResourceAnimals are the sheltered animals.
	ResourceAnimals Resource = "animals"
	// ResourceBreeds are the animal breeds.
	ResourceBreeds Resource = "breeds"
	// ResourceCampaigns are fund-raising and adoption campaigns.
	ResourceCampaigns Resource = "campaigns"
	// ResourceEvents are public events.
	ResourceEvents Resource = "events"
	// ResourceReports are abuse and neglect reports.
	ResourceReports Resource = "reports"
	// ResourcePeople are registered people (adopters, volunteers).
	ResourcePeople Resource = "people"
	// ResourceDashboard is the aggregated statistics view.
	ResourceDashboard Resource = "dashboard"
	// ResourceUsers are the login accounts of the staff.
	ResourceUsers Resource = "users"
)

var (
	// ErrUnknownRole is returned by ParseRole for values outside Roles.
	ErrUnknownRole = errors.New("unknown role")
	// ErrUnknownAction is returned by ParseAction for values outside Actions.
	ErrUnknownAction = errors.New("unknown action")
	// ErrUnknownResource is returned by ParseResource for values outside Resources.
	ErrUnknownResource = errors.New("unknown resource")
)

// Roles lists every defined role ordered by privilege, lowest first.
func Roles() []Role {
	return []Role{RoleViewer, RoleEditor, RoleAdmin}
}

// Actions lists every defined action.
func Actions() []Action {
	return []Action{ActionView, ActionCreate, ActionEdit, ActionDelete}
}

// Resources lists every guarded resource.
func Resources() []Resource {
	return []Resource{
		ResourceAnimals,
		ResourceBreeds,
		ResourceCampaigns,
		ResourceEvents,
		ResourceReports,
		ResourcePeople,
		ResourceDashboard,
		ResourceUsers,
	}
}

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	for _, known := range Roles() {
		if r == known {
			return true
		}
	}

	return false
}

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}

// Level returns the position of the role in the privilege order.
// Unknown roles have level -1.
func (r Role) Level() int {
	for i, known := range Roles() {
		if r == known {
			return i
		}
	}

	return -1
}

// Valid reports whether a is one of the defined actions.
func (a Action) Valid() bool {
	for _, known := range Actions() {
		if a == known {
			return true
		}
	}

	return false
}

// String implements fmt.Stringer.
func (a Action) String() string {
	return string(a)
}

// Valid reports whether r is one of the defined resources.
func (r Resource) Valid() bool {
	for _, known := range Resources() {
		if r == known {
			return true
		}
	}

	return false
}

// String implements fmt.Stringer.
func (r Resource) String() string {
	return string(r)
}

// ParseRole converts a stored or submitted value into a Role.
// Matching is case-insensitive; anything else yields ErrUnknownRole.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", ErrUnknownRole
	}

	return r, nil
}

// ParseAction converts a value into an Action, case-insensitive.
func ParseAction(s string) (Action, error) {
	a := Action(strings.ToLower(strings.TrimSpace(s)))
	if !a.Valid() {
		return "", ErrUnknownAction
	}

	return a, nil
}

// ParseResource converts a value into a Resource, case-insensitive.
func ParseResource(s string) (Resource, error) {
	r := Resource(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", ErrUnknownResource
	}

	return r, nil
}
