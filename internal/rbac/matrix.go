package rbac

// grid is the resource-agnostic permission table. Every role carries an
// entry for every action so the table can be audited at a glance and
// tested for completeness.
var grid = map[Role]map[Action]bool{
	RoleViewer: {
		ActionView:   true,
		ActionCreate: false,
		ActionEdit:   false,
		ActionDelete: false,
	},
	RoleEditor: {
		ActionView:   true,
		ActionCreate: true,
		ActionEdit:   true,
		ActionDelete: false,
	},
	RoleAdmin: {
		ActionView:   true,
		ActionCreate: true,
		ActionEdit:   true,
		ActionDelete: true,
	},
}

// overrides replaces the grid for resources with stricter rules.
// User accounts are managed by administrators only.
var overrides = map[Resource]map[Role]map[Action]bool{
	ResourceUsers: {
		RoleViewer: {
			ActionView:   false,
			ActionCreate: false,
			ActionEdit:   false,
			ActionDelete: false,
		},
		RoleEditor: {
			ActionView:   false,
			ActionCreate: false,
			ActionEdit:   false,
			ActionDelete: false,
		},
		RoleAdmin: {
			ActionView:   true,
			ActionCreate: true,
			ActionEdit:   true,
			ActionDelete: true,
		},
	},
}

// CanAccess reports whether role may perform action on any shelter resource.
// Unknown roles or actions are denied.
func CanAccess(role Role, action Action) bool {
	return grid[role][action]
}

// CanAccessResource reports whether role may perform action on resource.
// Resources with an override use it instead of the grid. Unknown roles,
// actions or resources are denied.
func CanAccessResource(role Role, resource Resource, action Action) bool {
	if !resource.Valid() {
		return false
	}

	if table, ok := overrides[resource]; ok {
		return table[role][action]
	}

	return CanAccess(role, action)
}

// Allowed returns the actions role may perform on resource, in Actions order.
func Allowed(role Role, resource Resource) []Action {
	out := make([]Action, 0, len(Actions()))

	for _, action := range Actions() {
		if CanAccessResource(role, resource, action) {
			out = append(out, action)
		}
	}

	return out
}
