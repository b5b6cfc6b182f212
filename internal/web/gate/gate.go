// Package gate decides which controls a page shows to the signed in user.
//
// Hiding a control is cosmetic. Every request is still checked by the
// server guard, so a visible control never grants anything by itself.
package gate

import (
	"html/template"

	"github.com/abrigo-digital/shelter-admin/internal/rbac"
	"github.com/abrigo-digital/shelter-admin/internal/web/navigation"
)

// Can reports whether role may perform action on resource.
func Can(role rbac.Role, resource rbac.Resource, action rbac.Action) bool {
	return rbac.CanAccessResource(role, resource, action)
}

// CanAny reports whether role may perform at least one of actions on resource.
func CanAny(role rbac.Role, resource rbac.Resource, actions ...rbac.Action) bool {
	for _, a := range actions {
		if Can(role, resource, a) {
			return true
		}
	}

	return false
}

// FuncMap returns the template functions:
//
//	{{ if can .Role "animals" "delete" }} ... {{ end }}
//	{{ if canAny .Role "breeds" "create" "edit" }} ... {{ end }}
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"can":    Can,
		"canAny": CanAny,
	}
}

// VisibleMenu returns the items whose resource role may view, in order.
func VisibleMenu(role rbac.Role, items []navigation.MenuItem) []navigation.MenuItem {
	out := make([]navigation.MenuItem, 0, len(items))

	for _, item := range items {
		if Can(role, item.Resource, rbac.ActionView) {
			out = append(out, item)
		}
	}

	return out
}
