package gate

import (
	"bytes"
	"html/template"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abrigo-digital/shelter-admin/internal/rbac"
	"github.com/abrigo-digital/shelter-admin/internal/web/navigation"
)

func TestCan_FollowsMatrix(t *testing.T) {
	for _, role := range append(rbac.Roles(), "GUEST") {
		for _, resource := range rbac.Resources() {
			for _, action := range rbac.Actions() {
				assert.Equal(t, rbac.CanAccessResource(role, resource, action), Can(role, resource, action),
					"%s %s %s", role, resource, action)
			}
		}
	}
}

func TestCanAny(t *testing.T) {
	assert.True(t, CanAny(rbac.RoleEditor, rbac.ResourceAnimals, rbac.ActionDelete, rbac.ActionEdit))
	assert.False(t, CanAny(rbac.RoleViewer, rbac.ResourceAnimals, rbac.ActionCreate, rbac.ActionEdit, rbac.ActionDelete))
	assert.False(t, CanAny(rbac.RoleAdmin, rbac.ResourceAnimals))
}

func TestVisibleMenu(t *testing.T) {
	titles := func(items []navigation.MenuItem) []string {
		out := make([]string, 0, len(items))
		for _, i := range items {
			out = append(out, i.Title)
		}

		return out
	}

	admin := VisibleMenu(rbac.RoleAdmin, navigation.Menu())
	assert.Len(t, admin, len(navigation.Menu()))

	viewer := titles(VisibleMenu(rbac.RoleViewer, navigation.Menu()))
	assert.Contains(t, viewer, "Animals")
	assert.NotContains(t, viewer, "Users")

	editor := titles(VisibleMenu(rbac.RoleEditor, navigation.Menu()))
	assert.NotContains(t, editor, "Users")

	assert.Empty(t, VisibleMenu("", navigation.Menu()))
}

func TestFuncMap_Template(t *testing.T) {
	tpl := template.Must(template.New("t").Funcs(FuncMap()).Parse(
		`{{ if can .Role "animals" "delete" }}delete{{ end }}` +
			`{{ if canAny .Role "breeds" "create" "edit" }}|write{{ end }}` +
			`{{ if can .Role "users" "view" }}|users{{ end }}`,
	))

	render := func(role rbac.Role) string {
		var buf bytes.Buffer
		require.NoError(t, tpl.Execute(&buf, map[string]any{"Role": role}))

		return buf.String()
	}

	assert.Equal(t, "delete|write|users", render(rbac.RoleAdmin))
	assert.Equal(t, "|write", render(rbac.RoleEditor))
	assert.Empty(t, render(rbac.RoleViewer))
	assert.Empty(t, render("GUEST"))
}
