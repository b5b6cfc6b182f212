// Package navigation provides the menu and breadcrumbs of the rendered pages.
package navigation

import "github.com/abrigo-digital/shelter-admin/internal/rbac"

// BreadcrumbItem represents a single breadcrumb link.
type BreadcrumbItem struct {
	Title  string
	URL    string
	Active bool
}

// MenuItem is an entry of the main menu. It is shown to roles allowed to
// view Resource.
type MenuItem struct {
	Title    string
	URL      string
	Section  string
	Resource rbac.Resource
}

// Context represents the navigation context for a page.
type Context struct {
	ActiveSection string
	PageTitle     string
	Breadcrumbs   []BreadcrumbItem
	Menu          []MenuItem
}

// Menu returns the full main menu in display order.
func Menu() []MenuItem {
	return []MenuItem{
		{Title: "Dashboard", URL: "/dashboard", Section: "dashboard", Resource: rbac.ResourceDashboard},
		{Title: "Animals", URL: "/animals", Section: "animals", Resource: rbac.ResourceAnimals},
		{Title: "Breeds", URL: "/breeds", Section: "breeds", Resource: rbac.ResourceBreeds},
		{Title: "Campaigns", URL: "/campaigns", Section: "campaigns", Resource: rbac.ResourceCampaigns},
		{Title: "Events", URL: "/events", Section: "events", Resource: rbac.ResourceEvents},
		{Title: "Reports", URL: "/reports", Section: "reports", Resource: rbac.ResourceReports},
		{Title: "People", URL: "/people", Section: "people", Resource: rbac.ResourcePeople},
		{Title: "Users", URL: "/users", Section: "users", Resource: rbac.ResourceUsers},
	}
}

// NewContext creates a new navigation context with the given menu.
func NewContext(pageTitle, activeSection string, menu []MenuItem) *Context {
	return &Context{
		PageTitle:     pageTitle,
		ActiveSection: activeSection,
		Breadcrumbs:   make([]BreadcrumbItem, 0),
		Menu:          menu,
	}
}

// AddBreadcrumb adds a breadcrumb item to the context.
func (c *Context) AddBreadcrumb(title, url string, active bool) *Context {
	c.Breadcrumbs = append(c.Breadcrumbs, BreadcrumbItem{
		Title:  title,
		URL:    url,
		Active: active,
	})

	return c
}

// IsSectionActive checks if the given section is active.
func (c *Context) IsSectionActive(section string) bool {
	return c.ActiveSection == section
}
