package handler

const (
	// BaseLayout is the default path for layout templates.
	BaseLayout = "layouts/base"

	// RootPath is the root path the route group.
	RootPath = "/"

	// RouterRootPath is the root of a route group.
	RouterRootPath = "/"

	// APIPath prefixes every JSON endpoint.
	APIPath = "/api"

	// IDParam is the route parameter holding a record id.
	IDParam = "id"

	// LoginPath is the login page.
	LoginPath = "/login"

	// HomePath is where authenticated visitors land.
	HomePath = "/dashboard"

	// ErrNilACDFatalLogMsg is used if app or deps pointer is nil.
	ErrNilACDFatalLogMsg = "app or deps is nil"
)
