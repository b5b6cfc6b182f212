// Package auth provides the route guard for server rendered pages.
//
// Decide classifies a path and tells whether a visitor proceeds, is sent to
// the login page or, already signed in, is sent from the login page to the
// dashboard. The guard is advisory navigation only: page handlers are still
// wrapped by the server guard of internal/auth, which makes the actual
// access decision.
//
// Usage:
//
//	app.Use(authmiddleware.New(guard))
package auth
