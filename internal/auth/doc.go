// Package auth authenticates callers and enforces the permission matrix.
//
// # Resolution
//
// Resolver turns an opaque credential (cookie value or bearer token) into a
// Principal. The session is looked up in a session.Store, its expiry is
// checked against the current time and the owning user is re-read so a
// deactivated account is rejected on its very next request. Resolution
// never writes.
//
// # Enforcement
//
// Guard.Check is the only authoritative enforcement point. It always
// authenticates before it authorizes, so an anonymous caller never learns
// whether an action would have been allowed:
//
//	p, err := guard.Check(ctx, credential, rbac.ResourceBreeds, rbac.ActionDelete)
//	switch {
//	case errors.Is(err, auth.ErrUnauthenticated): // 401
//	case errors.Is(err, auth.ErrUnauthorized):    // 403
//	case err != nil:                              // 500, backend failure
//	}
//
// Guarded wraps a fiber handler with the check and hands it the resolved
// Principal explicitly:
//
//	app.Delete("/api/breed/:id", auth.Guarded(guard, rbac.ResourceBreeds, rbac.ActionDelete,
//	    func(c *fiber.Ctx, p *auth.Principal) error { ... }))
//
// # Accounts
//
// LocalProvider manages user rows and verifies passwords. Service combines
// it with the session store for login, logout and account changes that must
// end existing sessions.
package auth
