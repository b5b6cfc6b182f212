package auth

import (
	"context"
	"errors"

	"github.com/abrigo-digital/shelter-admin/internal/rbac"
)

// Authenticator resolves a credential into a principal.
type Authenticator interface {
	Resolve(ctx context.Context, credential string) (*Principal, error)
}

// Guard admits or rejects protected operations.
type Guard struct {
	auth       Authenticator
	cookieName string
}

// NewGuard returns a Guard. cookieName is where fiber handlers look for the
// credential before falling back to the Authorization header.
func NewGuard(auth Authenticator, cookieName string) *Guard {
	return &Guard{auth: auth, cookieName: cookieName}
}

// CookieName returns the name of the session cookie.
func (g *Guard) CookieName() string {
	return g.cookieName
}

// Authenticate resolves credential without any authorization check.
func (g *Guard) Authenticate(ctx context.Context, credential string) (*Principal, error) {
	return g.auth.Resolve(ctx, credential)
}

// AuthenticateAny resolves the first credential that identifies a caller.
// A missing, stale or unknown credential falls through to the next one;
// a backend failure stops the search.
func (g *Guard) AuthenticateAny(ctx context.Context, credentials []string) (*Principal, error) {
	var err error = ErrUnauthenticated

	for _, credential := range credentials {
		var p *Principal

		p, err = g.auth.Resolve(ctx, credential)
		if !errors.Is(err, ErrUnauthenticated) {
			return p, err
		}
	}

	return nil, err
}

// Check authenticates credential and then authorizes action on resource.
// It returns the principal only when both checks pass.
func (g *Guard) Check(ctx context.Context, credential string, resource rbac.Resource, action rbac.Action) (*Principal, error) {
	return g.CheckAny(ctx, []string{credential}, resource, action)
}

// CheckAny is Check over the candidate credentials of one request, tried in order.
func (g *Guard) CheckAny(ctx context.Context, credentials []string, resource rbac.Resource, action rbac.Action) (*Principal, error) {
	p, err := g.AuthenticateAny(ctx, credentials)
	if err != nil {
		outcome := outcomeError
		if errors.Is(err, ErrUnauthenticated) {
			outcome = outcomeUnauthenticated
		}

		decisions.WithLabelValues(string(resource), string(action), outcome).Inc()

		return nil, err
	}

	if err = Authorize(p, resource, action); err != nil {
		decisions.WithLabelValues(string(resource), string(action), outcomeUnauthorized).Inc()
		return nil, err
	}

	decisions.WithLabelValues(string(resource), string(action), outcomeAdmitted).Inc()

	return p, nil
}

// Authorize applies the permission matrix to an already resolved principal.
// A nil principal is unauthenticated.
func Authorize(p *Principal, resource rbac.Resource, action rbac.Action) error {
	if p == nil {
		return ErrUnauthenticated
	}

	if !p.Can(resource, action) {
		return ErrUnauthorized
	}

	return nil
}
