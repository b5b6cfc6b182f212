// Package session issues and resolves login sessions.
//
// A Session is created once at login and never mutated; role changes
// require a new session. Three Store backends are available:
//
//   - GormStore keeps one row per session in the relational database.
//   - RedisStore keeps a JSON document per session with a native TTL.
//   - JWTStore is stateless: the token itself is a signed session.
//
// Lookup only reads. Expiry and the active flag of the owning user are
// checked by the caller (see internal/auth).
package session
