package auth

import "errors"

var (
	// ErrUnauthenticated is returned when no valid session backs the credential:
	// missing, malformed, unknown, tampered or expired.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrUnauthorized is returned when the session is valid but its role lacks the action.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInactiveAccount is wrapped together with ErrUnauthenticated when the
	// session belongs to a deactivated, expired or deleted account.
	ErrInactiveAccount = errors.New("account is inactive")

	// ErrInvalidCredentials is returned by login for unknown emails, wrong
	// passwords and inactive accounts alike.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidOldPassword is returned when the provided old password does not match.
	ErrInvalidOldPassword = errors.New("invalid old password")

	// ErrEmailExists is returned when creating or renaming a user to an email already in use.
	ErrEmailExists = errors.New("user with this email already exists")

	// ErrUserNotFound is returned when a user cannot be found in the database.
	ErrUserNotFound = errors.New("user not found")

	// ErrSelfModification is returned when an administrator tries to delete,
	// deactivate or demote their own account.
	ErrSelfModification = errors.New("you cannot delete, deactivate or demote your own account")
)
