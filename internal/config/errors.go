package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("toml config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("toml config webserver.port listening port can not be 0")

	// ErrUnknownGormEngine error if config db.GormEngine is not supported.
	ErrUnknownGormEngine = errors.New("toml config db.gormEngine must be mysql, postgres or sqlite")

	// ErrUnknownSessionBackend error if config webserver.session.backend is not supported.
	ErrUnknownSessionBackend = errors.New("toml config webserver.session.backend must be db, redis or jwt")

	// ErrSigningKeyTooShort error if the jwt backend is used with a weak key.
	ErrSigningKeyTooShort = errors.New("toml config webserver.session.signingKey must have at least 32 bytes")

	// ErrInvalidCookieKey error if webserver.cookieEncryptionKey is not a base64 AES key.
	ErrInvalidCookieKey = errors.New("toml config webserver.cookieEncryptionKey must be a base64 encoded 16, 24 or 32 byte key")

	// ErrConfigNil error if no configuration was passed.
	ErrConfigNil = errors.New("config can not be nil")

	// ErrEmptyRedisAddr error if the redis backend is used without an address.
	ErrEmptyRedisAddr = errors.New("toml config redis.addr can not be empty with the redis session backend")
)
