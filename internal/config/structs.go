package config

import (
	"time"

	"github.com/abrigo-digital/shelter-admin/internal/logger"
)

// Session backends.
const (
	SessionBackendDB    = "db"
	SessionBackendRedis = "redis"
	SessionBackendJWT   = "jwt"
)

// Session settings.
type Session struct {
	ExpiryTime time.Duration // lifetime of a login session
	Backend    string        // db, redis or jwt
	CookieName string        // name of the session cookie
	SigningKey string        // HMAC key for the jwt backend
}

// Redis connection settings, used by the redis session backend.
type Redis struct {
	Addr     string
	Password string
	DB       int
}

// Bootstrap describes the administrator created on an empty database.
type Bootstrap struct {
	Email    string
	Name     string
	Password string
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Redis     Redis
	Log       logger.Log
	Title     string
	Bootstrap Bootstrap
	Webserver Webserver
}

// Webserver implement webserver settings.
type Webserver struct {
	BrowseStatic        bool    // enable static file browsing (for development purposes only)
	DisableRecover      bool    // disable recover middleware
	Domain              string  // cookie domain
	Port                int     // listening port for the webserver
	ShutDownTime        int     // seconds to wait for in-flight requests on shutdown
	URL                 string  // base url for the webserver
	CookieEncryptionKey string  // base64 key for encrypted cookies, empty disables encryption
	LoginRateLimit      int     // login attempts per minute and client ip
	Session             Session // session settings
}
