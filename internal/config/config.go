// Package config handles input from etc/*.toml files
package config

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// EnvConfigJSON names the environment variable whose JSON content overrides the TOML file.
const EnvConfigJSON = "SHELTER_ADMIN_CONFIG_JSON"

const (
	defaultShutDownTime   = 5
	defaultSessionExpiry  = 24 * time.Hour
	defaultCookieName     = "session"
	defaultLoginRateLimit = 10
	minSigningKeyLength   = 32
)

// ReadConfig from config file.
func ReadConfig(path string) (Config, error) {
	var c Config

	if path == "" {
		path = "./etc/"
	}

	if _, err := toml.DecodeFile(path+"main.toml", &c); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	if env := os.Getenv(EnvConfigJSON); env != "" {
		var err error

		c, err = decodeAndMergeConfig(c, env)
		if err != nil {
			return c, err
		}
	}

	return c, validate(&c)
}

func decodeAndMergeConfig(c Config, configAsJSON string) (Config, error) {
	if err := json.Unmarshal([]byte(configAsJSON), &c); err != nil {
		return Config{}, errors.Wrap(err, "failed to decode "+EnvConfigJSON)
	}

	return c, nil
}

// DumpConfig config as TOML String.
func DumpConfig(c *Config) (string, error) {
	var buffer bytes.Buffer

	if err := toml.NewEncoder(&buffer).Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// DumpConfigJSON config as JSON String.
func DumpConfigJSON(c *Config) (string, error) {
	var buffer bytes.Buffer

	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// validate rejects unusable settings and fills in defaults.
func validate(c *Config) error {
	invalidErrMessage := "invalid config"

	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, invalidErrMessage)
	}

	if c.Webserver.URL == "" {
		return errors.Wrap(ErrEmptyURL, invalidErrMessage)
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = defaultShutDownTime
	}

	if c.Webserver.LoginRateLimit == 0 {
		c.Webserver.LoginRateLimit = defaultLoginRateLimit
	}

	if k := c.Webserver.CookieEncryptionKey; k != "" {
		raw, err := base64.StdEncoding.DecodeString(k)
		if err != nil || (len(raw) != 16 && len(raw) != 24 && len(raw) != 32) {
			return errors.Wrap(ErrInvalidCookieKey, invalidErrMessage)
		}
	}

	switch c.DB.GormEngine {
	case "":
		c.DB.GormEngine = EngineSQLite
	case EngineMySQL, EnginePostgres, EngineSQLite:
	default:
		return errors.Wrap(ErrUnknownGormEngine, invalidErrMessage)
	}

	s := &c.Webserver.Session

	if s.ExpiryTime <= 0 {
		s.ExpiryTime = defaultSessionExpiry
	}

	if s.CookieName == "" {
		s.CookieName = defaultCookieName
	}

	switch s.Backend {
	case "":
		s.Backend = SessionBackendDB
	case SessionBackendDB:
	case SessionBackendRedis:
		if c.Redis.Addr == "" {
			return errors.Wrap(ErrEmptyRedisAddr, invalidErrMessage)
		}
	case SessionBackendJWT:
		if len(s.SigningKey) < minSigningKeyLength {
			return errors.Wrap(ErrSigningKeyTooShort, invalidErrMessage)
		}
	default:
		return errors.Wrap(ErrUnknownSessionBackend, invalidErrMessage)
	}

	return nil
}
