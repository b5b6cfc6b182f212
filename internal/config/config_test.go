package config

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func etcPath(t *testing.T) string {
	t.Helper()

	projectRoot, err := filepath.Abs("../../")
	require.NoError(t, err)

	return filepath.Join(projectRoot, "etc") + string(filepath.Separator)
}

func TestReadConfig(t *testing.T) {
	cfg, err := ReadConfig(etcPath(t))
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.Title)
	assert.NotZero(t, cfg.Webserver.Port)
	assert.NotEmpty(t, cfg.Webserver.URL)
	assert.Equal(t, EngineSQLite, cfg.DB.GormEngine)
	assert.Equal(t, 8*time.Hour, cfg.Webserver.Session.ExpiryTime)
	assert.Equal(t, SessionBackendDB, cfg.Webserver.Session.Backend)
	assert.Equal(t, "session", cfg.Webserver.Session.CookieName)
	assert.Equal(t, "admin@teste.com.br", cfg.Bootstrap.Email)
	assert.Equal(t, "access.log", cfg.Log.File.Access.Name)
	assert.True(t, cfg.Log.Console.Enabled)
}

func TestReadConfig_MissingFile(t *testing.T) {
	_, err := ReadConfig(t.TempDir() + string(filepath.Separator))
	require.Error(t, err)
}

func TestReadConfigWithJSONOverride(t *testing.T) {
	t.Setenv(EnvConfigJSON, `{"Title":"Test Override","Webserver":{"Port":9090}}`)

	cfg, err := ReadConfig(etcPath(t))
	require.NoError(t, err)

	assert.Equal(t, "Test Override", cfg.Title)
	assert.Equal(t, 9090, cfg.Webserver.Port)
	// values not named in the override survive
	assert.Equal(t, "http://localhost:8080", cfg.Webserver.URL)
}

func TestReadConfigWithBrokenJSONOverride(t *testing.T) {
	t.Setenv(EnvConfigJSON, `{"Title":`)

	_, err := ReadConfig(etcPath(t))
	require.Error(t, err)
}

func TestConfigValidation(t *testing.T) {
	base := func() Config {
		return Config{Webserver: Webserver{Port: 8080, URL: "http://localhost:8080"}}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{name: "valid config", mutate: func(*Config) {}},
		{name: "missing port", mutate: func(c *Config) { c.Webserver.Port = 0 }, wantErr: ErrWebServerPortCanNotBeZero},
		{name: "missing URL", mutate: func(c *Config) { c.Webserver.URL = "" }, wantErr: ErrEmptyURL},
		{name: "unknown engine", mutate: func(c *Config) { c.DB.GormEngine = "oracle" }, wantErr: ErrUnknownGormEngine},
		{name: "postgres engine", mutate: func(c *Config) { c.DB.GormEngine = EnginePostgres }},
		{name: "unknown backend", mutate: func(c *Config) { c.Webserver.Session.Backend = "memcache" }, wantErr: ErrUnknownSessionBackend},
		{
			name:    "redis without address",
			mutate:  func(c *Config) { c.Webserver.Session.Backend = SessionBackendRedis },
			wantErr: ErrEmptyRedisAddr,
		},
		{
			name: "redis with address",
			mutate: func(c *Config) {
				c.Webserver.Session.Backend = SessionBackendRedis
				c.Redis.Addr = "localhost:6379"
			},
		},
		{
			name: "jwt with short key",
			mutate: func(c *Config) {
				c.Webserver.Session.Backend = SessionBackendJWT
				c.Webserver.Session.SigningKey = "short"
			},
			wantErr: ErrSigningKeyTooShort,
		},
		{
			name:    "cookie key not base64",
			mutate:  func(c *Config) { c.Webserver.CookieEncryptionKey = "not base64!" },
			wantErr: ErrInvalidCookieKey,
		},
		{
			name:    "cookie key wrong size",
			mutate:  func(c *Config) { c.Webserver.CookieEncryptionKey = "c2hvcnQ=" },
			wantErr: ErrInvalidCookieKey,
		},
		{
			name:   "cookie key",
			mutate: func(c *Config) { c.Webserver.CookieEncryptionKey = "MDEyMzQ1Njc4OWFiY2RlZjAxMjM0NTY3ODlhYmNkZWY=" },
		},
		{
			name: "jwt with key",
			mutate: func(c *Config) {
				c.Webserver.Session.Backend = SessionBackendJWT
				c.Webserver.Session.SigningKey = strings.Repeat("k", 32)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(&c)

			err := validate(&c)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
		})
	}
}

func TestConfigValidation_Defaults(t *testing.T) {
	c := Config{Webserver: Webserver{Port: 8080, URL: "http://localhost:8080"}}
	require.NoError(t, validate(&c))

	assert.Equal(t, 5, c.Webserver.ShutDownTime)
	assert.Equal(t, 10, c.Webserver.LoginRateLimit)
	assert.Equal(t, EngineSQLite, c.DB.GormEngine)
	assert.Equal(t, SessionBackendDB, c.Webserver.Session.Backend)
	assert.Equal(t, "session", c.Webserver.Session.CookieName)
	assert.Equal(t, 24*time.Hour, c.Webserver.Session.ExpiryTime)
}

func TestDumpConfig(t *testing.T) {
	cfg := Config{
		Title:   "Test",
		DevMode: true,
		Webserver: Webserver{
			Port: 8080,
			URL:  "http://localhost:8080",
		},
	}

	tomlStr, err := DumpConfig(&cfg)
	require.NoError(t, err)
	assert.Contains(t, tomlStr, "Test")

	jsonStr, err := DumpConfigJSON(&cfg)
	require.NoError(t, err)
	assert.Contains(t, jsonStr, `"Title": "Test"`)
}
