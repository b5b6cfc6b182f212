package session

import (
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/abrigo-digital/shelter-admin/internal/config"
)

// New returns the Store selected by cfg.Backend.
// rdb is only used by the redis backend and may be nil otherwise.
func New(cfg config.Session, db *gorm.DB, rdb redis.UniversalClient, issuer string) (Store, error) {
	switch cfg.Backend {
	case config.SessionBackendDB, "":
		if db == nil {
			return nil, fmt.Errorf("%s session backend: database is nil", config.SessionBackendDB)
		}

		return NewGormStore(db), nil
	case config.SessionBackendRedis:
		if rdb == nil {
			return nil, fmt.Errorf("%s session backend: client is nil", config.SessionBackendRedis)
		}

		return NewRedisStore(rdb), nil
	case config.SessionBackendJWT:
		return NewJWTStore([]byte(cfg.SigningKey), issuer), nil
	default:
		return nil, fmt.Errorf("%w: %s", config.ErrUnknownSessionBackend, cfg.Backend)
	}
}
