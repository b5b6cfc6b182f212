// Package daemon wires storage, sessions and the web service together.
package daemon

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/abrigo-digital/shelter-admin/internal/config"
	"github.com/abrigo-digital/shelter-admin/internal/db"
	"github.com/abrigo-digital/shelter-admin/internal/session"
	"github.com/abrigo-digital/shelter-admin/internal/web"
)

const (
	startupTimeout = 10 * time.Second
	purgeInterval  = time.Hour
)

type purger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	db         *gorm.DB
	rdb        *redis.Client
	store      session.Store
	webService *web.Service
	stopPurge  context.CancelFunc
}

// New opens the database, seeds it, opens the session store and builds the web service.
func New(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, config.ErrConfigNil
	}

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	conn, err := db.Open(&cfg.DB)
	if err != nil {
		return nil, err
	}

	if err = seed(ctx, cfg, conn); err != nil {
		return nil, err
	}

	d := &Daemon{cfg: cfg, db: conn}

	if cfg.Webserver.Session.Backend == config.SessionBackendRedis {
		d.rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		if err = d.rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to connect redis at %s: %w", cfg.Redis.Addr, err)
		}
	}

	var rdb redis.UniversalClient
	if d.rdb != nil {
		rdb = d.rdb
	}

	if d.store, err = session.New(cfg.Webserver.Session, conn, rdb, cfg.Log.AppName); err != nil {
		return nil, err
	}

	log.Info().Str("backend", cfg.Webserver.Session.Backend).Msg("session store ready")

	if d.webService, err = web.New(cfg, conn, d.store); err != nil {
		return nil, err
	}

	return d, nil
}

// Start serves HTTP until shutdown.
func (d *Daemon) Start() error {
	if p, ok := d.store.(purger); ok {
		var ctx context.Context
		ctx, d.stopPurge = context.WithCancel(context.Background())

		go purgeLoop(ctx, p)
	}

	go d.webService.WaitShutdown()

	err := d.webService.Start(":" + strconv.Itoa(d.cfg.Webserver.Port))

	d.close()

	return err
}

func (d *Daemon) close() {
	if d.stopPurge != nil {
		d.stopPurge()
	}

	if d.rdb != nil {
		if err := d.rdb.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close redis client")
		}
	}

	if sqlDB, err := d.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// purgeLoop removes expired sessions at start and then periodically.
func purgeLoop(ctx context.Context, p purger) {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for {
		n, err := p.PurgeExpired(ctx)
		if err != nil {
			log.Error().Err(err).Msg("failed to purge expired sessions")
		} else if n > 0 {
			log.Info().Int64("count", n).Msg("expired sessions purged")
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
