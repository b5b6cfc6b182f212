// Package web assembles the fiber application: middleware, pages and the JSON API.
package web

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/abrigo-digital/shelter-admin/internal/auth"
	"github.com/abrigo-digital/shelter-admin/internal/config"
	"github.com/abrigo-digital/shelter-admin/internal/logger"
	fiberlog "github.com/abrigo-digital/shelter-admin/internal/logger/adapter/fiber"
	"github.com/abrigo-digital/shelter-admin/internal/session"
	"github.com/abrigo-digital/shelter-admin/internal/web/gate"
	"github.com/abrigo-digital/shelter-admin/internal/web/handler"
	"github.com/abrigo-digital/shelter-admin/internal/web/handler/api/animal"
	"github.com/abrigo-digital/shelter-admin/internal/web/handler/api/authapi"
	"github.com/abrigo-digital/shelter-admin/internal/web/handler/api/breed"
	"github.com/abrigo-digital/shelter-admin/internal/web/handler/api/campaign"
	apidashboard "github.com/abrigo-digital/shelter-admin/internal/web/handler/api/dashboard"
	"github.com/abrigo-digital/shelter-admin/internal/web/handler/api/event"
	"github.com/abrigo-digital/shelter-admin/internal/web/handler/api/person"
	"github.com/abrigo-digital/shelter-admin/internal/web/handler/api/report"
	apisession "github.com/abrigo-digital/shelter-admin/internal/web/handler/api/session"
	"github.com/abrigo-digital/shelter-admin/internal/web/handler/api/user"
	"github.com/abrigo-digital/shelter-admin/internal/web/handler/dashboard"
	"github.com/abrigo-digital/shelter-admin/internal/web/handler/login"
	"github.com/abrigo-digital/shelter-admin/internal/web/handler/logout"
	authmw "github.com/abrigo-digital/shelter-admin/internal/web/middleware/auth"
)

const checkAlivePath = "/checkalive"

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
	guard        *auth.Guard
	authService  *auth.Service
}

// Start starts the web service on the given address and blocks until it stops.
func (s *Service) Start(addr string) error {
	log.Info().Str("addr", addr).Msg("http server listening")

	if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("fiber listen error: %w", err)
	}

	return nil
}

// WaitShutdown waits for SIGINT or SIGTERM and shuts the server down gracefully.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	log.Info().Msg("stopping http server ...")

	if err := s.App.Shutdown(); err != nil {
		log.Error().Err(err).Msg("")
	}

	log.Info().Msg("http server was stopped ... good bye...")
}

// Guard returns the server guard used by every protected route.
func (s *Service) Guard() *auth.Guard {
	return s.guard
}

// Auth returns the account and login service.
func (s *Service) Auth() *auth.Service {
	return s.authService
}

// New creates the web service.
func New(cfg *config.Config, db *gorm.DB, store session.Store) (*Service, error) {
	if cfg == nil || db == nil || store == nil {
		return nil, handler.ErrNilDeps
	}

	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        cfg.Title,
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
			Views:          newTemplateEngine(cfg),
		},
	)

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New(recover.Config{EnableStackTrace: cfg.DevMode}))
	}

	app.Use(fiberlog.New(fiberlog.Config{
		Config:    cfg.Log,
		UserLocal: auth.LocalUserID,
		Output:    logger.AccessWriter(cfg.Log),
	}))

	if cfg.Webserver.CookieEncryptionKey != "" {
		app.Use(encryptcookie.New(encryptcookie.Config{Key: cfg.Webserver.CookieEncryptionKey}))
	}

	resolver := auth.NewResolver(store, db)
	guard := auth.NewGuard(resolver, cfg.Webserver.Session.CookieName)
	authService := auth.NewService(auth.NewLocalProvider(db), store, cfg.Webserver.Session.ExpiryTime)

	s := &Service{
		App:          app,
		cfg:          cfg,
		fastShutDown: cfg.DevMode,
		guard:        guard,
		authService:  authService,
	}
	s.alive.Store(true)

	app.Get(checkAlivePath, s.checkAlive)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// serve embedded static files
	app.Use("/static",
		filesystem.New(
			filesystem.Config{
				Root:       http.FS(embeddedStaticFiles),
				PathPrefix: "static",
				Browse:     cfg.Webserver.BrowseStatic,
			},
		),
	)

	// page route guard; handlers stay behind the server guard
	app.Use(authmw.New(guard))

	if err := s.initHandlers(app, &handler.Deps{Cfg: cfg, DB: db, Guard: guard, Auth: authService}); err != nil {
		return nil, err
	}

	// redirect root to dashboard
	app.Get(handler.RootPath, func(c *fiber.Ctx) error {
		return c.Redirect(handler.HomePath)
	})

	return s, nil
}

func (s *Service) initHandlers(app *fiber.App, deps *handler.Deps) error {
	loginLimit := limiter.New(limiter.Config{
		Max:        s.cfg.Webserver.LoginRateLimit,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"message": "too many login attempts"})
		},
	})

	inits := []func() error{
		func() error { return new(login.Service).Init(app, deps, loginLimit) },
		func() error { return new(authapi.Service).Init(app, deps, loginLimit) },
		func() error { return new(logout.Service).Init(app, deps) },
		func() error { return new(dashboard.Service).Init(app, deps) },
		func() error { return new(apisession.Service).Init(app, deps) },
		func() error { return new(apidashboard.Service).Init(app, deps) },
		func() error { return new(animal.Service).Init(app, deps) },
		func() error { return new(breed.Service).Init(app, deps) },
		func() error { return new(campaign.Service).Init(app, deps) },
		func() error { return new(event.Service).Init(app, deps) },
		func() error { return new(report.Service).Init(app, deps) },
		func() error { return new(person.Service).Init(app, deps) },
		func() error { return new(user.Service).Init(app, deps) },
	}

	for _, fn := range inits {
		if err := fn(); err != nil {
			return err
		}
	}

	return nil
}

func (s *Service) checkAlive(c *fiber.Ctx) error {
	if !s.alive.Load() {
		return c.SendStatus(fiber.StatusServiceUnavailable)
	}

	return c.SendString("OK")
}

func newTemplateEngine(cfg *config.Config) *html.Engine {
	templateEngine := html.NewFileSystem(templatesFS(), ".gohtml")

	// in debug mode, use local filesystem for templates
	if cfg.DevMode {
		if _, err := os.Stat("./internal/web/templates"); err == nil {
			templateEngine = html.New("./internal/web/templates", ".gohtml")
			templateEngine.ShouldReload = true

			log.Warn().Msg("debug mode enabled: using local filesystem for templates")
		}
	}

	templateEngine.AddFuncMap(gate.FuncMap())

	return templateEngine
}
