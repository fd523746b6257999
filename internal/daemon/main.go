// Package daemon builds every long lived collaborator once and runs the web service.
package daemon

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/storage/memory/v2"
	sessionmysql "github.com/gofiber/storage/mysql/v2"
	sessionpostgres "github.com/gofiber/storage/postgres/v3"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/anighost1/pp-be/internal/auth"
	"github.com/anighost1/pp-be/internal/config"
	"github.com/anighost1/pp-be/internal/db"
	"github.com/anighost1/pp-be/internal/db/dsn"
	"github.com/anighost1/pp-be/internal/web"
	"github.com/anighost1/pp-be/internal/web/handler"
	"github.com/anighost1/pp-be/internal/web/session"
)

const denylistTable = "token_denylist"

// ErrNilConfig is returned when the daemon is created without configuration.
var ErrNilConfig = errors.New("config is nil")

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	webService *web.Service
	denylist   *session.Denylist
}

// Start serves HTTP until SIGINT or SIGTERM, then shuts down gracefully.
// A listener that fails also releases the signal watcher.
func (d *Daemon) Start() error {
	return d.serve(fmt.Sprintf(":%d", d.cfg.Webserver.Port))
}

func (d *Daemon) serve(addr string) error {
	errc := make(chan error, 1)

	go func() {
		errc <- d.webService.Start(addr)
	}()

	ctx, cancel := context.WithCancel(context.Background())
	watcherDone := make(chan struct{})

	go func() {
		defer close(watcherDone)
		d.webService.WaitShutdown(ctx)
	}()

	err := <-errc
	cancel()
	<-watcherDone

	if closeErr := d.denylist.Close(); closeErr != nil {
		log.Error().Err(closeErr).Msg("failed to close denylist storage")
	}

	return err
}

// New opens the database, seeds it and wires the web service.
func New(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	conn, err := db.Open(cfg)
	if err != nil {
		return nil, err
	}

	if err = seed(cfg, conn); err != nil {
		return nil, fmt.Errorf("failed to seed database: %w", err)
	}

	denylist, err := session.New(denylistStorage(cfg))
	if err != nil {
		return nil, err
	}

	deps, err := newDeps(cfg, conn, denylist)
	if err != nil {
		return nil, err
	}

	webService, err := web.New(deps)
	if err != nil {
		return nil, err
	}

	log.Info().Str("engine", cfg.DB.GormEngine).Int("port", cfg.Webserver.Port).Msg("daemon initialized")

	return &Daemon{
		cfg:        cfg,
		webService: webService,
		denylist:   denylist,
	}, nil
}

func newDeps(cfg *config.Config, conn *gorm.DB, denylist *session.Denylist) (*handler.Deps, error) {
	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry)
	if err != nil {
		return nil, err
	}

	return &handler.Deps{
		Cfg:      cfg,
		DB:       conn,
		Access:   auth.NewService(auth.NewGormStore(conn), cfg.Auth.SuperAdminRole, auth.SortDirection(cfg.Menu.SortDirection)),
		Local:    auth.NewLocalProvider(conn),
		Tokens:   tokens,
		Denylist: denylist,
	}, nil
}

// denylistStorage keeps logged out tokens in the main database when it is a
// server engine, in memory for sqlite.
func denylistStorage(cfg *config.Config) fiber.Storage {
	switch cfg.DB.GormEngine {
	case config.EnginePostgres:
		return sessionpostgres.New(sessionpostgres.Config{
			ConnectionURI: dsn.StorageURI(cfg),
			Table:         denylistTable,
		})
	case config.EngineSQLite:
		return memory.New()
	default:
		return sessionmysql.New(sessionmysql.Config{
			ConnectionURI: dsn.StorageURI(cfg),
			Table:         denylistTable,
		})
	}
}
