// Package web wires the fiber application, its middleware and the API handlers.
package web

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/anighost1/pp-be/internal/auth"
	fiberlog "github.com/anighost1/pp-be/internal/logger/adapter/fiber"
	"github.com/anighost1/pp-be/internal/web/handler"
	"github.com/anighost1/pp-be/internal/web/handler/employee"
	"github.com/anighost1/pp-be/internal/web/handler/login"
	"github.com/anighost1/pp-be/internal/web/handler/logout"
	"github.com/anighost1/pp-be/internal/web/handler/master"
	"github.com/anighost1/pp-be/internal/web/handler/menu"
	"github.com/anighost1/pp-be/internal/web/handler/permission"
)

const (
	// CheckAlivePath answers load balancer health checks.
	CheckAlivePath = "/checkalive"
	// MetricsPath exposes prometheus metrics.
	MetricsPath = "/metrics"
)

// Service represents the web service.
type Service struct {
	App          *fiber.App
	deps         *handler.Deps
	fastShutDown bool
	alive        atomic.Bool
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan error, 1)

	go func() {
		err := s.App.Listen(addr)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}

		doneFiber <- err
	}()

	return <-doneFiber // wait for fiber to stop
}

// WaitShutdown waits for SIGINT or SIGTERM and shuts the server down gracefully.
// It returns without shutting down when ctx is done first.
func (s *Service) WaitShutdown(ctx context.Context) {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(irqSig)

	var sig os.Signal
	select {
	case <-ctx.Done():
		return
	case sig = <-irqSig:
	}

	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.deps.Cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.deps.Cfg.Webserver.ShutDownTime) * time.Second)
	}

	log.Info().Msg("stopping http server ...")

	if err := s.App.Shutdown(); err != nil {
		log.Error().Err(err).Msg("")
	}

	log.Info().Msg("http server was stopped ... good bye...")
}

// CheckAlive answers 200 while serving and 503 while shutting down.
func (s *Service) CheckAlive(c *fiber.Ctx) error {
	if !s.alive.Load() {
		return c.SendStatus(fiber.StatusServiceUnavailable)
	}

	return c.SendString("OK")
}

// New creates the web service and registers every handler.
func New(deps *handler.Deps) (*Service, error) {
	if !deps.Valid() {
		return nil, handler.ErrNilDeps
	}

	cfg := deps.Cfg

	fiberCfg := fiber.Config{
		ReadBufferSize: 8192,
		AppName:        cfg.Title,
		CaseSensitive:  true,
		Prefork:        false,
		Immutable:      true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return handler.Error(c, err)
		},
	}
	if cfg.Webserver.BodyLimit > 0 {
		fiberCfg.BodyLimit = cfg.Webserver.BodyLimit
	}

	app := fiber.New(fiberCfg)

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New(recover.Config{EnableStackTrace: cfg.DevMode}))
	}

	app.Use(fiberlog.New(fiberlog.Config{
		Config:        cfg.Log,
		CheckAliveURI: CheckAlivePath,
		UserLocal:     handler.LocalUserID,
	}))

	auth.RegisterMetrics()

	service := &Service{
		App:          app,
		deps:         deps,
		fastShutDown: cfg.DevMode,
	}
	service.alive.Store(true)

	app.Get(CheckAlivePath, service.CheckAlive)
	app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))

	handlers := []handler.Service{
		new(login.Service),
		new(logout.Service),
		new(menu.Service),
		new(permission.Service),
		new(employee.Service),
		new(master.Service),
	}
	for _, h := range handlers {
		if err := h.Init(app, deps); err != nil {
			return nil, err
		}
	}

	return service, nil
}
