package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"StockDesk/pkg/config"
	xhttp "StockDesk/pkg/http"
	applogger "StockDesk/pkg/logger"
)

// closer is anything holding infrastructure to release on shutdown.
type closer interface {
	Close() error
}

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	log        *applogger.Logger
	handlers   []xhttp.Handler
	journal    closer
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(cfg *config.Config, log *applogger.Logger, handlers []xhttp.Handler, journal closer) *App {
	if log == nil {
		log = applogger.Nop()
	}
	a := &App{cfg: cfg, log: log, handlers: handlers, journal: journal}
	a.httpServer = xhttp.NewServer(handlers,
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithLogger(log),
		xhttp.WithMetricsPath(metricsPath(cfg)),
		xhttp.WithCORSOrigins(cfg.Server.CORSOrigins),
	)
	return a
}

// Server exposes the HTTP server, mainly for tests.
func (a *App) Server() *xhttp.Server { return a.httpServer }

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.RunContext(ctx)
}

// RunContext serves until ctx is done, then shuts down.
func (a *App) RunContext(ctx context.Context) error {
	if err := a.httpServer.Start(); err != nil {
		a.log.Error("http server start error", applogger.Error(err))
		return err
	}
	a.log.Info("stockdesk started",
		applogger.Int("port", a.cfg.Server.Port),
		applogger.String("upstream", a.cfg.Upstream.BaseURL),
		applogger.Int("handlers", len(a.handlers)),
	)

	<-ctx.Done()
	a.log.Info("shutdown signal received")
	return a.shutdown()
}

// shutdown gracefully stops all services.
func (a *App) shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	var firstErr error
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
		firstErr = err
	}
	if a.journal != nil {
		if err := a.journal.Close(); err != nil {
			a.log.Warn("trade journal close error", applogger.Error(err))
		}
	}
	a.log.Info("shutdown complete")
	return firstErr
}

func metricsPath(cfg *config.Config) string {
	if !cfg.Metrics.Enabled {
		return ""
	}
	return cfg.Metrics.Path
}
