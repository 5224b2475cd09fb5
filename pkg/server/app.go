package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"MarketPulse/internal/handler/ws"
	xhttp "MarketPulse/pkg/http"
	applogger "MarketPulse/pkg/logger"
)

// Closer releases one resource at shutdown.
type Closer struct {
	Name  string
	Close func() error
}

// App ties the HTTP server, the websocket hub, and resource lifetimes
// together. Run blocks until a termination signal, then shuts everything
// down in reverse acquisition order.
type App struct {
	server          *xhttp.Server
	hub             *ws.Hub
	logger          *applogger.Logger
	shutdownTimeout time.Duration
	closers         []Closer
}

// NewApp assembles the application. hub may be nil.
func NewApp(server *xhttp.Server, hub *ws.Hub, l *applogger.Logger, shutdownTimeout time.Duration, closers ...Closer) *App {
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	return &App{
		server:          server,
		hub:             hub,
		logger:          l,
		shutdownTimeout: shutdownTimeout,
		closers:         closers,
	}
}

// Run starts the app and blocks until SIGINT or SIGTERM.
func (a *App) Run() error {
	if a.hub != nil {
		go a.hub.Run()
	}

	if err := a.server.Start(); err != nil {
		return err
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	a.logger.Info("shutting down", applogger.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
	defer cancel()

	if err := a.server.Stop(ctx); err != nil {
		a.logger.Error("server shutdown error", applogger.Error(err))
	}

	for i := len(a.closers) - 1; i >= 0; i-- {
		c := a.closers[i]
		if err := c.Close(); err != nil {
			a.logger.Error("close failed", applogger.String("resource", c.Name), applogger.Error(err))
		}
	}

	a.logger.Info("shutdown complete")
	return nil
}
