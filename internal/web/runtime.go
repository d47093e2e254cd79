package web

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	defaultAddr            = ":8080"
	defaultShutdownTimeout = 30 * time.Second
	defaultWriteTimeout    = 60 * time.Second
)

// RunOption configures App.Run.
type RunOption func(*runConfig)

type runConfig struct {
	shutdownTimeout time.Duration
	writeTimeout    time.Duration
	hooks           []func(context.Context) error
}

// ShutdownTimeout bounds graceful shutdown including hooks.
func ShutdownTimeout(d time.Duration) RunOption {
	return func(c *runConfig) {
		if d > 0 {
			c.shutdownTimeout = d
		}
	}
}

// WriteTimeout caps the time spent on one response. Keep it above the
// request timeout so handlers can still write their error.
func WriteTimeout(d time.Duration) RunOption {
	return func(c *runConfig) {
		if d > 0 {
			c.writeTimeout = d
		}
	}
}

// ShutdownHook runs fn after the server stops accepting requests.
// Hooks run in registration order, even when serving failed.
func ShutdownHook(fn func(context.Context) error) RunOption {
	return func(c *runConfig) {
		if fn != nil {
			c.hooks = append(c.hooks, fn)
		}
	}
}

// Run serves the app on addr until ctx is cancelled or SIGINT/SIGTERM
// arrives, then drains connections and runs the shutdown hooks.
func (a *App) Run(ctx context.Context, addr string, opts ...RunOption) error {
	cfg := runConfig{shutdownTimeout: defaultShutdownTimeout, writeTimeout: defaultWriteTimeout}
	for _, opt := range opts {
		opt(&cfg)
	}
	if addr == "" {
		addr = defaultAddr
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           a,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.writeTimeout,
		IdleTimeout:       2 * time.Minute,
		MaxHeaderBytes:    1 << 20,
		ErrorLog:          slog.NewLogLogger(a.logger.Handler(), slog.LevelWarn),
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("server listening", slog.String("address", ln.Addr().String()))
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		return a.shutdown(srv, cfg)
	})
	return g.Wait()
}

func (a *App) shutdown(srv *http.Server, cfg runConfig) error {
	a.logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.shutdownTimeout)
	defer cancel()

	errs := []error{srv.Shutdown(ctx)}
	for _, hook := range cfg.hooks {
		if err := hook(ctx); err != nil {
			a.logger.Error("shutdown hook failed", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}
	a.logger.Info("shutdown completed")
	return nil
}
