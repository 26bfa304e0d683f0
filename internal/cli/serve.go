package cli

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/tommorgenstern/gradus/internal/config"
	"github.com/tommorgenstern/gradus/internal/web"
	"github.com/tommorgenstern/gradus/internal/workers"
)

// Grace period for in-flight requests on shutdown.
const shutdownTimeout = 10 * time.Second

// Represents the 'gradus serve' command.
type ServeCmd struct {
	Bind    string `help:"Bind address. Overrides BIND." placeholder:"ADDR"`
	Port    int    `help:"Listen port. Overrides PORT." placeholder:"PORT"`
	Workers int    `help:"Worker process count. Overrides WORKERS." placeholder:"N"`
	DataDir string `help:"Data directory. Overrides DATA_DIR." placeholder:"DIR" type:"path"`
}

// Executes the serve command.
//
// With one worker the process serves directly. With more, it becomes a
// supervisor that binds the socket once and re-executes itself as worker
// processes sharing it; those re-executed workers take the other branch.
func (c *ServeCmd) Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	c.apply(&cfg)

	if workers.IsWorker() {
		listener, err := workers.Listener()
		if err != nil {
			return err
		}
		return c.serve(ctx, cfg, listener)
	}

	if cfg.Workers > 1 {
		supervisor := &workers.Supervisor{Addr: cfg.Addr(), Count: cfg.Workers}
		return supervisor.Run(ctx)
	}

	return c.serve(ctx, cfg, nil)
}

// Applies explicit flag values over the loaded configuration.
func (c *ServeCmd) apply(cfg *config.Config) {
	if c.Bind != "" {
		cfg.Bind = c.Bind
	}
	if c.Port != 0 {
		cfg.Port = c.Port
	}
	if c.Workers != 0 {
		cfg.Workers = c.Workers
	}
	if c.DataDir != "" {
		cfg.DataDir = c.DataDir
	}
}

// Serves until the context is cancelled, on the given listener if one
// was inherited.
func (c *ServeCmd) serve(ctx context.Context, cfg config.Config, listener net.Listener) error {
	srv := web.NewServer(web.Options{
		Addr:     cfg.Addr(),
		DataDir:  cfg.DataDir,
		Debug:    cfg.Debug,
		Listener: listener,
	})

	failed := make(chan error, 1)
	go func() {
		failed <- srv.Start()
	}()

	slog.Info("dashboard is running", "addr", cfg.Addr(), "data", cfg.DataDir)

	select {
	case <-ctx.Done():
		slog.Info("shutting down")
		stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Stop(stopCtx)
	case err := <-failed:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
