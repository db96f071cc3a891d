package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"myblog/app/config"
	"myblog/app/metrics"
	"myblog/app/repositories"
	"myblog/app/routes"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// AppServer serves the blog over HTTP.
type AppServer struct {
	cfg    *config.Config
	log    *zap.SugaredLogger
	server *http.Server
}

// NewAppServer builds the router for store and wraps it in an http.Server.
func NewAppServer(cfg *config.Config, store *repositories.Store, log *zap.SugaredLogger) *AppServer {
	router := routes.SetupRoutes(store, routes.Options{
		PerPage: cfg.Blog.PerPage,
		Logger:  log,
		Metrics: metrics.New(),
	})
	return &AppServer{
		cfg: cfg,
		log: log,
		server: &http.Server{
			Addr:              cfg.Server.Addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Serve accepts connections on ln until ctx is cancelled, then shuts the
// server down gracefully.
func (a *AppServer) Serve(ctx context.Context, ln net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.log.Infow("server listening", "addr", ln.Addr().String())
		if err := a.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.log.Infow("shutting down server", "timeout", a.cfg.Server.ShutdownTimeout)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// RunAppServer opens the configured store and serves the blog on
// cfg.Server.Addr until ctx is cancelled.
func RunAppServer(ctx context.Context, cfg *config.Config, log *zap.SugaredLogger) error {
	store, err := repositories.Open(repositories.Options{
		Driver: cfg.Storage.Driver,
		Path:   cfg.Storage.Path,
		DSN:    cfg.Storage.DSN,
		Logger: log,
	})
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer store.Close()

	ln, err := net.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.Server.Addr, err)
	}

	err = NewAppServer(cfg, store, log).Serve(ctx, ln)
	log.Infow("server stopped")
	return err
}

func serveCommand(rt *runtime) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the blog web server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				rt.cfg.Server.Addr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return RunAppServer(ctx, rt.cfg, rt.log)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config server.addr)")
	return cmd
}
