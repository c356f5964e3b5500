package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rehber-app/anket-client/internal/handlers"
	"github.com/rehber-app/anket-client/internal/store"
	"github.com/rehber-app/anket-client/internal/utils"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the session-aware HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "listen port (defaults to PORT)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	port := a.cfg.Port
	if servePort != "" {
		port = servePort
	}

	if a.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	sessions := store.NewSessions(a.manager.NewStore)

	router := gin.New()
	router.Use(gin.Recovery(), utils.LoggerMiddleware(a.logger))
	handlers.NewHandlerManager(a.manager, sessions, a.logger).SetupRoutes(router)

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info("HTTP server listening", "port", port, "submit_endpoint", a.manager.Submission().Endpoint())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		sweepSessions(gctx, sessions, a.cfg.SessionIdle, a.logger)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		a.logger.Info("Shutting down HTTP server")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// sweepSessions drops idle sessions until ctx is done.
func sweepSessions(ctx context.Context, sessions *store.Sessions, maxIdle time.Duration, logger utils.Logger) {
	interval := maxIdle / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if dropped := sessions.Sweep(maxIdle); dropped > 0 {
				logger.Info("Dropped idle sessions", "count", dropped, "remaining", sessions.Len())
			}
		}
	}
}
