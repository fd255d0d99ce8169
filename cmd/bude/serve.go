package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "networkingbude/docs"
	"networkingbude/internal/adapters/auth"
	httpdelivery "networkingbude/internal/delivery/http"
	"networkingbude/internal/delivery/http/controllers"
	"networkingbude/internal/delivery/http/middleware"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 15 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()
			return serve(cmd.Context(), a)
		},
	}
}

func serve(ctx context.Context, a *app) error {
	if a.cfg.JWTSecret == "" {
		a.logger.Warn("JWT_SECRET not set, every admin request will be rejected")
	}
	verifier := auth.NewJWTVerifier(a.cfg.JWTSecret)

	var mediaController *controllers.MediaController
	if a.media != nil {
		mediaController = controllers.NewMediaController(a.logger, a.media)
	}
	mux := httpdelivery.NewRouter(
		controllers.NewSlotController(a.logger, a.slots),
		mediaController,
		controllers.NewAutoFillController(a.logger, a.autoFill, a.cfg.Regions),
		middleware.AdminOnly(verifier, a.profiles, a.logger),
	)
	handler := middleware.CORS(a.cfg.AllowedOrigins, middleware.LoggingMiddleware(a.logger, mux))

	srv := &http.Server{
		Addr:              ":" + a.cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server listening", "addr", srv.Addr, "env", a.cfg.Environment)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	a.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
