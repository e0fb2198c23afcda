package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/mytheresa/catalog-admin/app/config"
	"github.com/mytheresa/catalog-admin/app/logging"
)

// Run serves handler on cfg.HTTP.Addr until ctx is done, then shuts down
// gracefully within cfg.HTTP.ShutdownTimeout.
func Run(ctx context.Context, cfg *config.Config, handler http.Handler) error {
	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	logging.Logger().Info("http server listening", "addr", cfg.HTTP.Addr, "env", cfg.Env)
	go func() {
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logging.Logger().Info("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		err := srv.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}
