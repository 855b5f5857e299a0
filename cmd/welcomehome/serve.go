package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/erazemk/welcomehome/internal/api"
	"github.com/erazemk/welcomehome/internal/auth"
	"github.com/erazemk/welcomehome/internal/service"
	"github.com/erazemk/welcomehome/internal/store"
	"github.com/erazemk/welcomehome/internal/web"
)

func serveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}
	cmd.Flags().StringP("addr", "a", ":8080", "listen address")
	mustBind(a.v, "http.addr", cmd.Flags().Lookup("addr"))
	return cmd
}

func (a *app) serve(ctx context.Context) error {
	fresh := a.isNewSQLite()

	conn, err := a.openDB()
	if err != nil {
		return err
	}
	defer conn.Close()

	c, closeCache := a.openCache(ctx)
	defer closeCache()
	pub, closeEvents := a.openEvents()
	defer closeEvents()

	services := service.New(service.Deps{DB: conn, Cache: c, Events: pub})

	// A database file that did not exist gets the default reference data.
	if fresh {
		if err := seedDefaults(ctx, services); err != nil {
			return err
		}
		slog.Info("database initialized", "path", a.cfg.Database.DSN)
	}

	secret := a.cfg.Session.Secret
	if secret == "" {
		secret, err = store.GetSessionSecret(ctx, conn)
		if err != nil {
			return err
		}
	}
	issuer := auth.NewIssuer(secret, a.cfg.Session.TTL)

	apiRouter := api.NewRouter(services, conn, issuer)
	webRouter, err := web.NewRouter(services, conn, issuer)
	if err != nil {
		return fmt.Errorf("setting up web router: %w", err)
	}

	// Combine: API routes take priority, web routes handle the rest.
	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/", webRouter)

	server := &http.Server{
		Addr:              a.cfg.HTTP.Addr,
		Handler:           api.LoggingMiddleware(mux),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	done := make(chan struct{})
	go func() {
		defer close(done)
		sig := <-quit
		slog.Info("shutdown signal received", "signal", sig.String())

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server forced to shutdown", "error", err)
		}
	}()

	slog.Info("server started", "addr", a.cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving: %w", err)
	}
	<-done

	slog.Info("server stopped, closing database")
	return nil
}
