// cmd/api/server.go
// This file contains the serve() method which starts the HTTP server and
// handles graceful shutdown when an OS signal is received.
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
)

// shutdownTimeout is how long in-flight requests get to finish after a signal.
const shutdownTimeout = 20 * time.Second

// newServer configures the HTTP server around the routed, wrapped handler.
// Errors the server logs on its own (TLS handshakes, broken connections)
// go through the application logger at ERROR level.
func (app *applicationDependencies) newServer() *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", app.config.port),
		Handler:      app.routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelError),
	}
}

// serve starts the HTTP server, then blocks until it receives a SIGINT or
// SIGTERM. On signal receipt it shuts down gracefully: in-flight requests get
// shutdownTimeout to complete before the server stops waiting for them.
func (app *applicationDependencies) serve() error {
	apiServer := app.newServer()

	// shutdownErr receives whatever Shutdown() returns.
	shutdownErr := make(chan error)

	go func() {
		// Buffered so the signal package never blocks on delivery.
		quit := make(chan os.Signal, 1)

		// SIGINT is Ctrl+C; SIGTERM is what container runtimes send on stop.
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		s := <-quit
		app.logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		// Shutdown stops accepting new connections and waits for active
		// requests to finish, respecting the context deadline.
		shutdownErr <- apiServer.Shutdown(ctx)
	}()

	app.logger.Info("starting server",
		"address", apiServer.Addr,
		"environment", app.config.environment,
		"driver", app.config.db.dialect,
	)

	// ListenAndServe always returns a non-nil error; ErrServerClosed means
	// Shutdown was called and is the normal way out.
	err := apiServer.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	// Wait for the shutdown goroutine to report how draining went.
	if err := <-shutdownErr; err != nil {
		return err
	}

	app.logger.Info("server stopped", "address", apiServer.Addr)
	return nil
}
