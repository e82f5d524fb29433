// Package main is the entry point for the library catalogue API server.
// It wires together configuration, the database connection, and the HTTP router.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	_ "github.com/lib/pq"  // Register the PostgreSQL driver with database/sql.
	_ "modernc.org/sqlite" // Register the SQLite driver with database/sql.

	"github.com/aoideee/library-catalog/internal/catalog"
	"github.com/aoideee/library-catalog/internal/data"
)

// appVersion is the current version of the API, shown in logs.
const appVersion = "1.0.0"

// applicationDependencies bundles every shared resource that HTTP handlers need.
// A pointer to this struct is passed as the receiver on all handler and route methods.
type applicationDependencies struct {
	config  serverConfig     // Server configuration loaded from flags
	logger  *slog.Logger     // Structured logger
	db      *sql.DB          // Pool, kept for readiness checks
	models  data.Models      // Database model layer for all tables
	catalog *catalog.Service // Book operations and their envelopes
}

func newApplication(settings serverConfig, logger *slog.Logger, db *sql.DB) *applicationDependencies {
	models := data.NewModels(db, settings.db.dialect)
	return &applicationDependencies{
		config:  settings,
		logger:  logger,
		db:      db,
		models:  models,
		catalog: catalog.NewService(models.Books, time.Now),
	}
}

// @title Library Catalog API
// @version 1.0
// @description Create, list, retrieve, replace and delete catalogued books.
// @BasePath /api/v1
func main() {
	loadEnvFiles()

	settings, err := parseConfig(os.Args[1:], os.Getenv)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := newLogger(os.Stdout, settings)

	db, err := openDB(settings)
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
	defer db.Close()

	logger.Info("database connection pool established", "driver", settings.db.dialect, "version", appVersion)

	app := newApplication(settings, logger, db)

	if err := app.serve(); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

// newLogger writes human-readable text in development and JSON elsewhere.
func newLogger(w io.Writer, settings serverConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: settings.logLevel}
	if settings.environment == "development" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// openDB opens a connection pool for the configured driver, then pings the
// database with a 5-second timeout to confirm it is reachable. SQLite
// databases get the books table created on first use.
func openDB(settings serverConfig) (*sql.DB, error) {
	dialect := settings.db.dialect

	// sql.Open only validates the DSN format; it does not actually connect yet.
	db, err := sql.Open(dialect.DriverName(), settings.db.dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(settings.db.maxOpenConns)
	db.SetMaxIdleConns(settings.db.maxIdleConns)
	db.SetConnMaxIdleTime(settings.db.maxIdleTime)
	if dialect == data.SQLite {
		// SQLite allows a single writer; one connection avoids "database is locked".
		db.SetMaxOpenConns(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	if dialect == data.SQLite {
		if err := data.CreateSchema(ctx, db, dialect); err != nil {
			db.Close()
			return nil, err
		}
	}

	return db, nil
}
