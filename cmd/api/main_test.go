package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aoideee/library-catalog/internal/data"
	"github.com/aoideee/library-catalog/internal/testutil"
)

func TestOpenDB_SQLiteCreatesSchema(t *testing.T) {
	var settings serverConfig
	settings.db.dialect = data.SQLite
	settings.db.dsn = ":memory:"
	settings.db.maxOpenConns = 25
	settings.db.maxIdleConns = 25

	db, err := openDB(settings)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	assert.Equal(t, 1, db.Stats().MaxOpenConnections)

	app := newApplication(settings, slog.New(slog.NewTextHandler(io.Discard, nil)), db)
	book := testutil.Book("Emma")
	require.NoError(t, app.models.Books.Insert(context.Background(), book))

	count, err := app.models.Books.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNewServer(t *testing.T) {
	app := newTestApp(t)
	app.config.port = 4321

	srv := app.newServer()
	assert.Equal(t, ":4321", srv.Addr)
	assert.Equal(t, 5*time.Second, srv.ReadTimeout)
	assert.Equal(t, 10*time.Second, srv.WriteTimeout)
	assert.NotNil(t, srv.ErrorLog)

	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}
