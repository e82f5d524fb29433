// Package testutil holds fixtures shared by the package tests: an in-memory
// SQLite catalogue, a controllable clock, and sample payloads.
package testutil

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/aoideee/library-catalog/internal/data"
)

// OpenDB opens a private in-memory SQLite database with the books table
// created. The pool is capped at one connection because every new
// connection to ":memory:" would see an empty database.
func OpenDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open(data.SQLite.DriverName(), ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, data.CreateSchema(context.Background(), db, data.SQLite))
	return db
}

// NewBookModel returns a BookModel backed by a fresh in-memory database and
// stamped by clock.
func NewBookModel(t *testing.T, clock *Clock) data.BookModel {
	t.Helper()

	model := data.NewModels(OpenDB(t), data.SQLite).Books
	model.Now = clock.Now
	return model
}

// Clock hands out strictly increasing times, one step apart.
type Clock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

// NewClock starts a Clock at start.
func NewClock(start time.Time, step time.Duration) *Clock {
	return &Clock{now: start, step: step}
}

// Now returns the current time and advances the clock by one step.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

// Peek returns the current time without advancing.
func (c *Clock) Peek() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Str returns a pointer to s, for filling data.BookInput literals.
func Str(s string) *string {
	return &s
}

// DuneInput is a complete, valid payload.
func DuneInput() data.BookInput {
	return data.BookInput{
		Title:           Str("Dune"),
		Author:          Str("Herbert"),
		Genre:           Str("SciFi"),
		PublicationDate: Str("1965-08-01"),
		Edition:         Str("1st"),
		Summary:         Str("..."),
		Status:          Str("available"),
	}
}

// DuneJSON is DuneInput as a request body.
const DuneJSON = `{
	"title": "Dune",
	"author": "Herbert",
	"genre": "SciFi",
	"publication_date": "1965-08-01",
	"edition": "1st",
	"summary": "...",
	"status": "available"
}`

// Book returns a record ready for BookModel.Insert.
func Book(title string) *data.Book {
	return &data.Book{
		Title:           title,
		Author:          "Author of " + title,
		Genre:           "Fiction",
		PublicationDate: time.Date(2001, time.March, 4, 0, 0, 0, 0, time.UTC),
		Edition:         "1st",
		Summary:         "About " + title,
		Status:          data.StatusAvailable,
	}
}
