package data

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Dialect names the SQL database the books table lives in.
type Dialect string

const (
	Postgres Dialect = "postgres" // github.com/lib/pq
	SQLite   Dialect = "sqlite"   // modernc.org/sqlite
)

// ParseDialect validates a configured driver name.
func ParseDialect(name string) (Dialect, error) {
	switch d := Dialect(strings.ToLower(strings.TrimSpace(name))); d {
	case Postgres, SQLite:
		return d, nil
	default:
		return "", fmt.Errorf("unsupported database driver %q (want postgres or sqlite)", name)
	}
}

// DriverName is the name the dialect's driver registers with database/sql.
func (d Dialect) DriverName() string {
	return string(d)
}

// rebind rewrites the ? placeholders used throughout this package into the
// dialect's native form.
func (d Dialect) rebind(query string) string {
	if d != Postgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// sqliteTimeLayout is fixed width so stored timestamps sort as text.
const sqliteTimeLayout = "2006-01-02 15:04:05.000000000Z07:00"

// timeArg encodes a timestamp query argument.
func (d Dialect) timeArg(t time.Time) any {
	if d == SQLite {
		return t.UTC().Format(sqliteTimeLayout)
	}
	return t.UTC()
}

// dateArg encodes a calendar-date query argument.
func (d Dialect) dateArg(t time.Time) any {
	if d == SQLite {
		return t.Format(DateLayout)
	}
	return t
}

var schemas = map[Dialect]string{
	Postgres: `
		CREATE TABLE IF NOT EXISTS books (
			id               bigserial PRIMARY KEY,
			title            varchar(200) NOT NULL,
			author           varchar(200) NOT NULL,
			genre            varchar(100) NOT NULL,
			publication_date date NOT NULL,
			edition          varchar(50) NOT NULL,
			summary          text NOT NULL,
			status           varchar(20) NOT NULL DEFAULT 'available'
			                 CHECK (status IN ('available', 'borrowed', 'lost', 'damaged')),
			created_at       timestamp(6) with time zone NOT NULL,
			updated_at       timestamp(6) with time zone NOT NULL
		);
		CREATE INDEX IF NOT EXISTS books_created_at_idx ON books (created_at DESC, id DESC);`,
	SQLite: `
		CREATE TABLE IF NOT EXISTS books (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			title            TEXT NOT NULL,
			author           TEXT NOT NULL,
			genre            TEXT NOT NULL,
			publication_date DATE NOT NULL,
			edition          TEXT NOT NULL,
			summary          TEXT NOT NULL,
			status           TEXT NOT NULL DEFAULT 'available'
			                 CHECK (status IN ('available', 'borrowed', 'lost', 'damaged')),
			created_at       DATETIME NOT NULL,
			updated_at       DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS books_created_at_idx ON books (created_at DESC, id DESC);`,
}

// CreateSchema creates the books table if it does not exist yet. It is used
// to bootstrap embedded SQLite databases; PostgreSQL deployments are expected
// to provision the table themselves.
func CreateSchema(ctx context.Context, db *sql.DB, d Dialect) error {
	ddl, ok := schemas[d]
	if !ok {
		return fmt.Errorf("no schema for dialect %q", d)
	}
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create books schema: %w", err)
	}
	return nil
}

// timeLayouts are the text encodings a timestamp may come back in when the
// driver does not decode it itself.
var timeLayouts = []string{
	sqliteTimeLayout,
	"2006-01-02 15:04:05.999999999 -0700 MST",
	"2006-01-02 15:04:05.999999999-07:00",
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	DateLayout,
}

// timeScanner decodes DATE and TIMESTAMP columns from either dialect.
type timeScanner struct {
	dst *time.Time
}

func (s timeScanner) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*s.dst = v.UTC()
		return nil
	case string:
		return s.parse(v)
	case []byte:
		return s.parse(string(v))
	default:
		return fmt.Errorf("cannot scan %T into time.Time", src)
	}
}

func (s timeScanner) parse(v string) error {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			*s.dst = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("cannot parse %q as time", v)
}
