// internal/data/models.go
package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Models is a top-level container that groups all database model types together.
type Models struct {
	Books BookModel // Handles all database operations for the books table
}

// NewModels constructs a Models value wired up to the given database
// connection pool. Call this once during application startup.
func NewModels(db *sql.DB, dialect Dialect) Models {
	return Models{
		Books: BookModel{DB: db, Dialect: dialect},
	}
}

// ErrRecordNotFound is returned when a query finds no matching row.
var ErrRecordNotFound = errors.New("record not found")

// Filters holds pagination and sorting parameters for list queries.
type Filters struct {
	Page         int      // Current page number (1-indexed)
	PageSize     int      // Number of records per page
	Sort         string   // Column name to sort by (prefix with "-" for DESC)
	SortSafeList []string // Allowed sort values, guards the ORDER BY clause
}

// sortColumn returns the validated column name for ORDER BY, defaulting to id.
func (f Filters) sortColumn() string {
	for _, safe := range f.SortSafeList {
		if f.Sort == safe {
			return strings.TrimPrefix(f.Sort, "-")
		}
	}
	return "id"
}

// sortDirection returns "ASC" or "DESC" based on the Sort prefix.
func (f Filters) sortDirection() string {
	if strings.HasPrefix(f.Sort, "-") {
		return "DESC"
	}
	return "ASC"
}

func (f Filters) limit() int  { return f.PageSize }
func (f Filters) offset() int { return (f.Page - 1) * f.PageSize }

// Metadata contains pagination information returned alongside list responses.
type Metadata struct {
	CurrentPage  int
	PageSize     int
	TotalPages   int
	TotalRecords int
}

// CalculateMetadata computes page metadata from a record count. An empty
// table still has one (empty) page.
func CalculateMetadata(totalRecords, page, pageSize int) Metadata {
	totalPages := totalRecords / pageSize
	if totalRecords%pageSize != 0 {
		totalPages++
	}
	if totalPages < 1 {
		totalPages = 1
	}
	return Metadata{
		CurrentPage:  page,
		PageSize:     pageSize,
		TotalPages:   totalPages,
		TotalRecords: totalRecords,
	}
}

// InRange reports whether CurrentPage is one of the pages that exist.
func (m Metadata) InRange() bool {
	return m.CurrentPage >= 1 && m.CurrentPage <= m.TotalPages
}

func (m Metadata) HasNext() bool     { return m.CurrentPage < m.TotalPages }
func (m Metadata) HasPrevious() bool { return m.CurrentPage > 1 }

// BookModel wraps a *sql.DB connection and provides methods for
// creating, reading, updating, and deleting book records.
type BookModel struct {
	DB      *sql.DB          // Shared database connection pool
	Dialect Dialect          // Placeholder syntax and argument encoding
	Now     func() time.Time // Clock for created_at/updated_at; time.Now when nil
}

func (m BookModel) now() time.Time {
	if m.Now != nil {
		return m.Now().UTC()
	}
	return time.Now().UTC()
}

const bookColumns = `id, title, author, genre, publication_date, edition, summary, status, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBook(row rowScanner) (*Book, error) {
	var book Book
	err := row.Scan(
		&book.ID,
		&book.Title,
		&book.Author,
		&book.Genre,
		timeScanner{&book.PublicationDate},
		&book.Edition,
		&book.Summary,
		&book.Status,
		timeScanner{&book.CreatedAt},
		timeScanner{&book.UpdatedAt},
	)
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// Insert adds a new book record to the database.
// After a successful insert, the database-assigned id and the created_at and
// updated_at values are written back into the book struct.
func (m BookModel) Insert(ctx context.Context, book *Book) error {
	query := m.Dialect.rebind(`
		INSERT INTO books (title, author, genre, publication_date, edition, summary, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`)

	now := m.now()
	args := []any{
		book.Title,
		book.Author,
		book.Genre,
		m.Dialect.dateArg(book.PublicationDate),
		book.Edition,
		book.Summary,
		string(book.Status),
		m.Dialect.timeArg(now),
		m.Dialect.timeArg(now),
	}

	if err := m.DB.QueryRowContext(ctx, query, args...).Scan(&book.ID); err != nil {
		return fmt.Errorf("insert book: %w", err)
	}

	book.CreatedAt = now
	book.UpdatedAt = now
	return nil
}

// Get retrieves a single book by its primary key.
// Returns ErrRecordNotFound if no book with the given id exists.
func (m BookModel) Get(ctx context.Context, id int64) (*Book, error) {
	if id < 1 {
		return nil, ErrRecordNotFound
	}

	query := m.Dialect.rebind(`SELECT ` + bookColumns + ` FROM books WHERE id = ?`)

	book, err := scanBook(m.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, fmt.Errorf("get book %d: %w", id, err)
		}
	}
	return book, nil
}

// Count returns the number of books in the catalogue.
func (m BookModel) Count(ctx context.Context) (int, error) {
	var total int
	if err := m.DB.QueryRowContext(ctx, `SELECT count(*) FROM books`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count books: %w", err)
	}
	return total, nil
}

// GetAll retrieves one page of books ordered by filters.Sort. Rows with equal
// sort keys are ordered by id in the same direction so pages never overlap.
func (m BookModel) GetAll(ctx context.Context, filters Filters) ([]*Book, error) {
	direction := filters.sortDirection()
	query := m.Dialect.rebind(fmt.Sprintf(`
		SELECT %s
		FROM books
		ORDER BY %s %s, id %s
		LIMIT ? OFFSET ?`, bookColumns, filters.sortColumn(), direction, direction))

	rows, err := m.DB.QueryContext(ctx, query, filters.limit(), filters.offset())
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	books := []*Book{}
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("list books: %w", err)
		}
		books = append(books, book)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

// Update saves every mutable field of book back to the database and refreshes
// updated_at. Returns ErrRecordNotFound if the row no longer exists.
func (m BookModel) Update(ctx context.Context, book *Book) error {
	query := m.Dialect.rebind(`
		UPDATE books
		SET title = ?, author = ?, genre = ?, publication_date = ?,
		    edition = ?, summary = ?, status = ?, updated_at = ?
		WHERE id = ?`)

	now := m.now()
	args := []any{
		book.Title,
		book.Author,
		book.Genre,
		m.Dialect.dateArg(book.PublicationDate),
		book.Edition,
		book.Summary,
		string(book.Status),
		m.Dialect.timeArg(now),
		book.ID,
	}

	result, err := m.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update book %d: %w", book.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update book %d: %w", book.ID, err)
	}
	if rowsAffected == 0 {
		return ErrRecordNotFound
	}

	book.UpdatedAt = now
	return nil
}

// Delete removes the book with the given id from the database.
// Returns ErrRecordNotFound if no matching record exists.
func (m BookModel) Delete(ctx context.Context, id int64) error {
	if id < 1 {
		return ErrRecordNotFound
	}

	query := m.Dialect.rebind(`DELETE FROM books WHERE id = ?`)

	result, err := m.DB.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete book %d: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete book %d: %w", id, err)
	}
	if rowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
