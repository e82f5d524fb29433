// Package catalog implements the book catalogue operations and the response
// envelopes they produce. It knows nothing about HTTP routing; handlers pass
// decoded input in and write the returned Envelope out.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/aoideee/library-catalog/internal/data"
	"github.com/aoideee/library-catalog/internal/validator"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 10

	// BooksPath is the collection path pagination links point at.
	BooksPath = "/api/v1/books"
)

// listFilters orders newest first.
var listFilters = data.Filters{
	Sort:         "-created_at",
	SortSafeList: []string{"created_at", "-created_at"},
}

// BookStore is the record store the service reads and writes. data.BookModel
// satisfies it.
type BookStore interface {
	Count(ctx context.Context) (int, error)
	GetAll(ctx context.Context, filters data.Filters) ([]*data.Book, error)
	Get(ctx context.Context, id int64) (*data.Book, error)
	Insert(ctx context.Context, book *data.Book) error
	Update(ctx context.Context, book *data.Book) error
	Delete(ctx context.Context, id int64) error
}

// Service runs the five catalogue operations. Every method returns the
// envelope to send; a non-nil error means the store failed and the caller
// should answer with a server error instead.
type Service struct {
	books BookStore
	now   func() time.Time
}

// NewService returns a Service over books. now supplies "today" for
// publication date checks; time.Now is used when it is nil.
func NewService(books BookStore, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{books: books, now: now}
}

// List returns one page of books, newest first.
func (s *Service) List(ctx context.Context, page, perPage int) (Envelope, error) {
	v := validator.New()
	v.Check(perPage >= 1, "per_page", "Ensure this value is greater than or equal to 1.")
	if !v.Valid() {
		return ValidationFailed(v.Errors), nil
	}

	total, err := s.books.Count(ctx)
	if err != nil {
		return Envelope{}, err
	}

	meta := data.CalculateMetadata(total, page, perPage)
	if !meta.InRange() {
		return Failure(http.StatusNotFound, "Page not found", Detail{
			Detail: fmt.Sprintf("Page %d does not exist. Total pages: %d", page, meta.TotalPages),
		}), nil
	}

	filters := listFilters
	filters.Page = page
	filters.PageSize = perPage

	books, err := s.books.GetAll(ctx, filters)
	if err != nil {
		return Envelope{}, err
	}

	env := Success(http.StatusOK, "Books retrieved successfully", ListData{
		Books: newBookResponses(books),
		Pagination: Pagination{
			CurrentPage: meta.CurrentPage,
			PerPage:     meta.PageSize,
			TotalPages:  meta.TotalPages,
			TotalBooks:  meta.TotalRecords,
		},
	})
	env.Links = pageLinks(meta)
	return env, nil
}

func pageLinks(meta data.Metadata) *Links {
	links := &Links{Self: pageURL(meta.CurrentPage)}
	if meta.HasNext() {
		next := pageURL(meta.CurrentPage + 1)
		links.Next = &next
	}
	if meta.HasPrevious() {
		prev := pageURL(meta.CurrentPage - 1)
		links.Prev = &prev
	}
	return links
}

func pageURL(page int) string {
	return BooksPath + "?page=" + strconv.Itoa(page)
}

// Retrieve returns a single book. id is the path segment exactly as the
// client sent it; anything that is not a positive integer is reported as a
// missing book.
func (s *Service) Retrieve(ctx context.Context, id string) (Envelope, error) {
	book, err := s.find(ctx, id)
	if err != nil {
		return lookupFailed(id, err)
	}
	return Success(http.StatusOK, "Book retrieved successfully", BookData{Book: NewBookResponse(book)}), nil
}

// Exists reports whether id names a stored book. When it does not, the
// returned envelope is the 404 to send.
func (s *Service) Exists(ctx context.Context, id string) (Envelope, bool, error) {
	if _, err := s.find(ctx, id); err != nil {
		env, err := lookupFailed(id, err)
		return env, false, err
	}
	return Envelope{}, true, nil
}

// Create validates input and stores it as a new book.
func (s *Service) Create(ctx context.Context, input data.BookInput) (Envelope, error) {
	book := &data.Book{Status: data.StatusAvailable}

	v := validator.New()
	data.ValidateBook(v, input, book, data.Today(s.now()))
	if !v.Valid() {
		return ValidationFailed(v.Errors), nil
	}

	if err := s.books.Insert(ctx, book); err != nil {
		return Envelope{}, err
	}
	return Success(http.StatusCreated, "Book created successfully", BookData{Book: NewBookResponse(book)}), nil
}

// Update replaces every client-settable field of an existing book. A
// payload without status keeps the book's current status.
func (s *Service) Update(ctx context.Context, id string, input data.BookInput) (Envelope, error) {
	book, err := s.find(ctx, id)
	if err != nil {
		return lookupFailed(id, err)
	}

	v := validator.New()
	data.ValidateBook(v, input, book, data.Today(s.now()))
	if !v.Valid() {
		return ValidationFailed(v.Errors), nil
	}

	if err := s.books.Update(ctx, book); err != nil {
		return lookupFailed(id, err)
	}
	return Success(http.StatusOK, "Book updated successfully", BookData{Book: NewBookResponse(book)}), nil
}

// Delete permanently removes a book.
func (s *Service) Delete(ctx context.Context, id string) (Envelope, error) {
	key, ok := parseID(id)
	if !ok {
		return BookNotFound(id), nil
	}
	if err := s.books.Delete(ctx, key); err != nil {
		return lookupFailed(id, err)
	}
	return Success(http.StatusNoContent, "Book deleted successfully", nil), nil
}

func (s *Service) find(ctx context.Context, id string) (*data.Book, error) {
	key, ok := parseID(id)
	if !ok {
		return nil, data.ErrRecordNotFound
	}
	return s.books.Get(ctx, key)
}

// parseID accepts the positive integers the store assigns as ids.
func parseID(id string) (int64, bool) {
	key, err := strconv.ParseInt(id, 10, 64)
	return key, err == nil && key >= 1
}

// lookupFailed maps a missing record to the 404 envelope and passes every
// other error through.
func lookupFailed(id string, err error) (Envelope, error) {
	if errors.Is(err, data.ErrRecordNotFound) {
		return BookNotFound(id), nil
	}
	return Envelope{}, err
}
