package catalog

import (
	"time"

	"github.com/aoideee/library-catalog/internal/data"
)

// BookResponse is the wire shape of a book. id, created_at and updated_at
// are read-only: they are written here and never read from requests.
type BookResponse struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	Genre           string    `json:"genre"`
	PublicationDate string    `json:"publication_date"`
	Edition         string    `json:"edition"`
	Summary         string    `json:"summary"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NewBookResponse maps a stored record onto its wire shape.
func NewBookResponse(b *data.Book) BookResponse {
	return BookResponse{
		ID:              b.ID,
		Title:           b.Title,
		Author:          b.Author,
		Genre:           b.Genre,
		PublicationDate: b.PublicationDate.Format(data.DateLayout),
		Edition:         b.Edition,
		Summary:         b.Summary,
		Status:          string(b.Status),
		CreatedAt:       b.CreatedAt.UTC(),
		UpdatedAt:       b.UpdatedAt.UTC(),
	}
}

func newBookResponses(books []*data.Book) []BookResponse {
	out := make([]BookResponse, 0, len(books))
	for _, b := range books {
		out = append(out, NewBookResponse(b))
	}
	return out
}
