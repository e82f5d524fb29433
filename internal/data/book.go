// Package data provides the data models and database interaction logic
// for the library catalogue.
package data

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/aoideee/library-catalog/internal/validator"
)

// DateLayout is the calendar-date format used for publication dates.
const DateLayout = "2006-01-02"

// Status is the availability of a catalogued book.
type Status string

const (
	StatusAvailable Status = "available"
	StatusBorrowed  Status = "borrowed"
	StatusLost      Status = "lost"
	StatusDamaged   Status = "damaged"
)

// Statuses lists every value a Book's Status may hold.
var Statuses = []Status{StatusAvailable, StatusBorrowed, StatusLost, StatusDamaged}

// Book represents a single book record stored in the database.
// It maps directly to a row in the "books" table.
type Book struct {
	ID              int64     // Unique identifier assigned by the database
	Title           string    // Title of the book
	Author          string    // Author as printed on the cover
	Genre           string    // Free-form genre label
	PublicationDate time.Time // Calendar date, midnight UTC
	Edition         string    // Edition label, e.g. "1st"
	Summary         string    // Unbounded description
	Status          Status    // Availability; one of Statuses
	CreatedAt       time.Time // Set once on insert
	UpdatedAt       time.Time // Refreshed on every update
}

// BookInput holds the fields a client supplies when creating or replacing a
// book. Every field is a pointer so a missing key can be told apart from an
// empty value. id, created_at and updated_at are never accepted from clients.
type BookInput struct {
	Title           *string `json:"title"            validate:"required,max=200"`
	Author          *string `json:"author"           validate:"required,max=200"`
	Genre           *string `json:"genre"            validate:"required,max=100"`
	PublicationDate *string `json:"publication_date" validate:"required"`
	Edition         *string `json:"edition"          validate:"required,max=50"`
	Summary         *string `json:"summary"          validate:"required"`
	Status          *string `json:"status"`

	// rejected maps a key whose JSON value could not be used (null, or not
	// text) to the message ValidateBook reports for it.
	rejected map[string]string
}

// UnmarshalJSON decodes a JSON object into in. Keys other than the input
// fields are ignored. Numbers are taken as their literal text; null and every
// other non-string value are recorded against the key instead of failing the
// whole decode, so they are reported alongside the other field errors.
func (in *BookInput) UnmarshalJSON(b []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}

	*in = BookInput{}
	for key, dst := range in.targets() {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		text, problem := decodeText(raw)
		if problem != "" {
			if in.rejected == nil {
				in.rejected = make(map[string]string)
			}
			in.rejected[key] = problem
			continue
		}
		*dst = &text
	}
	return nil
}

func (in *BookInput) targets() map[string]**string {
	return map[string]**string{
		"title":            &in.Title,
		"author":           &in.Author,
		"genre":            &in.Genre,
		"publication_date": &in.PublicationDate,
		"edition":          &in.Edition,
		"summary":          &in.Summary,
		"status":           &in.Status,
	}
}

// decodeText returns the text of a JSON string or number. For any other
// value it returns the message to report instead.
func decodeText(raw json.RawMessage) (text, problem string) {
	if string(bytes.TrimSpace(raw)) == "null" {
		return "", "This field may not be null."
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, ""
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String(), ""
	}
	return "", "Not a valid string."
}

// Today returns the calendar date of now as midnight UTC, the same
// representation publication dates are parsed into.
func Today(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ValidateBook checks input against the catalogue rules. When every check
// passes, the normalized values are copied onto book and the other fields of
// book (ID, timestamps) are left alone. An absent status keeps book.Status,
// so callers seed it with StatusAvailable on create.
func ValidateBook(v *validator.Validator, input BookInput, book *Book, today time.Time) {
	in := input.trimmed()

	for key, message := range in.rejected {
		v.AddError(key, message)
	}
	v.CheckStruct(in)

	checkNotBlank(v, in.Title, "title")
	checkNotBlank(v, in.Author, "author")
	checkNotBlank(v, in.Genre, "genre")
	checkNotBlank(v, in.Edition, "edition")
	checkNotBlank(v, in.Summary, "summary")

	var published time.Time
	if in.PublicationDate != nil && !v.Has("publication_date") {
		var err error
		published, err = time.Parse(DateLayout, *in.PublicationDate)
		switch {
		case err != nil:
			v.AddError("publication_date", "Date has wrong format. Use one of these formats instead: YYYY-MM-DD.")
		case published.After(today):
			v.AddError("publication_date", "Publication date cannot be in the future")
		}
	}

	status := book.Status
	if in.Status != nil && !v.Has("status") {
		status = Status(*in.Status)
		v.Check(validator.PermittedValue(status, Statuses...), "status", `"`+*in.Status+`" is not a valid choice.`)
	}

	if !v.Valid() {
		return
	}

	book.Title = *in.Title
	book.Author = *in.Author
	book.Genre = *in.Genre
	book.PublicationDate = published
	book.Edition = *in.Edition
	book.Summary = *in.Summary
	book.Status = status
}

func checkNotBlank(v *validator.Validator, value *string, key string) {
	if value == nil || v.Has(key) {
		return
	}
	v.Check(validator.NotBlank(*value), key, "This field may not be blank.")
}

// trimmed returns a copy of in with surrounding whitespace removed from every
// text field, so length limits apply to what is stored.
func (in BookInput) trimmed() BookInput {
	trim := func(s *string) *string {
		if s == nil {
			return nil
		}
		t := strings.TrimSpace(*s)
		return &t
	}
	return BookInput{
		Title:           trim(in.Title),
		Author:          trim(in.Author),
		Genre:           trim(in.Genre),
		PublicationDate: trim(in.PublicationDate),
		Edition:         trim(in.Edition),
		Summary:         trim(in.Summary),
		Status:          in.Status,
		rejected:        in.rejected,
	}
}
