package data

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aoideee/library-catalog/internal/validator"
)

func str(s string) *string { return &s }

func validInput() BookInput {
	return BookInput{
		Title:           str("Dune"),
		Author:          str("Herbert"),
		Genre:           str("SciFi"),
		PublicationDate: str("1965-08-01"),
		Edition:         str("1st"),
		Summary:         str("Spice and sand."),
		Status:          str("available"),
	}
}

var today = time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

func TestValidateBook_Valid(t *testing.T) {
	in := validInput()
	in.Title = str("  Dune  ")
	in.Status = str("borrowed")

	book := &Book{ID: 7, Status: StatusAvailable}
	v := validator.New()
	ValidateBook(v, in, book, today)

	assert.True(t, v.Valid(), "errors: %v", v.Errors)
	assert.Equal(t, int64(7), book.ID)
	assert.Equal(t, "Dune", book.Title)
	assert.Equal(t, "Herbert", book.Author)
	assert.Equal(t, time.Date(1965, time.August, 1, 0, 0, 0, 0, time.UTC), book.PublicationDate)
	assert.Equal(t, StatusBorrowed, book.Status)
}

func TestValidateBook_StatusDefaultsToCurrent(t *testing.T) {
	in := validInput()
	in.Status = nil

	book := &Book{Status: StatusLost}
	v := validator.New()
	ValidateBook(v, in, book, today)

	assert.True(t, v.Valid())
	assert.Equal(t, StatusLost, book.Status)
}

func TestValidateBook_PublicationDateToday(t *testing.T) {
	in := validInput()
	in.PublicationDate = str(today.Format(DateLayout))

	v := validator.New()
	ValidateBook(v, in, &Book{Status: StatusAvailable}, today)
	assert.True(t, v.Valid())
}

func TestValidateBook_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*BookInput)
		want   map[string][]string
	}{
		{
			name:   "missing title",
			mutate: func(in *BookInput) { in.Title = nil },
			want:   map[string][]string{"title": {"This field is required."}},
		},
		{
			name:   "blank author",
			mutate: func(in *BookInput) { in.Author = str("   ") },
			want:   map[string][]string{"author": {"This field may not be blank."}},
		},
		{
			name:   "genre too long",
			mutate: func(in *BookInput) { in.Genre = str(strings.Repeat("g", 101)) },
			want:   map[string][]string{"genre": {"Ensure this field has no more than 100 characters."}},
		},
		{
			name:   "edition too long",
			mutate: func(in *BookInput) { in.Edition = str(strings.Repeat("e", 51)) },
			want:   map[string][]string{"edition": {"Ensure this field has no more than 50 characters."}},
		},
		{
			name:   "title too long",
			mutate: func(in *BookInput) { in.Title = str(strings.Repeat("t", 201)) },
			want:   map[string][]string{"title": {"Ensure this field has no more than 200 characters."}},
		},
		{
			name:   "missing summary",
			mutate: func(in *BookInput) { in.Summary = nil },
			want:   map[string][]string{"summary": {"This field is required."}},
		},
		{
			name:   "future publication date",
			mutate: func(in *BookInput) { in.PublicationDate = str(today.AddDate(0, 0, 1).Format(DateLayout)) },
			want:   map[string][]string{"publication_date": {"Publication date cannot be in the future"}},
		},
		{
			name:   "malformed publication date",
			mutate: func(in *BookInput) { in.PublicationDate = str("01/08/1965") },
			want:   map[string][]string{"publication_date": {"Date has wrong format. Use one of these formats instead: YYYY-MM-DD."}},
		},
		{
			name:   "unknown status",
			mutate: func(in *BookInput) { in.Status = str("missing") },
			want:   map[string][]string{"status": {`"missing" is not a valid choice.`}},
		},
		{
			name: "several fields",
			mutate: func(in *BookInput) {
				in.Title = nil
				in.Edition = str("")
				in.Status = str("Available")
			},
			want: map[string][]string{
				"title":   {"This field is required."},
				"edition": {"This field may not be blank."},
				"status":  {`"Available" is not a valid choice.`},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			book := &Book{ID: 3, Title: "Original", Status: StatusAvailable}
			v := validator.New()
			ValidateBook(v, in, book, today)

			assert.Equal(t, tt.want, v.Errors)
			assert.Equal(t, "Original", book.Title, "book must not change when validation fails")
		})
	}
}

func TestToday(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	now := time.Date(2024, time.June, 15, 23, 30, 0, 0, loc)
	assert.Equal(t, time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC), Today(now))
}

func TestBookInput_UnmarshalJSON(t *testing.T) {
	var in BookInput
	err := json.Unmarshal([]byte(`{
		"title": "Dune",
		"author": null,
		"genre": true,
		"edition": 2,
		"summary": ["a"],
		"status": 5,
		"isbn": "ignored"
	}`), &in)
	require.NoError(t, err)

	assert.Equal(t, str("Dune"), in.Title)
	assert.Nil(t, in.Author)
	assert.Nil(t, in.Genre)
	assert.Equal(t, str("2"), in.Edition)
	assert.Nil(t, in.Summary)
	assert.Equal(t, str("5"), in.Status)
	assert.Nil(t, in.PublicationDate)
	assert.Equal(t, map[string]string{
		"author":  "This field may not be null.",
		"genre":   "Not a valid string.",
		"summary": "Not a valid string.",
	}, in.rejected)
}

func TestBookInput_UnmarshalJSONNotAnObject(t *testing.T) {
	var in BookInput
	err := json.Unmarshal([]byte(`["Dune"]`), &in)

	var typeErr *json.UnmarshalTypeError
	assert.ErrorAs(t, err, &typeErr)
}

func TestValidateBook_RejectedValues(t *testing.T) {
	var in BookInput
	require.NoError(t, json.Unmarshal([]byte(`{
		"title": null,
		"author": "Herbert",
		"genre": {},
		"publication_date": "1965-08-01",
		"edition": "1st",
		"summary": "Spice.",
		"status": null
	}`), &in))

	book := &Book{Status: StatusAvailable}
	v := validator.New()
	ValidateBook(v, in, book, today)

	assert.Equal(t, map[string][]string{
		"title":  {"This field may not be null."},
		"genre":  {"Not a valid string."},
		"status": {"This field may not be null."},
	}, v.Errors)
	assert.Empty(t, book.Title, "nothing is copied from an invalid payload")
}

func TestValidateBook_NumericStatusIsNotAChoice(t *testing.T) {
	var in BookInput
	require.NoError(t, json.Unmarshal([]byte(`{"status": 5}`), &in))
	in.Title, in.Author, in.Genre = str("Dune"), str("Herbert"), str("SciFi")
	in.PublicationDate, in.Edition, in.Summary = str("1965-08-01"), str("1st"), str("Spice.")

	v := validator.New()
	ValidateBook(v, in, &Book{}, today)

	assert.Equal(t, map[string][]string{"status": {`"5" is not a valid choice.`}}, v.Errors)
}
