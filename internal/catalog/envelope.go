package catalog

import "net/http"

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Envelope is the uniform wrapper around every API response.
type Envelope struct {
	Status  string `json:"status"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
	Links   *Links `json:"links,omitempty"`
}

// Links are the navigation paths attached to list responses. Next and Prev
// encode as null at the edges of the page range.
type Links struct {
	Self string  `json:"self"`
	Next *string `json:"next"`
	Prev *string `json:"prev"`
}

// Detail is the error body for failures that are not tied to a field.
type Detail struct {
	Detail string `json:"detail"`
}

// BookData is the payload of single-book responses.
type BookData struct {
	Book BookResponse `json:"book"`
}

// ListData is the payload of list responses.
type ListData struct {
	Books      []BookResponse `json:"books"`
	Pagination Pagination     `json:"pagination"`
}

// Pagination describes where a list page sits in the whole catalogue.
type Pagination struct {
	CurrentPage int `json:"current_page"`
	PerPage     int `json:"per_page"`
	TotalPages  int `json:"total_pages"`
	TotalBooks  int `json:"total_books"`
}

// Success builds a success envelope. data may be nil.
func Success(code int, message string, data any) Envelope {
	return Envelope{Status: StatusSuccess, Code: code, Message: message, Data: data}
}

// Failure builds an error envelope.
func Failure(code int, message string, errors any) Envelope {
	return Envelope{Status: StatusError, Code: code, Message: message, Errors: errors}
}

// ValidationFailed is the 400 envelope carrying field -> messages.
func ValidationFailed(errors map[string][]string) Envelope {
	return Failure(http.StatusBadRequest, "Invalid data provided", errors)
}

// BadRequest is the 400 envelope for payloads that could not be read at all.
func BadRequest(detail string) Envelope {
	return Failure(http.StatusBadRequest, "Invalid data provided", Detail{Detail: detail})
}

// BookNotFound is the 404 envelope for a missing or malformed book id. id is
// echoed exactly as the client sent it.
func BookNotFound(id string) Envelope {
	return Failure(http.StatusNotFound, "Book not found", Detail{Detail: "Book with ID " + id + " does not exist"})
}
