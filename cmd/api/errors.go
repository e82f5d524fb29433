// cmd/api/errors.go
// This file contains all error-response helpers for the application.
// Every helper answers with the same envelope the catalog operations use.
package main

import (
	"log/slog"
	"net/http"

	"github.com/aoideee/library-catalog/internal/catalog"
)

// logError logs an internal error at ERROR level with the request method, URL and id.
func (app *applicationDependencies) logError(r *http.Request, err error) {
	app.logger.Error(err.Error(),
		slog.String("request_method", r.Method),
		slog.String("request_url", r.URL.String()),
		slog.String("request_id", requestIDFrom(r)),
	)
}

// errorResponse sends an error envelope whose errors block is a single detail.
func (app *applicationDependencies) errorResponse(w http.ResponseWriter, r *http.Request, status int, message, detail string) {
	app.writeEnvelope(w, r, catalog.Failure(status, message, catalog.Detail{Detail: detail}))
}

// serverErrorResponse logs a 500-level error and sends a generic message to the client.
// Internal error details never reach the client.
func (app *applicationDependencies) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)
	app.errorResponse(w, r, http.StatusInternalServerError, "Internal server error",
		"the server encountered a problem and could not process your request")
}

// notFoundResponse sends a 404 for routes that do not exist.
func (app *applicationDependencies) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusNotFound, "Not found", "the requested resource could not be found")
}

// methodNotAllowedResponse sends a 405 Method Not Allowed error.
func (app *applicationDependencies) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusMethodNotAllowed, "Method not allowed",
		"the "+r.Method+" method is not supported for this resource")
}

// badRequestResponse sends a 400 for a body that could not be decoded.
func (app *applicationDependencies) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.writeEnvelope(w, r, catalog.BadRequest(err.Error()))
}

// failedValidationResponse sends a 400 containing the field-level errors
// collected by a Validator.
func (app *applicationDependencies) failedValidationResponse(w http.ResponseWriter, r *http.Request, errors map[string][]string) {
	app.writeEnvelope(w, r, catalog.ValidationFailed(errors))
}

// rateLimitExceededResponse sends a 429 Too Many Requests error.
func (app *applicationDependencies) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusTooManyRequests, "Too many requests", "rate limit exceeded")
}
