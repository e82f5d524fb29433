// cmd/api/handlers.go
// This file contains all HTTP request handlers for the books resource.
// Handlers only translate between HTTP and the catalog service: they read
// parameters and bodies, call the operation, and write back its envelope.
package main

import (
	"context"
	"net/http"
	"time"

	"github.com/aoideee/library-catalog/docs"
	"github.com/aoideee/library-catalog/internal/catalog"
	"github.com/aoideee/library-catalog/internal/data"
	"github.com/aoideee/library-catalog/internal/validator"
)

// listBooksHandler handles GET /api/v1/books?page=&per_page=.
// @Summary List books
// @Description One page of the catalogue, newest first, with pagination links.
// @Tags books
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Books per page" default(10)
// @Success 200 {object} catalog.Envelope{data=catalog.ListData}
// @Failure 400 {object} catalog.Envelope
// @Failure 404 {object} catalog.Envelope
// @Failure 500 {object} catalog.Envelope
// @Router /books [get]
func (app *applicationDependencies) listBooksHandler(w http.ResponseWriter, r *http.Request) {
	v := validator.New()
	qs := r.URL.Query()

	page := app.readInt(qs, "page", catalog.DefaultPage, v)
	perPage := app.readInt(qs, "per_page", catalog.DefaultPerPage, v)
	if !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	env, err := app.catalog.List(r.Context(), page, perPage)
	app.respond(w, r, env, err)
}

// showBookHandler handles GET /api/v1/books/:id.
// A malformed id gets the same 404 as a missing one.
// @Summary Retrieve a book
// @Tags books
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} catalog.Envelope{data=catalog.BookData}
// @Failure 404 {object} catalog.Envelope
// @Failure 500 {object} catalog.Envelope
// @Router /books/{id} [get]
func (app *applicationDependencies) showBookHandler(w http.ResponseWriter, r *http.Request) {
	env, err := app.catalog.Retrieve(r.Context(), app.readIDParam(r))
	app.respond(w, r, env, err)
}

// createBookHandler handles POST /api/v1/books.
// @Summary Create a book
// @Description status defaults to "available" when omitted.
// @Tags books
// @Accept json
// @Produce json
// @Param book body data.BookInput true "Book to catalogue"
// @Success 201 {object} catalog.Envelope{data=catalog.BookData}
// @Failure 400 {object} catalog.Envelope
// @Failure 500 {object} catalog.Envelope
// @Router /books [post]
func (app *applicationDependencies) createBookHandler(w http.ResponseWriter, r *http.Request) {
	var input data.BookInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	env, err := app.catalog.Create(r.Context(), input)
	app.respond(w, r, env, err)
}

// updateBookHandler handles PUT /api/v1/books/:id.
// The whole record is replaced. An id that names no book is reported before
// the body is read.
// @Summary Replace a book
// @Description Every field is replaced; an omitted status keeps the current one.
// @Tags books
// @Accept json
// @Produce json
// @Param id path int true "Book ID"
// @Param book body data.BookInput true "Replacement fields"
// @Success 200 {object} catalog.Envelope{data=catalog.BookData}
// @Failure 400 {object} catalog.Envelope
// @Failure 404 {object} catalog.Envelope
// @Failure 500 {object} catalog.Envelope
// @Router /books/{id} [put]
func (app *applicationDependencies) updateBookHandler(w http.ResponseWriter, r *http.Request) {
	id := app.readIDParam(r)

	if env, found, err := app.catalog.Exists(r.Context(), id); !found {
		app.respond(w, r, env, err)
		return
	}

	var input data.BookInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	env, err := app.catalog.Update(r.Context(), id, input)
	app.respond(w, r, env, err)
}

// deleteBookHandler handles DELETE /api/v1/books/:id.
// @Summary Delete a book
// @Tags books
// @Param id path int true "Book ID"
// @Success 204
// @Failure 404 {object} catalog.Envelope
// @Failure 500 {object} catalog.Envelope
// @Router /books/{id} [delete]
func (app *applicationDependencies) deleteBookHandler(w http.ResponseWriter, r *http.Request) {
	env, err := app.catalog.Delete(r.Context(), app.readIDParam(r))
	app.respond(w, r, env, err)
}

// docsHandler serves the OpenAPI document generated from the annotations above.
func (app *applicationDependencies) docsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(docs.SwaggerInfo.ReadDoc()))
}

// healthzHandler reports that the process is up.
func (app *applicationDependencies) healthzHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// readyzHandler reports whether the database answers within 500ms.
func (app *applicationDependencies) readyzHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
	defer cancel()

	if err := app.db.PingContext(ctx); err != nil {
		app.logError(r, err)
		app.errorResponse(w, r, http.StatusServiceUnavailable, "Service unavailable", "database not ready")
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
