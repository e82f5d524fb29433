// cmd/api/routes.go
package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// routes registers all HTTP endpoints and returns the configured router
// wrapped in middleware.
//
// Middleware chain (outermost → innermost):
//
//	recoverPanic → requestID → logRequest → rateLimit → router
//
// Current endpoints:
//
//	GET    /healthz             – liveness
//	GET    /readyz              – database reachability
//	GET    /api/v1/books        – list books (paginated, newest first)
//	POST   /api/v1/books        – create a new book
//	GET    /api/v1/books/:id    – retrieve a single book by ID
//	PUT    /api/v1/books/:id    – replace an existing book
//	DELETE /api/v1/books/:id    – delete a book by ID
//	GET    /api/v1/docs/doc.json – OpenAPI document
func (app *applicationDependencies) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	router.HandlerFunc(http.MethodGet, "/healthz", app.healthzHandler)
	router.HandlerFunc(http.MethodGet, "/readyz", app.readyzHandler)

	router.HandlerFunc(http.MethodGet, "/api/v1/books", app.listBooksHandler)
	router.HandlerFunc(http.MethodPost, "/api/v1/books", app.createBookHandler)
	router.HandlerFunc(http.MethodGet, "/api/v1/books/:id", app.showBookHandler)
	router.HandlerFunc(http.MethodPut, "/api/v1/books/:id", app.updateBookHandler)
	router.HandlerFunc(http.MethodDelete, "/api/v1/books/:id", app.deleteBookHandler)

	router.HandlerFunc(http.MethodGet, "/api/v1/docs/doc.json", app.docsHandler)

	return app.recoverPanic(app.requestID(app.logRequest(app.rateLimit(router))))
}
