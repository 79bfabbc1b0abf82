// package server contains middleware & handlers for the playlist scrape service
package server

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/amsync/internal/services"
)

// Middleware wraps an http.Handler and returns a new http.Handler with additional behavior.
// Common middleware includes logging, panic recovery and CORS.
type Middleware func(http.Handler) http.Handler

// Handler defines the interface for HTTP request handlers in the scrape service.
// Implementations handle specific endpoints (scrape, health, OAuth callback).
type Handler interface {
	http.Handler      // ServeHTTP handles the HTTP request and writes the response
	Routes() []string // Routes returns the path patterns this handler serves
}

// Router defines the interface for HTTP routing and middleware management.
// Implementations register handlers, apply middleware, and configure the HTTP server.
type Router interface {
	Use(middleware ...Middleware)                     // Use adds middleware to the router's middleware stack
	Handle(method, path string, handler http.Handler) // Handle registers a handler for the specified method and path
	Handler(handler Handler)                          // Handler registers a custom Handler implementation
	ServeHTTP(w http.ResponseWriter, r *http.Request) // ServeHTTP implements http.Handler for the entire router
}

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewAPI builds the scrape service router: recovery, request logging and CORS around the scrape
// and health endpoints.
func NewAPI(fetcher services.PageFetcher, logger *log.Logger) *BasicRouter {
	r := NewBasicRouter()
	r.Use(Recover(logger), Logging(logger), CORS)
	r.Handler(NewScrapeHandler(fetcher, logger))
	r.Handle(http.MethodGet, "/healthz", http.HandlerFunc(Health))
	return r
}

// Health reports that the service is up.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
