package server

import (
	"net/http"
	"strings"
)

// BasicRouter is the [Router] used by the scrape service and the OAuth callback server.
//
// Method routes use [http.ServeMux] method patterns, so a request with any other method gets a 405 from the mux.
// The middleware chain wraps the mux itself, so its own 404 and 405 replies pass through it as well.
type BasicRouter struct {
	mux   *http.ServeMux
	chain []Middleware
}

// NewBasicRouter creates a new [BasicRouter] instance.
func NewBasicRouter() *BasicRouter {
	return &BasicRouter{mux: http.NewServeMux()}
}

// Use appends [Middleware] to the chain run for every request.
func (r *BasicRouter) Use(middleware ...Middleware) {
	r.chain = append(r.chain, middleware...)
}

// Handle registers handler for method and path.
func (r *BasicRouter) Handle(method, path string, handler http.Handler) {
	r.mux.Handle(strings.ToUpper(method)+" "+path, handler)
}

// Handler registers every route of handler for all methods; the handler checks the method itself.
func (r *BasicRouter) Handler(handler Handler) {
	for _, route := range handler.Routes() {
		r.mux.Handle(route, handler)
	}
}

// ServeHTTP implements [http.Handler] for the entire router.
func (r *BasicRouter) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.Apply(r.mux).ServeHTTP(w, req)
}

// Apply wraps handler in the chain so the first middleware added runs first.
func (r *BasicRouter) Apply(handler http.Handler) http.Handler {
	for i := len(r.chain) - 1; i >= 0; i-- {
		handler = r.chain[i](handler)
	}
	return handler
}
