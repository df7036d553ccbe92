// Package httpapi exposes the server's business services over a JSON
// HTTP API. Routing uses method-qualified ServeMux patterns; auth is a
// bearer-token middleware that materializes a per-request session.
package httpapi

import (
	"net/http"

	"github.com/bandroomhq/bandroom/internal/logging"
	"github.com/bandroomhq/bandroom/internal/server/services"
)

// Router wires handlers, middleware, and services onto one ServeMux.
type Router struct {
	Mux         *http.ServeMux
	middlewares []Middleware

	secretKey []byte
	logger    logging.Logger

	Members  *services.MemberService
	Songs    *services.SongService
	Charts   *services.ChartService
	Practice *services.PracticeService
}

// NewRouter constructs a Router. Call ApplyRoutes before serving.
func NewRouter(secretKey []byte, logger logging.Logger) *Router {
	r := &Router{
		Mux:       http.NewServeMux(),
		secretKey: secretKey,
		logger:    logger,
	}
	r.middlewares = []Middleware{
		LoggingMiddleware(logger),
	}
	return r
}

// ApplyRoutes registers all endpoints.
func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerSongs()
	r.registerCharts()
	r.registerPractice()
	r.registerSystem()
}

// ServeHTTP applies the global middleware chain around the mux.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// secured wraps h with bearer-token authentication.
func (r *Router) secured(h http.HandlerFunc) http.Handler {
	return Chain(h, AuthnMiddleware(r.secretKey))
}

func (r *Router) registerAuth() {
	h := &AuthHandler{Members: r.Members}
	r.Mux.Handle("POST /api/v1/auth/register", http.HandlerFunc(h.HandleRegister))
	r.Mux.Handle("POST /api/v1/auth/login", http.HandlerFunc(h.HandleLogin))
	r.Mux.Handle("POST /api/v1/auth/refresh", http.HandlerFunc(h.HandleRefresh))
}

func (r *Router) registerSongs() {
	h := &SongHandler{Songs: r.Songs}
	r.Mux.Handle("GET /api/v1/songs", r.secured(h.HandleList))
	r.Mux.Handle("POST /api/v1/songs", r.secured(h.HandleCreate))
	r.Mux.Handle("GET /api/v1/songs/{songID}", r.secured(h.HandleGet))
}

func (r *Router) registerCharts() {
	h := &ChartHandler{Charts: r.Charts}
	r.Mux.Handle("GET /api/v1/songs/{songID}/charts", r.secured(h.HandleList))
	r.Mux.Handle("POST /api/v1/songs/{songID}/charts", r.secured(h.HandleCreate))
	r.Mux.Handle("DELETE /api/v1/charts/{chartID}", r.secured(h.HandleDelete))
}

func (r *Router) registerPractice() {
	h := &PracticeHandler{Practice: r.Practice}
	r.Mux.Handle("GET /api/v1/practice-logs", r.secured(h.HandleList))
	r.Mux.Handle("POST /api/v1/practice-logs", r.secured(h.HandleCreate))
}

func (r *Router) registerSystem() {
	r.Mux.HandleFunc("GET /livez", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}
