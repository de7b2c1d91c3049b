// Package http serves the helper's JSON API alongside health, readiness and
// metrics endpoints.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/disaster-helper/internal/service"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Services are the use cases the API exposes.
type Services struct {
	Alerts     *service.Alerts
	Resources  *service.Resources
	Contacts   *service.Contacts
	Profile    *service.Profile
	Chat       *service.Chat
	Shop       *service.Shop
	Weather    *service.Weather
	SOS        *service.SOS
	Blog       *service.Blog
	Documents  *service.Documents
	Volunteers *service.Volunteers
}

// Server exposes the API plus /healthz, /readyz, and /metrics.
type Server struct {
	httpServer *http.Server
	svc        Services
	logger     *slog.Logger
}

// NewServer creates an HTTP server with every route registered.
func NewServer(addr string, svc Services, ready sharedobs.ReadinessChecker, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		svc:    svc,
		logger: logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/alerts", s.listAlerts)
	mux.HandleFunc("POST /api/alerts", s.createAlert)
	mux.HandleFunc("PUT /api/alerts/{id}", s.updateAlert)
	mux.HandleFunc("DELETE /api/alerts/{id}", s.deleteAlert)

	mux.HandleFunc("GET /api/resources", s.listResources)
	mux.HandleFunc("POST /api/resources", s.createResource)
	mux.HandleFunc("PUT /api/resources/{id}", s.updateResource)
	mux.HandleFunc("DELETE /api/resources/{id}", s.deleteResource)

	mux.HandleFunc("GET /api/contacts", s.listContacts)
	mux.HandleFunc("POST /api/contacts", s.createContact)
	mux.HandleFunc("PUT /api/contacts/{id}", s.updateContact)
	mux.HandleFunc("DELETE /api/contacts/{id}", s.deleteContact)

	mux.HandleFunc("GET /api/profile", s.getProfile)
	mux.HandleFunc("PUT /api/profile", s.putProfile)
	mux.HandleFunc("GET /api/visited", s.getVisited)
	mux.HandleFunc("PUT /api/visited", s.putVisited)

	mux.HandleFunc("GET /api/chat", s.chatHistory)
	mux.HandleFunc("POST /api/chat", s.sendChat)
	mux.HandleFunc("DELETE /api/chat", s.clearChat)

	mux.HandleFunc("GET /api/catalog", s.catalog)
	mux.HandleFunc("GET /api/cart", s.getCart)
	mux.HandleFunc("POST /api/cart/items", s.addCartItem)
	mux.HandleFunc("PUT /api/cart/items/{id}", s.setCartQuantity)
	mux.HandleFunc("DELETE /api/cart/items/{id}", s.removeCartItem)

	mux.HandleFunc("GET /api/weather", s.weather)
	mux.HandleFunc("POST /api/sos", s.sos)

	mux.HandleFunc("GET /api/blogposts", s.listBlogPosts)
	mux.HandleFunc("POST /api/blogposts", s.createBlogPost)
	mux.HandleFunc("POST /api/documents", s.uploadDocument)
	mux.HandleFunc("GET /api/documents/url", s.documentURL)
	mux.HandleFunc("POST /api/volunteers", s.submitVolunteer)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}
