// Package handler implements the HTTP handlers for the geo-tracking API.
// All handlers are methods on Server. Methods are split into files by
// resource (health.go, geotracking.go) but share the same Server struct so
// they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/geotracking/internal/domain"
	"github.com/pkordes/geotracking/internal/handler/gen"
	"github.com/pkordes/geotracking/internal/validate"
)

// GeoTrackingServicer defines the business operations the geo-tracking
// handlers depend on. Defining the interface here (in the consumer package)
// lets handler tests inject a mock without touching the database.
type GeoTrackingServicer interface {
	Create(ctx context.Context, p validate.Payload) (domain.Record, error)
	GetByID(ctx context.Context, id int64) (domain.Record, error)
	List(ctx context.Context, filter domain.ListFilter) ([]domain.Record, error)
	Update(ctx context.Context, id int64, p validate.Payload) (domain.Record, error)
}

// Pinger reports whether the backing store is reachable. *pgxpool.Pool
// satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server implements gen.ServerInterface plus the health and document routes.
type Server struct {
	records GeoTrackingServicer
	db      Pinger
	log     *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
// db may be nil, in which case /healthz reports only liveness.
func NewServer(records GeoTrackingServicer, db Pinger, log *slog.Logger) *Server {
	return &Server{records: records, db: db, log: log}
}

var _ gen.ServerInterface = (*Server)(nil)

// Routes returns a router with every endpoint registered. apiMiddleware is
// applied to the /api routes only, so health checks and the OpenAPI document
// bypass rate limiting and body caps.
func (s *Server) Routes(apiMiddleware ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Group(func(r chi.Router) {
		r.Use(apiMiddleware...)
		r.Use(dropEmptyQuery)
		gen.HandlerWithOptions(s, gen.ChiServerOptions{
			BaseRouter:       r,
			ErrorHandlerFunc: s.paramError,
		})
	})
	return r
}

// dropEmptyQuery removes query keys whose every value is empty, so
// ?userId= reads as an absent filter.
func dropEmptyQuery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		changed := false
		for k, vs := range q {
			if slices.IndexFunc(vs, func(v string) bool { return v != "" }) < 0 {
				delete(q, k)
				changed = true
			}
		}
		if changed {
			r = r.Clone(r.Context())
			r.URL.RawQuery = q.Encode()
		}
		next.ServeHTTP(w, r)
	})
}
