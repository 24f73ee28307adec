package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/pkordes/geotracking/api"
	"github.com/pkordes/geotracking/internal/handler/gen"
)

// healthTimeout bounds the database ping so a hung pool cannot stall health checks.
const healthTimeout = 2 * time.Second

// GetHealth handles GET /healthz.
// It returns 200 {"status":"ok"} when the server is running and the database
// answers a ping, 503 {"status":"unavailable"} otherwise.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()
		if err := s.db.Ping(ctx); err != nil {
			s.log.WarnContext(r.Context(), "health check failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, gen.HealthResponse{Status: gen.HealthResponseStatusUnavailable})
			return
		}
	}
	writeJSON(w, http.StatusOK, gen.HealthResponse{Status: gen.HealthResponseStatusOk})
}

// GetOpenAPI handles GET /openapi.yaml.
func (s *Server) GetOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(api.OpenAPI)
}
