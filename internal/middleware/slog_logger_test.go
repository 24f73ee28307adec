package middleware_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/geotracking/internal/middleware"
)

// TestSlogLogger_logsRequestFields verifies that the SlogLogger middleware
// writes a structured JSON log line with the request fields and the request
// ID placed in context by chi's RequestID middleware.
func TestSlogLogger_logsRequestFields(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	r := chi.NewRouter()
	r.Use(middleware.NewSlogLogger(logger))
	r.Get("/api/geo-tracking/{id}", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("hello"))
	})

	req := httptest.NewRequest(http.MethodGet, "/api/geo-tracking/42", nil)
	ctx := context.WithValue(req.Context(), chimiddleware.RequestIDKey, "test-req-id")
	req = req.WithContext(ctx)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var logEntry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logEntry))

	assert.Equal(t, "INFO", logEntry["level"])
	assert.Equal(t, "GET", logEntry["method"])
	assert.Equal(t, "/api/geo-tracking/{id}", logEntry["route"])
	assert.Equal(t, "/api/geo-tracking/42", logEntry["path"])
	assert.EqualValues(t, http.StatusOK, logEntry["status"])
	assert.EqualValues(t, 5, logEntry["bytes"])
	assert.Equal(t, "test-req-id", logEntry["request_id"])
	assert.NotNil(t, logEntry["duration_ms"])
	assert.NotEmpty(t, logEntry["remote"])
}

func TestSlogLogger_levelFollowsStatus(t *testing.T) {
	cases := map[int]string{
		http.StatusCreated:             "INFO",
		http.StatusNotFound:            "WARN",
		http.StatusInternalServerError: "ERROR",
	}
	for status, level := range cases {
		t.Run(http.StatusText(status), func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buf, nil))
			h := middleware.NewSlogLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(status)
			}))

			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/geo-tracking", nil))

			var logEntry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &logEntry))
			assert.Equal(t, level, logEntry["level"])
			assert.Equal(t, "unmatched", logEntry["route"])
		})
	}
}
