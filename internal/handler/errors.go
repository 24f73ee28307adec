package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pkordes/geotracking/internal/domain"
	"github.com/pkordes/geotracking/internal/handler/gen"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, body gen.ErrorResponse) {
	writeJSON(w, status, body)
}

func requestBody(code gen.ErrorDetailCode, message string) gen.ErrorResponse {
	return gen.ErrorResponse{Error: gen.ErrorDetail{Code: code, Message: message}}
}

// validationBody lists every rejected field.
func validationBody(message string, fields []domain.FieldError) gen.ErrorResponse {
	out := make([]gen.FieldError, len(fields))
	for i, f := range fields {
		out[i] = gen.FieldError{Field: f.Field, Reason: f.Reason}
	}
	body := requestBody(gen.ErrorDetailCodeValidationError, message)
	body.Error.Fields = &out
	return body
}

// invalidParam rejects a malformed path or query parameter in the same
// shape as a payload validation failure.
func invalidParam(w http.ResponseWriter, name domain.FieldName) {
	writeError(w, http.StatusBadRequest, validationBody("invalid request parameters",
		[]domain.FieldError{{Field: string(name), Reason: "must be a positive integer"}}))
}

// paramError handles binding failures raised by the generated wrapper
// before a handler runs.
func (s *Server) paramError(w http.ResponseWriter, _ *http.Request, err error) {
	var formatErr *gen.InvalidParamFormatError
	if errors.As(err, &formatErr) {
		invalidParam(w, domain.FieldName(formatErr.ParamName))
		return
	}
	writeError(w, http.StatusBadRequest, requestBody(gen.ErrorDetailCodeBadRequest, err.Error()))
}

// respondError maps a service error to its HTTP outcome. Anything that is
// not a validation or not-found error is a storage failure: it is logged
// with its full chain and the client receives a generic 500.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, validationBody("payload validation failed", verr.Fields))
	case errors.Is(err, domain.ErrUserNotFound):
		writeError(w, http.StatusNotFound, requestBody(gen.ErrorDetailCodeNotFound, "user not found"))
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, requestBody(gen.ErrorDetailCodeNotFound, "geo-tracking record not found"))
	default:
		s.log.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, requestBody(gen.ErrorDetailCodeInternalError, "internal server error"))
	}
}
