package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"regexp"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/geotracking/internal/domain"
	"github.com/pkordes/geotracking/internal/handler/gen"
	"github.com/pkordes/geotracking/internal/validate"
)

// digits matches a positive integer written without sign or spaces.
var digits = regexp.MustCompile(`^[0-9]+$`)

// CreateGeoTracking handles POST /api/geo-tracking.
func (s *Server) CreateGeoTracking(w http.ResponseWriter, r *http.Request) {
	p, ok := decodePayload(w, r)
	if !ok {
		return
	}

	created, err := s.records.Create(r.Context(), p)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, recordToResponse(created))
}

// ListGeoTracking handles GET /api/geo-tracking.
// Supports an optional ?userId= filter; an empty value means no filter.
func (s *Server) ListGeoTracking(w http.ResponseWriter, r *http.Request, params gen.ListGeoTrackingParams) {
	var filter domain.ListFilter
	if params.UserId != nil {
		if !digits.MatchString(r.URL.Query().Get(string(domain.FieldUserID))) || *params.UserId <= 0 {
			invalidParam(w, domain.FieldUserID)
			return
		}
		filter.UserID = params.UserId
	}

	records, err := s.records.List(r.Context(), filter)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	out := make([]gen.GeoTrackingRecord, len(records))
	for i, rec := range records {
		out[i] = recordToResponse(rec)
	}
	writeJSON(w, http.StatusOK, out)
}

// GetGeoTracking handles GET /api/geo-tracking/{id}.
func (s *Server) GetGeoTracking(w http.ResponseWriter, r *http.Request, id int64) {
	if !validPathID(r, id) {
		invalidParam(w, domain.FieldID)
		return
	}

	rec, err := s.records.GetByID(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, recordToResponse(rec))
}

// UpdateGeoTracking handles PATCH /api/geo-tracking/{id}.
func (s *Server) UpdateGeoTracking(w http.ResponseWriter, r *http.Request, id int64) {
	if !validPathID(r, id) {
		invalidParam(w, domain.FieldID)
		return
	}
	p, ok := decodePayload(w, r)
	if !ok {
		return
	}

	updated, err := s.records.Update(r.Context(), id, p)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, recordToResponse(updated))
}

// validPathID reports whether the bound {id} was written as digits only and
// is positive.
func validPathID(r *http.Request, id int64) bool {
	return digits.MatchString(chi.URLParam(r, "id")) && id > 0
}

// decodePayload reads the body as a JSON object. An empty body is an empty
// payload, left for the validator to judge. Anything that is not a single
// JSON object is rejected here.
//
// The body stays a raw map rather than gen.CreateGeoTrackingRequest: typed
// pointers cannot tell an absent field from an explicit null.
func decodePayload(w http.ResponseWriter, r *http.Request) (validate.Payload, bool) {
	var p validate.Payload
	dec := json.NewDecoder(r.Body)
	err := dec.Decode(&p)
	if err == nil && dec.More() {
		err = errors.New("trailing data after JSON object")
	}

	var maxBytes *http.MaxBytesError
	var typeErr *json.UnmarshalTypeError
	switch {
	case err == nil, errors.Is(err, io.EOF):
		return p, true
	case errors.As(err, &maxBytes):
		writeError(w, http.StatusRequestEntityTooLarge, requestBody(gen.ErrorDetailCodePayloadTooLarge, "request body too large"))
	case errors.As(err, &typeErr):
		writeError(w, http.StatusBadRequest, requestBody(gen.ErrorDetailCodeBadRequest, "request body must be a JSON object"))
	default:
		writeError(w, http.StatusBadRequest, requestBody(gen.ErrorDetailCodeBadRequest, "request body is not valid JSON"))
	}
	return nil, false
}

// recordToResponse converts a domain.Record to the generated API type.
func recordToResponse(rec domain.Record) gen.GeoTrackingRecord {
	return gen.GeoTrackingRecord{
		Id:                 rec.ID,
		UserId:             rec.UserID,
		Latitude:           rec.Latitude.String(),
		Longitude:          rec.Longitude.String(),
		RecordedAt:         rec.RecordedAt,
		Speed:              rec.Speed,
		Heading:            rec.Heading,
		Accuracy:           rec.Accuracy,
		Altitude:           rec.Altitude,
		Provider:           rec.Provider,
		Batt:               rec.Batt,
		IsCharging:         rec.IsCharging,
		Network:            rec.Network,
		ConnectionType:     rec.ConnectionType,
		WifiStatus:         rec.WifiStatus,
		IpAddress:          rec.IPAddress,
		LocationType:       rec.LocationType,
		ActivityType:       (*gen.ActivityType)(rec.ActivityType),
		ActivityConfidence: rec.ActivityConfidence,
		AppState:           rec.AppState,
		CheckInTime:        rec.CheckInTime,
		CheckOutTime:       rec.CheckOutTime,
		VisitPurpose:       rec.VisitPurpose,
		SiteName:           rec.SiteName,
		Address:            rec.Address,
		CheckInPhotoUrl:    rec.CheckInPhotoURL,
		CheckOutPhotoUrl:   rec.CheckOutPhotoURL,
		CreatedAt:          rec.CreatedAt,
		UpdatedAt:          rec.UpdatedAt,
	}
}
