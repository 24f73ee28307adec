// Package validate turns untrusted geo-tracking payloads into typed,
// constraint-checked values. Every failing field is reported; a payload
// with any failure is rejected as a whole.
package validate

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/pkordes/geotracking/internal/domain"
)

// Payload is a decoded JSON object, one raw value per key.
// Keeping values raw lets each field report its own type error.
type Payload map[string]json.RawMessage

// rules is safe for concurrent use and caches parsed tags.
var rules = validator.New()

const (
	tagLatitude   = "gte=-90,lte=90"
	tagLongitude  = "gte=-180,lte=180"
	tagPercent    = "gte=0,lte=100"
	tagPositive   = "gt=0"
	tagIP         = "ip"
	tagURL        = "url"
	tagActivity   = "oneof=still in_vehicle"
	tagTimestamp  = "datetime=" + time.RFC3339Nano
	maxSafeInt    = 1 << 53
	kindNumber    = "number"
	kindInteger   = "integer"
	kindString    = "string"
	kindBoolean   = "boolean"
	kindTimestamp = "ISO-8601 date-time string"
)

// fieldOrder is the canonical order rejections are reported in.
var fieldOrder = []domain.FieldName{
	domain.FieldID,
	domain.FieldUserID,
	domain.FieldLatitude,
	domain.FieldLongitude,
	domain.FieldRecordedAt,
	domain.FieldSpeed,
	domain.FieldHeading,
	domain.FieldAccuracy,
	domain.FieldAltitude,
	domain.FieldProvider,
	domain.FieldBatt,
	domain.FieldIsCharging,
	domain.FieldNetwork,
	domain.FieldConnectionType,
	domain.FieldWifiStatus,
	domain.FieldIPAddress,
	domain.FieldLocationType,
	domain.FieldActivityType,
	domain.FieldActivityConfidence,
	domain.FieldAppState,
	domain.FieldCheckInTime,
	domain.FieldCheckOutTime,
	domain.FieldVisitPurpose,
	domain.FieldSiteName,
	domain.FieldAddress,
	domain.FieldCheckInPhotoURL,
	domain.FieldCheckOutPhotoURL,
}

// Create validates a ping/visit creation payload.
// On success userId, latitude and longitude are Set; recordedAt is Set or
// Absent; every other field may be in any state.
func Create(p Payload) (domain.RecordPatch, error) {
	r := &reader{payload: p}
	patch := readPatch(r)

	r.require(domain.FieldUserID, patch.UserID.State())
	r.require(domain.FieldLatitude, patch.Latitude.State())
	r.require(domain.FieldLongitude, patch.Longitude.State())
	if patch.RecordedAt.IsNull() {
		r.reject(domain.FieldRecordedAt, "must not be null")
	}

	if err := r.err(); err != nil {
		return domain.RecordPatch{}, err
	}
	return patch, nil
}

// Update validates a partial update for record id. Every field is optional.
// An explicit null on a NOT NULL column (userId, latitude, longitude,
// recordedAt) is ignored rather than rejected: the field comes back Absent.
// A body "id" is checked like the path id and otherwise ignored.
func Update(id int64, p Payload) (domain.RecordPatch, error) {
	r := &reader{payload: p}
	if id <= 0 {
		r.reject(domain.FieldID, "must be a positive integer")
	}
	r.integer(domain.FieldID)
	patch := readPatch(r)

	if patch.UserID.IsNull() {
		patch.UserID = domain.Field[int64]{}
	}
	if patch.Latitude.IsNull() {
		patch.Latitude = domain.Field[float64]{}
	}
	if patch.Longitude.IsNull() {
		patch.Longitude = domain.Field[float64]{}
	}
	if patch.RecordedAt.IsNull() {
		patch.RecordedAt = domain.Field[time.Time]{}
	}

	if err := r.err(); err != nil {
		return domain.RecordPatch{}, err
	}
	return patch, nil
}

// readPatch reads every known field with its type and constraint.
func readPatch(r *reader) domain.RecordPatch {
	return domain.RecordPatch{
		UserID:     r.integer(domain.FieldUserID),
		Latitude:   readField[float64](r, domain.FieldLatitude, kindNumber, tagLatitude),
		Longitude:  readField[float64](r, domain.FieldLongitude, kindNumber, tagLongitude),
		RecordedAt: r.timestamp(domain.FieldRecordedAt),

		Speed:              readField[float64](r, domain.FieldSpeed, kindNumber, ""),
		Heading:            readField[float64](r, domain.FieldHeading, kindNumber, ""),
		Accuracy:           readField[float64](r, domain.FieldAccuracy, kindNumber, ""),
		Altitude:           readField[float64](r, domain.FieldAltitude, kindNumber, ""),
		Provider:           readField[string](r, domain.FieldProvider, kindString, ""),
		Batt:               readField[float64](r, domain.FieldBatt, kindNumber, tagPercent),
		IsCharging:         readField[bool](r, domain.FieldIsCharging, kindBoolean, ""),
		Network:            readField[string](r, domain.FieldNetwork, kindString, ""),
		ConnectionType:     readField[string](r, domain.FieldConnectionType, kindString, ""),
		WifiStatus:         readField[bool](r, domain.FieldWifiStatus, kindBoolean, ""),
		IPAddress:          readField[string](r, domain.FieldIPAddress, kindString, tagIP),
		LocationType:       readField[string](r, domain.FieldLocationType, kindString, ""),
		ActivityType:       r.activity(domain.FieldActivityType),
		ActivityConfidence: readField[float64](r, domain.FieldActivityConfidence, kindNumber, tagPercent),
		AppState:           readField[string](r, domain.FieldAppState, kindString, ""),

		CheckInTime:      r.timestamp(domain.FieldCheckInTime),
		CheckOutTime:     r.timestamp(domain.FieldCheckOutTime),
		VisitPurpose:     readField[string](r, domain.FieldVisitPurpose, kindString, ""),
		SiteName:         readField[string](r, domain.FieldSiteName, kindString, ""),
		Address:          readField[string](r, domain.FieldAddress, kindString, ""),
		CheckInPhotoURL:  readField[string](r, domain.FieldCheckInPhotoURL, kindString, tagURL),
		CheckOutPhotoURL: readField[string](r, domain.FieldCheckOutPhotoURL, kindString, tagURL),
	}
}

// reader walks a payload and collects rejections.
type reader struct {
	payload Payload
	errs    []domain.FieldError
}

func (r *reader) reject(name domain.FieldName, reason string) {
	r.errs = append(r.errs, domain.FieldError{Field: string(name), Reason: reason})
}

func (r *reader) require(name domain.FieldName, state domain.FieldState) {
	switch state {
	case domain.Absent:
		if _, present := r.payload[string(name)]; !present {
			r.reject(name, "is required")
		}
	case domain.Null:
		r.reject(name, "must not be null")
	}
}

// raw returns the raw value and its presence state.
func (r *reader) raw(name domain.FieldName) (json.RawMessage, domain.FieldState) {
	v, ok := r.payload[string(name)]
	if !ok {
		return nil, domain.Absent
	}
	if bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
		return nil, domain.Null
	}
	return v, domain.Set
}

func (r *reader) err() error {
	if len(r.errs) == 0 {
		return nil
	}
	rank := make(map[string]int, len(fieldOrder))
	for i, name := range fieldOrder {
		rank[string(name)] = i
	}
	sort.SliceStable(r.errs, func(i, j int) bool {
		return rank[r.errs[i].Field] < rank[r.errs[j].Field]
	})
	return &domain.ValidationError{Fields: r.errs}
}

// readField decodes one field as T and checks it against tag.
// A field that fails is reported and returned Absent.
func readField[T any](r *reader, name domain.FieldName, kind, tag string) domain.Field[T] {
	raw, state := r.raw(name)
	switch state {
	case domain.Absent:
		return domain.Field[T]{}
	case domain.Null:
		return domain.NullField[T]()
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		r.reject(name, "expected "+kind)
		return domain.Field[T]{}
	}
	if tag != "" {
		if err := rules.Var(v, tag); err != nil {
			r.reject(name, reason(err))
			return domain.Field[T]{}
		}
	}
	return domain.Value(v)
}

func (r *reader) integer(name domain.FieldName) domain.Field[int64] {
	f := readField[float64](r, name, kindNumber, "")
	v, ok := f.Get()
	if !ok {
		if f.IsNull() {
			return domain.NullField[int64]()
		}
		return domain.Field[int64]{}
	}
	if v != math.Trunc(v) || math.Abs(v) > maxSafeInt {
		r.reject(name, "expected "+kindInteger)
		return domain.Field[int64]{}
	}
	n := int64(v)
	if err := rules.Var(n, tagPositive); err != nil {
		r.reject(name, "must be a positive integer")
		return domain.Field[int64]{}
	}
	return domain.Value(n)
}

func (r *reader) timestamp(name domain.FieldName) domain.Field[time.Time] {
	f := readField[string](r, name, kindTimestamp, tagTimestamp)
	s, ok := f.Get()
	if !ok {
		if f.IsNull() {
			return domain.NullField[time.Time]()
		}
		return domain.Field[time.Time]{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		r.reject(name, "must be an ISO-8601 date-time")
		return domain.Field[time.Time]{}
	}
	return domain.Value(t.UTC())
}

func (r *reader) activity(name domain.FieldName) domain.Field[domain.ActivityType] {
	f := readField[string](r, name, kindString, tagActivity)
	s, ok := f.Get()
	if !ok {
		if f.IsNull() {
			return domain.NullField[domain.ActivityType]()
		}
		return domain.Field[domain.ActivityType]{}
	}
	return domain.Value(domain.ActivityType(s))
}

// reason renders the first failed rule as a human-readable sentence.
func reason(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "is invalid"
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "ip":
		return "must be a valid IPv4 or IPv6 address"
	case "url":
		return "must be a valid URL"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "datetime":
		return "must be an ISO-8601 date-time"
	default:
		return "failed " + fe.Tag() + " check"
	}
}
