package repo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/pkordes/geotracking/internal/domain"
)

// GeoTrackingRepo defines the persistence operations for geo-tracking records.
// The service layer depends on this interface, not the Postgres implementation.
type GeoTrackingRepo interface {
	// Create inserts a validated, codec-converted record and returns the stored
	// row with DB-assigned id, created_at and updated_at. A zero RecordedAt
	// is filled with the insertion time.
	// Returns domain.ErrUserNotFound if the user reference is dangling.
	Create(ctx context.Context, rec domain.Record) (domain.Record, error)

	// GetByID retrieves a single record. Returns domain.ErrNotFound if absent.
	GetByID(ctx context.Context, id int64) (domain.Record, error)

	// List returns up to limit records matching filter, newest recorded_at first.
	List(ctx context.Context, filter domain.ListFilter, limit int) ([]domain.Record, error)

	// Update applies m to exactly one row in a single statement and returns
	// the full updated record. Returns domain.ErrNotFound if id does not exist.
	Update(ctx context.Context, id int64, m domain.Mutation) (domain.Record, error)
}

// recordColumns is the select list shared by every query; scanRecord
// depends on its order.
const recordColumns = `id, user_id, latitude, longitude, recorded_at,
	speed, heading, accuracy, altitude, provider, batt, is_charging, network,
	connection_type, wifi_status, ip_address, location_type, activity_type,
	activity_confidence, app_state,
	check_in_time, check_out_time, visit_purpose, site_name, address,
	check_in_photo_url, check_out_photo_url,
	created_at, updated_at`

// columnFor maps mutable fields to their column. The keys are the only
// fields an update may touch; anything else is a programming error.
var columnFor = map[domain.FieldName]string{
	domain.FieldUserID:             "user_id",
	domain.FieldLatitude:           "latitude",
	domain.FieldLongitude:          "longitude",
	domain.FieldRecordedAt:         "recorded_at",
	domain.FieldSpeed:              "speed",
	domain.FieldHeading:            "heading",
	domain.FieldAccuracy:           "accuracy",
	domain.FieldAltitude:           "altitude",
	domain.FieldProvider:           "provider",
	domain.FieldBatt:               "batt",
	domain.FieldIsCharging:         "is_charging",
	domain.FieldNetwork:            "network",
	domain.FieldConnectionType:     "connection_type",
	domain.FieldWifiStatus:         "wifi_status",
	domain.FieldIPAddress:          "ip_address",
	domain.FieldLocationType:       "location_type",
	domain.FieldActivityType:       "activity_type",
	domain.FieldActivityConfidence: "activity_confidence",
	domain.FieldAppState:           "app_state",
	domain.FieldCheckInTime:        "check_in_time",
	domain.FieldCheckOutTime:       "check_out_time",
	domain.FieldVisitPurpose:       "visit_purpose",
	domain.FieldSiteName:           "site_name",
	domain.FieldAddress:            "address",
	domain.FieldCheckInPhotoURL:    "check_in_photo_url",
	domain.FieldCheckOutPhotoURL:   "check_out_photo_url",
	domain.FieldUpdatedAt:          "updated_at",
}

// pgGeoTrackingRepo is the Postgres implementation of GeoTrackingRepo.
type pgGeoTrackingRepo struct {
	db db
}

// NewGeoTrackingRepo constructs a GeoTrackingRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewGeoTrackingRepo(db db) GeoTrackingRepo {
	return &pgGeoTrackingRepo{db: db}
}

func (r *pgGeoTrackingRepo) Create(ctx context.Context, rec domain.Record) (domain.Record, error) {
	const q = `
		INSERT INTO geo_tracking (
			user_id, latitude, longitude, recorded_at,
			speed, heading, accuracy, altitude, provider, batt, is_charging, network,
			connection_type, wifi_status, ip_address, location_type, activity_type,
			activity_confidence, app_state,
			check_in_time, check_out_time, visit_purpose, site_name, address,
			check_in_photo_url, check_out_photo_url
		) VALUES (
			@user_id, @latitude, @longitude, COALESCE(@recorded_at, now()),
			@speed, @heading, @accuracy, @altitude, @provider, @batt, @is_charging, @network,
			@connection_type, @wifi_status, @ip_address, @location_type, @activity_type,
			@activity_confidence, @app_state,
			@check_in_time, @check_out_time, @visit_purpose, @site_name, @address,
			@check_in_photo_url, @check_out_photo_url
		)
		RETURNING ` + recordColumns

	var recordedAt *time.Time
	if !rec.RecordedAt.IsZero() {
		recordedAt = &rec.RecordedAt
	}

	args := pgx.NamedArgs{
		"user_id":             rec.UserID,
		"latitude":            rec.Latitude,
		"longitude":           rec.Longitude,
		"recorded_at":         recordedAt, // nil falls back to now()
		"speed":               rec.Speed,
		"heading":             rec.Heading,
		"accuracy":            rec.Accuracy,
		"altitude":            rec.Altitude,
		"provider":            rec.Provider,
		"batt":                rec.Batt,
		"is_charging":         rec.IsCharging,
		"network":             rec.Network,
		"connection_type":     rec.ConnectionType,
		"wifi_status":         rec.WifiStatus,
		"ip_address":          rec.IPAddress,
		"location_type":       rec.LocationType,
		"activity_type":       activityString(rec.ActivityType),
		"activity_confidence": rec.ActivityConfidence,
		"app_state":           rec.AppState,
		"check_in_time":       rec.CheckInTime,
		"check_out_time":      rec.CheckOutTime,
		"visit_purpose":       rec.VisitPurpose,
		"site_name":           rec.SiteName,
		"address":             rec.Address,
		"check_in_photo_url":  rec.CheckInPhotoURL,
		"check_out_photo_url": rec.CheckOutPhotoURL,
	}

	result, err := scanRecord(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Record{}, fmt.Errorf("repo.GeoTrackingRepo.Create: %w", mapError(err))
	}
	return result, nil
}

func (r *pgGeoTrackingRepo) GetByID(ctx context.Context, id int64) (domain.Record, error) {
	const q = `SELECT ` + recordColumns + ` FROM geo_tracking WHERE id = @id`

	result, err := scanRecord(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Record{}, fmt.Errorf("repo.GeoTrackingRepo.GetByID: %w", mapError(err))
	}
	return result, nil
}

// List orders by recorded_at descending; id breaks ties so equal
// timestamps still come back in a stable order.
func (r *pgGeoTrackingRepo) List(ctx context.Context, filter domain.ListFilter, limit int) ([]domain.Record, error) {
	q := `SELECT ` + recordColumns + ` FROM geo_tracking`
	args := pgx.NamedArgs{"limit": limit}
	if filter.UserID != nil {
		q += ` WHERE user_id = @user_id`
		args["user_id"] = *filter.UserID
	}
	q += ` ORDER BY recorded_at DESC, id DESC LIMIT @limit`

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.GeoTrackingRepo.List: %w", err)
	}
	defer rows.Close()

	records := make([]domain.Record, 0, limit)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.GeoTrackingRepo.List: scan: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.GeoTrackingRepo.List: rows: %w", err)
	}
	return records, nil
}

// Update builds a SET clause from the mutation's fields only.
// updated_at never moves backwards: it is at least one microsecond past
// the stored value even when clocks disagree.
func (r *pgGeoTrackingRepo) Update(ctx context.Context, id int64, m domain.Mutation) (domain.Record, error) {
	args := pgx.NamedArgs{"id": id}
	sets := make([]string, 0, len(m)+1)

	for _, name := range m.Fields() {
		col, ok := columnFor[name]
		if !ok {
			return domain.Record{}, fmt.Errorf("repo.GeoTrackingRepo.Update: unknown field %q", name)
		}
		if name == domain.FieldUpdatedAt {
			continue
		}
		sets = append(sets, col+" = @"+col)
		args[col] = m[name]
	}

	if ts, ok := m[domain.FieldUpdatedAt]; ok && ts != nil {
		sets = append(sets, "updated_at = GREATEST(@updated_at, updated_at + interval '1 microsecond')")
		args["updated_at"] = ts
	} else {
		sets = append(sets, "updated_at = GREATEST(now(), updated_at + interval '1 microsecond')")
	}

	q := `UPDATE geo_tracking SET ` + strings.Join(sets, ", ") +
		` WHERE id = @id RETURNING ` + recordColumns

	result, err := scanRecord(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Record{}, fmt.Errorf("repo.GeoTrackingRepo.Update: %w", mapError(err))
	}
	return result, nil
}

// scanRecord maps one row in recordColumns order into a domain.Record.
// Nullable columns scan into pointer fields; coordinates are normalised
// to the coordinate scale.
func scanRecord(s scanner) (domain.Record, error) {
	var (
		rec      domain.Record
		activity *string
	)

	err := s.Scan(
		&rec.ID, &rec.UserID, &rec.Latitude, &rec.Longitude, &rec.RecordedAt,
		&rec.Speed, &rec.Heading, &rec.Accuracy, &rec.Altitude, &rec.Provider,
		&rec.Batt, &rec.IsCharging, &rec.Network, &rec.ConnectionType, &rec.WifiStatus,
		&rec.IPAddress, &rec.LocationType, &activity, &rec.ActivityConfidence, &rec.AppState,
		&rec.CheckInTime, &rec.CheckOutTime, &rec.VisitPurpose, &rec.SiteName, &rec.Address,
		&rec.CheckInPhotoURL, &rec.CheckOutPhotoURL,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return domain.Record{}, err
	}

	rec.Latitude = rec.Latitude.Rescale(domain.CoordinateScale)
	rec.Longitude = rec.Longitude.Rescale(domain.CoordinateScale)
	if activity != nil {
		a := domain.ActivityType(*activity)
		rec.ActivityType = &a
	}
	return rec, nil
}

// activityString converts the optional enum to a plain *string for pgx.
func activityString(a *domain.ActivityType) *string {
	if a == nil {
		return nil
	}
	s := string(*a)
	return &s
}
