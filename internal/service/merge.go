package service

import (
	"time"

	"github.com/pkordes/geotracking/internal/domain"
)

// Merge computes the minimal mutation for a validated patch.
// Absent fields never appear; Null fields on nullable columns map to nil;
// Set fields carry their storage value. Coordinates go through the
// precision codec. updated_at is always written as now.
// Null on a NOT NULL column (userId, coordinates, recordedAt) is skipped.
// The stored record is not an input: untouched columns keep their values
// because the UPDATE never names them.
func Merge(p domain.RecordPatch, now time.Time) domain.Mutation {
	m := domain.Mutation{domain.FieldUpdatedAt: now}

	if v, ok := p.UserID.Get(); ok {
		m[domain.FieldUserID] = v
	}
	if v, ok := p.Latitude.Get(); ok {
		m[domain.FieldLatitude] = domain.ToStorage(v, domain.LatitudeColumn)
	}
	if v, ok := p.Longitude.Get(); ok {
		m[domain.FieldLongitude] = domain.ToStorage(v, domain.LongitudeColumn)
	}
	if v, ok := p.RecordedAt.Get(); ok {
		m[domain.FieldRecordedAt] = v
	}

	put(m, domain.FieldSpeed, p.Speed)
	put(m, domain.FieldHeading, p.Heading)
	put(m, domain.FieldAccuracy, p.Accuracy)
	put(m, domain.FieldAltitude, p.Altitude)
	put(m, domain.FieldProvider, p.Provider)
	put(m, domain.FieldBatt, p.Batt)
	put(m, domain.FieldIsCharging, p.IsCharging)
	put(m, domain.FieldNetwork, p.Network)
	put(m, domain.FieldConnectionType, p.ConnectionType)
	put(m, domain.FieldWifiStatus, p.WifiStatus)
	put(m, domain.FieldIPAddress, p.IPAddress)
	put(m, domain.FieldLocationType, p.LocationType)
	put(m, domain.FieldActivityConfidence, p.ActivityConfidence)
	put(m, domain.FieldAppState, p.AppState)
	switch p.ActivityType.State() {
	case domain.Null:
		m[domain.FieldActivityType] = nil
	case domain.Set:
		v, _ := p.ActivityType.Get()
		m[domain.FieldActivityType] = string(v)
	}

	put(m, domain.FieldCheckInTime, p.CheckInTime)
	put(m, domain.FieldCheckOutTime, p.CheckOutTime)
	put(m, domain.FieldVisitPurpose, p.VisitPurpose)
	put(m, domain.FieldSiteName, p.SiteName)
	put(m, domain.FieldAddress, p.Address)
	put(m, domain.FieldCheckInPhotoURL, p.CheckInPhotoURL)
	put(m, domain.FieldCheckOutPhotoURL, p.CheckOutPhotoURL)

	return m
}

// put writes a nullable column: nil for Null, the value for Set.
func put[T any](m domain.Mutation, name domain.FieldName, f domain.Field[T]) {
	switch f.State() {
	case domain.Null:
		m[name] = nil
	case domain.Set:
		v, _ := f.Get()
		m[name] = v
	}
}

// newRecord converts a validated create patch into its storage form.
func newRecord(p domain.RecordPatch) domain.Record {
	userID, _ := p.UserID.Get()
	lat, _ := p.Latitude.Get()
	lng, _ := p.Longitude.Get()
	recordedAt, _ := p.RecordedAt.Get()

	rec := domain.Record{
		UserID:     userID,
		Latitude:   domain.ToStorage(lat, domain.LatitudeColumn),
		Longitude:  domain.ToStorage(lng, domain.LongitudeColumn),
		RecordedAt: recordedAt,

		Speed:              p.Speed.Ptr(),
		Heading:            p.Heading.Ptr(),
		Accuracy:           p.Accuracy.Ptr(),
		Altitude:           p.Altitude.Ptr(),
		Provider:           p.Provider.Ptr(),
		Batt:               p.Batt.Ptr(),
		IsCharging:         p.IsCharging.Ptr(),
		Network:            p.Network.Ptr(),
		ConnectionType:     p.ConnectionType.Ptr(),
		WifiStatus:         p.WifiStatus.Ptr(),
		IPAddress:          p.IPAddress.Ptr(),
		LocationType:       p.LocationType.Ptr(),
		ActivityType:       p.ActivityType.Ptr(),
		ActivityConfidence: p.ActivityConfidence.Ptr(),
		AppState:           p.AppState.Ptr(),

		CheckInTime:      p.CheckInTime.Ptr(),
		CheckOutTime:     p.CheckOutTime.Ptr(),
		VisitPurpose:     p.VisitPurpose.Ptr(),
		SiteName:         p.SiteName.Ptr(),
		Address:          p.Address.Ptr(),
		CheckInPhotoURL:  p.CheckInPhotoURL.Ptr(),
		CheckOutPhotoURL: p.CheckOutPhotoURL.Ptr(),
	}
	return rec
}
