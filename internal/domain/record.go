// Package domain contains the core data types for the geo-tracking service.
// It is imported by every other internal package (validate, repo, service, handler)
// and depends only on pgx's pgtype for the decimal storage bridge.
package domain

import "time"

// ActivityType is the closed set of motion states a device may report.
type ActivityType string

const (
	ActivityStill     ActivityType = "still"
	ActivityInVehicle ActivityType = "in_vehicle"
)

// Valid reports whether a is one of the known activity types.
func (a ActivityType) Valid() bool {
	return a == ActivityStill || a == ActivityInVehicle
}

// Record is one geo-tracking observation or visit event, in its stored form.
// Pointer fields are nullable columns: nil is serialised as JSON null.
type Record struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"userId"`
	Latitude   Decimal   `json:"latitude"`
	Longitude  Decimal   `json:"longitude"`
	RecordedAt time.Time `json:"recordedAt"`

	// Device and connectivity metadata.
	Speed              *float64      `json:"speed"`
	Heading            *float64      `json:"heading"`
	Accuracy           *float64      `json:"accuracy"`
	Altitude           *float64      `json:"altitude"`
	Provider           *string       `json:"provider"`
	Batt               *float64      `json:"batt"`
	IsCharging         *bool         `json:"isCharging"`
	Network            *string       `json:"network"`
	ConnectionType     *string       `json:"connectionType"`
	WifiStatus         *bool         `json:"wifiStatus"`
	IPAddress          *string       `json:"ipAddress"`
	LocationType       *string       `json:"locationType"`
	ActivityType       *ActivityType `json:"activityType"`
	ActivityConfidence *float64      `json:"activityConfidence"`
	AppState           *string       `json:"appState"`

	// Visit metadata.
	CheckInTime      *time.Time `json:"checkInTime"`
	CheckOutTime     *time.Time `json:"checkOutTime"`
	VisitPurpose     *string    `json:"visitPurpose"`
	SiteName         *string    `json:"siteName"`
	Address          *string    `json:"address"`
	CheckInPhotoURL  *string    `json:"checkInPhotoUrl"`
	CheckOutPhotoURL *string    `json:"checkOutPhotoUrl"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RecordPatch is a validated partial update. Every field carries its own
// absent / null / set state so the merger never has to guess intent.
// Latitude and Longitude hold client values; the merger encodes them.
type RecordPatch struct {
	UserID     Field[int64]
	Latitude   Field[float64]
	Longitude  Field[float64]
	RecordedAt Field[time.Time]

	Speed              Field[float64]
	Heading            Field[float64]
	Accuracy           Field[float64]
	Altitude           Field[float64]
	Provider           Field[string]
	Batt               Field[float64]
	IsCharging         Field[bool]
	Network            Field[string]
	ConnectionType     Field[string]
	WifiStatus         Field[bool]
	IPAddress          Field[string]
	LocationType       Field[string]
	ActivityType       Field[ActivityType]
	ActivityConfidence Field[float64]
	AppState           Field[string]

	CheckInTime      Field[time.Time]
	CheckOutTime     Field[time.Time]
	VisitPurpose     Field[string]
	SiteName         Field[string]
	Address          Field[string]
	CheckInPhotoURL  Field[string]
	CheckOutPhotoURL Field[string]
}
