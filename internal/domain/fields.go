package domain

// FieldName is the client-facing name of a record field, as it appears in
// JSON payloads and responses.
type FieldName string

const (
	FieldID         FieldName = "id"
	FieldUserID     FieldName = "userId"
	FieldLatitude   FieldName = "latitude"
	FieldLongitude  FieldName = "longitude"
	FieldRecordedAt FieldName = "recordedAt"

	FieldSpeed              FieldName = "speed"
	FieldHeading            FieldName = "heading"
	FieldAccuracy           FieldName = "accuracy"
	FieldAltitude           FieldName = "altitude"
	FieldProvider           FieldName = "provider"
	FieldBatt               FieldName = "batt"
	FieldIsCharging         FieldName = "isCharging"
	FieldNetwork            FieldName = "network"
	FieldConnectionType     FieldName = "connectionType"
	FieldWifiStatus         FieldName = "wifiStatus"
	FieldIPAddress          FieldName = "ipAddress"
	FieldLocationType       FieldName = "locationType"
	FieldActivityType       FieldName = "activityType"
	FieldActivityConfidence FieldName = "activityConfidence"
	FieldAppState           FieldName = "appState"

	FieldCheckInTime      FieldName = "checkInTime"
	FieldCheckOutTime     FieldName = "checkOutTime"
	FieldVisitPurpose     FieldName = "visitPurpose"
	FieldSiteName         FieldName = "siteName"
	FieldAddress          FieldName = "address"
	FieldCheckInPhotoURL  FieldName = "checkInPhotoUrl"
	FieldCheckOutPhotoURL FieldName = "checkOutPhotoUrl"

	FieldUpdatedAt FieldName = "updatedAt"
)
