package model

import "time"

// Profile holds the user's identity and medical details.
type Profile struct {
	ID              string `json:"id"`
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Address         string `json:"address"`
	AadhaarVerified bool   `json:"aadhaar_verified"`
	AadhaarNumber   string `json:"aadhaar_number,omitempty"`
	BloodGroup      string `json:"blood_group,omitempty"`
	Allergies       string `json:"allergies,omitempty"`
	Medications     string `json:"medications,omitempty"`
}

// EmergencyContact is a trusted person notified on SOS and missed check-ins.
type EmergencyContact struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Relation string `json:"relation"`
}

// PrivacyMode controls how much location detail is shared.
type PrivacyMode string

const (
	PrivacyStandard PrivacyMode = "standard"
	PrivacyEnhanced PrivacyMode = "enhanced"
	PrivacyMaximum  PrivacyMode = "maximum"
)

// Settings holds user preferences.
type Settings struct {
	DarkMode         bool        `json:"dark_mode"`
	Notifications    bool        `json:"notifications"`
	Sound            bool        `json:"sound"`
	LocationTracking bool        `json:"location_tracking"`
	PrivacyMode      PrivacyMode `json:"privacy_mode"`
	CheckInInterval  int         `json:"check_in_interval"` // minutes
	SafetyRadius     int         `json:"safety_radius"`     // meters
}

// GuardianState is the guardian-mode (continuous location sharing) flag.
type GuardianState struct {
	Active    bool      `json:"active"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AlertType classifies an alert.
type AlertType string

const (
	AlertArea    AlertType = "area"
	AlertCheckIn AlertType = "checkin"
	AlertSystem  AlertType = "system"
)

// Alert is a user-facing notification record.
type Alert struct {
	ID        string    `json:"id"`
	Type      AlertType `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Location  string    `json:"location,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Read      bool      `json:"read"`
}

// SOSEvent records a triggered emergency alert.
type SOSEvent struct {
	ID          string    `json:"id"`
	Location    GeoPoint  `json:"location"`
	Approximate bool      `json:"approximate"` // true when the fallback location was used
	TriggeredAt time.Time `json:"triggered_at"`
	Notified    []string  `json:"notified,omitempty"` // contact IDs notified
}

// CheckIn records a periodic safety check-in.
type CheckIn struct {
	ID        string    `json:"id"`
	Location  GeoPoint  `json:"location"`
	CheckedAt time.Time `json:"checked_at"`
}
