package models

// AvailabilityWindow is a provider's recurring open window for one weekday.
// Weekday follows time.Weekday numbering: 0 = Sunday ... 6 = Saturday.
// Start and End are wall-clock "HH:MM" values at minute granularity.
// At most one window exists per (provider, weekday); setting a weekday
// replaces any prior window for it.
type AvailabilityWindow struct {
	ProviderID  string `bson:"provider_id" json:"providerId"`
	Weekday     int    `bson:"weekday" json:"weekday"`
	Start       string `bson:"start" json:"start"`
	End         string `bson:"end" json:"end"`
	IntervalMin int    `bson:"interval_min,omitempty" json:"intervalMin,omitempty"`
}

// SetAvailabilityRequest is the payload for setting one weekday's window.
type SetAvailabilityRequest struct {
	Weekday     *int   `json:"weekday" binding:"required"`
	Start       string `json:"start" binding:"required"`
	End         string `json:"end" binding:"required"`
	IntervalMin int    `json:"intervalMin"`
}
