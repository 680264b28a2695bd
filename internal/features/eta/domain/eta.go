package domain

import "time"

// Source identifies which resolver produced an ETA estimate.
type Source string

const (
	// SourceGPS means the estimate came from a live GPS track of the
	// trip's tractor.
	SourceGPS Source = "GPS"
	// SourceProfile means the estimate came from the linehaul profile's
	// standard schedule.
	SourceProfile Source = "PROFILE"
	// SourceNone means no source could produce an estimate.
	SourceNone Source = "NONE"
)

// Result is a derived arrival estimate with its provenance. It is never
// stored; the board recomputes it from the latest snapshot on every refresh.
type Result struct {
	// EstimatedArrival is the estimated arrival timestamp; null when no
	// source resolved.
	EstimatedArrival *time.Time `json:"estimatedArrival"`
	// Source is the provenance of the estimate.
	Source Source `json:"source"`
	// Estimate marks a profile-sourced value for an owner-operator trip,
	// where no live tracking can confirm it.
	Estimate bool `json:"estimate,omitempty"`
}

// None is the empty result: no estimate, provenance NONE.
func None() Result {
	return Result{Source: SourceNone}
}

// VehicleLocation is an ephemeral GPS fix for a tractor. It is fetched on
// demand and never persisted by this service.
type VehicleLocation struct {
	// Latitude of the fix.
	Latitude float64 `json:"latitude"`
	// Longitude of the fix.
	Longitude float64 `json:"longitude"`
	// SpeedMph is the reported road speed, if the device sends one.
	SpeedMph *float64 `json:"speedMph,omitempty"`
	// Heading is the compass heading in degrees, if reported.
	Heading *float64 `json:"heading,omitempty"`
	// Timestamp is when the fix was recorded.
	Timestamp time.Time `json:"timestamp"`
	// Address is the reverse-geocoded address, if the provider supplies one.
	Address string `json:"address,omitempty"`
	// EstimatedArrival is the vendor-computed arrival estimate carried on
	// the fix, when the telematics provider supplies one.
	EstimatedArrival *time.Time `json:"estimatedArrival,omitempty"`
}
