package domain

import "time"

// TripStatus represents the dispatch lifecycle state of a linehaul trip.
// The lifecycle is externally driven: DISPATCHED → IN_TRANSIT →
// ARRIVED/UNLOADING → CONTINUING.
type TripStatus string

const (
	// TripStatusDispatched indicates the trip has been dispatched from its origin terminal.
	TripStatusDispatched TripStatus = "DISPATCHED"
	// TripStatusInTransit indicates the trip is moving between terminals.
	TripStatusInTransit TripStatus = "IN_TRANSIT"
	// TripStatusArrived indicates the trip has reached its destination terminal.
	TripStatusArrived TripStatus = "ARRIVED"
	// TripStatusUnloading indicates the trailer is being worked at the destination dock.
	TripStatusUnloading TripStatus = "UNLOADING"
	// TripStatusContinuing indicates the trip continues on a further linehaul leg.
	TripStatusContinuing TripStatus = "CONTINUING"
)

// Trip identifies one dispatched linehaul movement between terminals.
type Trip struct {
	// ID is the internal trip identifier.
	ID int64 `json:"id"`
	// TripNumber is the unique display identifier.
	TripNumber string `json:"tripNumber"`
	// Status is the current dispatch lifecycle state.
	Status TripStatus `json:"status"`
	// PlannedDeparture is the planned departure timestamp, if scheduled.
	PlannedDeparture *time.Time `json:"plannedDeparture,omitempty"`
	// ActualDeparture is the recorded departure timestamp, if the trip left.
	ActualDeparture *time.Time `json:"actualDeparture,omitempty"`
	// PlannedArrival is the planned arrival timestamp, if scheduled.
	PlannedArrival *time.Time `json:"plannedArrival,omitempty"`
	// ActualArrival is the recorded arrival timestamp, if the trip arrived.
	ActualArrival *time.Time `json:"actualArrival,omitempty"`
	// OriginTerminal is the origin terminal code.
	OriginTerminal string `json:"originTerminal"`
	// DestinationTerminal is the destination terminal code.
	DestinationTerminal string `json:"destinationTerminal"`
	// DriverID is the assigned company driver, nil for owner-operator trips.
	DriverID *int64 `json:"driverId,omitempty"`
	// TractorID is the assigned company tractor, nil for owner-operator trips.
	TractorID *int64 `json:"tractorId,omitempty"`
	// Trailers are the physically assigned trailers, primary first,
	// plus up to two additional pups.
	Trailers []Trailer `json:"trailers,omitempty"`
	// Shipments are the freight records moving on the trip.
	Shipments []Shipment `json:"shipments,omitempty"`
	// Profile is the recurring lane template this trip runs, if any.
	Profile *LinehaulProfile `json:"linehaulProfile,omitempty"`
	// LinehaulName is the lane code the trip runs (e.g., "DAL-MEM").
	LinehaulName string `json:"linehaulName"`
	// CreatedAt is when the dispatch record was created.
	CreatedAt time.Time `json:"createdAt"`
}

// OwnerOperator reports whether the trip runs without a company tractor,
// which means no live GPS tracking is possible.
func (t *Trip) OwnerOperator() bool {
	return t.TractorID == nil
}

// Trailer is a physical trailer assigned to a trip.
type Trailer struct {
	// TrailerNumber is the unit number painted on the trailer.
	TrailerNumber string `json:"trailerNumber"`
	// LengthFeet is the usable deck length in feet.
	LengthFeet float64 `json:"lengthFeet"`
}

// Shipment is a freight record assigned to move on a trip.
type Shipment struct {
	// ProNumber is the shipment's PRO (progressive) number.
	ProNumber string `json:"proNumber"`
	// WeightLbs is the shipment weight in pounds.
	WeightLbs float64 `json:"weightLbs"`
}

// Loadsheet is a manifest of freight moving on a trip. Many loadsheets may
// reference one trip; an unassigned loadsheet has no trip reference.
type Loadsheet struct {
	// ManifestNumber is the loadsheet's manifest identifier.
	ManifestNumber string `json:"manifestNumber"`
	// TrailerNumber is the trailer the manifest is planned onto.
	TrailerNumber string `json:"trailerNumber"`
	// Pieces is the handling-unit count.
	Pieces int `json:"pieces"`
	// WeightLbs is the manifest weight in pounds.
	WeightLbs float64 `json:"weightLbs"`
	// SuggestedTrailerLength is the planned trailer length in feet, used
	// when no physical trailer has been assigned yet.
	SuggestedTrailerLength float64 `json:"suggestedTrailerLength"`
	// TargetDispatchTime is the target dispatch clock string (H:MM or H:MM:SS).
	TargetDispatchTime string `json:"targetDispatchTime"`
	// TargetArrivalTime is the target arrival clock string.
	TargetArrivalTime string `json:"targetArrivalTime"`
	// LinehaulName is the lane code the manifest is planned on.
	LinehaulName string `json:"linehaulName"`
	// OriginTerminal is the origin terminal code.
	OriginTerminal string `json:"originTerminal"`
	// DestinationTerminal is the destination terminal code.
	DestinationTerminal string `json:"destinationTerminal"`
	// TripID references the owning trip; nil while unassigned.
	TripID *int64 `json:"tripId,omitempty"`
}

// LinehaulProfile is a template describing a recurring lane. Read-mostly
// reference data a trip may point to as a fallback schedule source.
type LinehaulProfile struct {
	// ID is the profile identifier.
	ID int64 `json:"id"`
	// StandardDepartureTime is the lane's standard departure clock string.
	StandardDepartureTime string `json:"standardDepartureTime"`
	// StandardArrivalTime is the lane's standard arrival clock string.
	StandardArrivalTime string `json:"standardArrivalTime"`
	// Frequency describes how often the lane runs (e.g., "M-F").
	Frequency string `json:"frequency"`
	// EquipmentType is the standard equipment configuration for the lane.
	EquipmentType string `json:"equipmentType"`
	// Headhaul marks the revenue-preferred direction of the lane.
	Headhaul bool `json:"headhaul"`
}

// TripFilter narrows the trips fetched from the TMS.
type TripFilter struct {
	Status    string
	StartDate string
	EndDate   string
	Limit     int
}

// LoadsheetFilter narrows the loadsheets fetched from the TMS.
type LoadsheetFilter struct {
	Status string
	Limit  int
}

// LateReasonRecord is a recorded late-departure disposition for a trip.
// These records live in the TMS; the dispatch board joins against them to
// tell an actionable late trip from a resolved one.
type LateReasonRecord struct {
	// TripID is the trip the reason was recorded for.
	TripID int64 `json:"tripId"`
	// Reason is the recorded late reason code.
	Reason string `json:"reason"`
	// RecordedAt is when the disposition was recorded.
	RecordedAt time.Time `json:"recordedAt"`
}
