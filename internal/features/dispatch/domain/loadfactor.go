package domain

import "math"

// TrailerDensityLbsPerFoot is the industry planning density for LTL
// trailers: a foot of trailer is assumed to hold 590 lbs of freight.
const TrailerDensityLbsPerFoot = 590.0

// LoadFactorPercent computes trailer utilization as a percentage of the
// density constant, rounded half-up to one decimal place. Returns nil when
// either input is missing or zero; the metric is never computed from a
// fabricated default and never divides by zero.
func LoadFactorPercent(weightLbs, lengthFeet float64) *float64 {
	if weightLbs <= 0 || lengthFeet <= 0 {
		return nil
	}

	pct := weightLbs / (lengthFeet * TrailerDensityLbsPerFoot) * 100
	rounded := math.Floor(pct*10+0.5) / 10
	return &rounded
}

// TripWeightLbs resolves the total freight weight for a trip: the sum of
// the associated loadsheets' weights when any is nonzero, else the sum of
// the trip's shipment weights, else nil.
func TripWeightLbs(trip Trip, loadsheets []Loadsheet) *float64 {
	var sum float64
	for _, ls := range loadsheets {
		sum += ls.WeightLbs
	}
	if sum > 0 {
		return &sum
	}

	sum = 0
	for _, s := range trip.Shipments {
		sum += s.WeightLbs
	}
	if sum > 0 {
		return &sum
	}

	return nil
}

// TripTrailerLengthFeet resolves the total trailer length for a trip: the
// sum of the physically assigned trailers' lengths, falling back to the sum
// of the loadsheets' suggested trailer lengths, else nil.
func TripTrailerLengthFeet(trip Trip, loadsheets []Loadsheet) *float64 {
	var sum float64
	for _, tr := range trip.Trailers {
		sum += tr.LengthFeet
	}
	if sum > 0 {
		return &sum
	}

	sum = 0
	for _, ls := range loadsheets {
		sum += ls.SuggestedTrailerLength
	}
	if sum > 0 {
		return &sum
	}

	return nil
}

// TripLoadFactorPercent resolves weight and length for a trip and computes
// its load factor. Nil propagates: a trip missing either component has no
// load factor.
func TripLoadFactorPercent(trip Trip, loadsheets []Loadsheet) *float64 {
	weight := TripWeightLbs(trip, loadsheets)
	length := TripTrailerLengthFeet(trip, loadsheets)
	if weight == nil || length == nil {
		return nil
	}
	return LoadFactorPercent(*weight, *length)
}

// FleetAggregate accumulates weight and length across a set of trips so the
// fleet-level load factor can be computed once over the summed totals.
// Averaging per-trip percentages instead would bias the metric toward
// lighter loads.
type FleetAggregate struct {
	weightLbs  float64
	lengthFeet float64
}

// Add folds one trip's resolved (weight, length) pair into the aggregate.
// Trips with an unresolvable pair are excluded rather than counted as zero.
func (a *FleetAggregate) Add(weightLbs, lengthFeet *float64) {
	if weightLbs == nil || lengthFeet == nil {
		return
	}
	a.weightLbs += *weightLbs
	a.lengthFeet += *lengthFeet
}

// Percent computes the load factor of the aggregate sums. Returns nil when
// nothing resolvable was added.
func (a *FleetAggregate) Percent() *float64 {
	return LoadFactorPercent(a.weightLbs, a.lengthFeet)
}
