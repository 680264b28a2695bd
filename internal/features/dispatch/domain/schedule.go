package domain

import "time"

// ResolveScheduledDeparture resolves the authoritative scheduled departure
// time of day for a trip. Sources are tried in priority order: the target
// dispatch time of the first associated loadsheet, then the time of day of
// the trip's planned departure. An unparseable source falls through to the
// next one. Returns nil when no source resolves.
func ResolveScheduledDeparture(trip Trip, loadsheets []Loadsheet) *ClockTime {
	if len(loadsheets) > 0 {
		if c, ok := ParseClock(loadsheets[0].TargetDispatchTime); ok {
			return &c
		}
	}
	if trip.PlannedDeparture != nil {
		c := ClockAt(*trip.PlannedDeparture)
		return &c
	}
	return nil
}

// ResolveScheduledArrival resolves the scheduled arrival timestamp for a
// trip. Priority: the first loadsheet's target arrival clock paired with a
// date taken from the planned arrival or the dispatch date, then the trip's
// planned arrival, then the linehaul profile's standard arrival clock paired
// with the dispatch date or the current date. Returns nil when no source
// resolves.
func ResolveScheduledArrival(trip Trip, loadsheets []Loadsheet, now time.Time) *time.Time {
	if len(loadsheets) > 0 {
		if c, ok := ParseClock(loadsheets[0].TargetArrivalTime); ok {
			date := trip.PlannedArrival
			if date == nil {
				date = ResolveDispatchTime(trip)
			}
			if date != nil {
				ts := c.On(*date)
				return &ts
			}
		}
	}

	if trip.PlannedArrival != nil {
		return trip.PlannedArrival
	}

	if trip.Profile != nil {
		if c, ok := ParseClock(trip.Profile.StandardArrivalTime); ok {
			date := now
			if d := ResolveDispatchTime(trip); d != nil {
				date = *d
			}
			ts := c.On(date)
			return &ts
		}
	}

	return nil
}

// ResolveDispatchTime resolves the actual departure timestamp of a trip.
// When no departure was recorded, the creation timestamp of the dispatch
// record stands in as a proxy: an approximation, not a measurement. Returns
// nil only when the trip carries no usable timestamp at all.
func ResolveDispatchTime(trip Trip) *time.Time {
	if trip.ActualDeparture != nil {
		return trip.ActualDeparture
	}
	if !trip.CreatedAt.IsZero() {
		t := trip.CreatedAt
		return &t
	}
	return nil
}
