package domain

// Lateness is the lateness verdict for a trip's departure.
type Lateness struct {
	// Late is true when the trip dispatched after its scheduled departure.
	Late bool `json:"late"`
	// DelayMinutes is how many minutes past schedule the trip dispatched;
	// zero when the trip is not late.
	DelayMinutes int `json:"delayMinutes"`
}

// EvaluateLateness compares the resolved scheduled departure against the
// resolved dispatch time of day. If either side is unresolved the trip is
// not flagged late: absence of data is not evidence of lateness.
//
// The comparison is minutes since midnight under a same-day assumption; a
// schedule that crosses midnight (scheduled 23:50, dispatched 00:10 the next
// day) is not handled and would not be flagged.
func EvaluateLateness(scheduled, dispatched *ClockTime) Lateness {
	if scheduled == nil || dispatched == nil {
		return Lateness{}
	}

	delta := dispatched.Minutes() - scheduled.Minutes()
	if delta <= 0 {
		return Lateness{}
	}

	return Lateness{Late: true, DelayMinutes: delta}
}
