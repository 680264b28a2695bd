package adapters

import (
	"context"
	"time"

	dispatchdomain "linehaul-dispatch/internal/features/dispatch/domain"
	"linehaul-dispatch/internal/features/eta/domain"
)

// ProfileSource resolves an ETA from the linehaul profile's standard arrival
// schedule. It sits below GPS in the source chain and is the only option for
// owner-operator trips.
type ProfileSource struct {
	// Now is the clock used to date the estimate when the trip carries no
	// dispatch timestamp; overridable in tests.
	Now func() time.Time
}

// NewProfileSource creates a new ProfileSource.
func NewProfileSource() *ProfileSource {
	return &ProfileSource{Now: time.Now}
}

// Resolve combines the profile's standard arrival clock with the trip's
// dispatch date, or today when the trip has not dispatched. A missing
// profile or an unparseable standard time yields no result rather than an
// error. The result is marked as an estimate for owner-operator trips since
// no live tracking can confirm it.
func (s *ProfileSource) Resolve(ctx context.Context, trip dispatchdomain.Trip) (domain.Result, bool) {
	if trip.Profile == nil {
		return domain.None(), false
	}

	clock, ok := dispatchdomain.ParseClock(trip.Profile.StandardArrivalTime)
	if !ok {
		return domain.None(), false
	}

	date := s.Now()
	if d := dispatchdomain.ResolveDispatchTime(trip); d != nil {
		date = *d
	}

	estimated := clock.On(date)
	return domain.Result{
		EstimatedArrival: &estimated,
		Source:           domain.SourceProfile,
		Estimate:         trip.OwnerOperator(),
	}, true
}
