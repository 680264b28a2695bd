package ports

import (
	"context"

	dispatchdomain "linehaul-dispatch/internal/features/dispatch/domain"
	"linehaul-dispatch/internal/features/eta/domain"
)

// LocationProvider defines the interface for fetching live GPS fixes from
// the telematics vendor.
type LocationProvider interface {
	// VehicleLocation fetches the latest fix for a vehicle. A transport
	// failure returns an error; a vehicle with no current fix returns
	// (nil, nil).
	VehicleLocation(ctx context.Context, vehicleID int64) (*domain.VehicleLocation, error)
}

// Resolver is one element of the ETA source chain. Resolvers are tried in
// priority order; the first one that reports ok wins. A resolver that cannot
// produce an estimate (missing tractor, malformed schedule, provider error)
// reports ok=false so the chain degrades instead of failing.
type Resolver interface {
	Resolve(ctx context.Context, trip dispatchdomain.Trip) (domain.Result, bool)
}
