package ports

import (
	"context"

	"linehaul-dispatch/internal/features/dispatch/domain"
)

// TripProvider defines the read surface of the upstream TMS: the engine
// derives everything from snapshots fetched through this port and never
// caches derived values itself.
type TripProvider interface {
	// Trips retrieves trips matching the filter, with nested driver,
	// tractor, trailer and profile references.
	Trips(ctx context.Context, filter domain.TripFilter) ([]domain.Trip, error)

	// TripsByIDs retrieves the given trips in a single request. IDs with
	// no matching trip are simply absent from the result.
	TripsByIDs(ctx context.Context, ids []int64) ([]domain.Trip, error)

	// Loadsheets retrieves loadsheets matching the filter.
	Loadsheets(ctx context.Context, filter domain.LoadsheetFilter) ([]domain.Loadsheet, error)

	// LateReasons retrieves recorded late-departure reasons keyed by trip id.
	LateReasons(ctx context.Context, tripIDs []int64) (map[int64]domain.LateReasonRecord, error)
}
