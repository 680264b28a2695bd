package adapters

import (
	"context"

	"linehaul-dispatch/internal/core/logger"
	dispatchdomain "linehaul-dispatch/internal/features/dispatch/domain"
	"linehaul-dispatch/internal/features/eta/domain"
	"linehaul-dispatch/internal/features/eta/ports"

	"go.uber.org/zap"
)

// GPSSource resolves an ETA from the live GPS track of the trip's tractor.
// It is the highest-priority element of the source chain.
type GPSSource struct {
	locations ports.LocationProvider
	logger    *zap.Logger
}

// NewGPSSource creates a new GPSSource backed by the given location provider.
func NewGPSSource(locations ports.LocationProvider) *GPSSource {
	return &GPSSource{
		locations: locations,
		logger:    logger.Get(),
	}
}

// Resolve fetches the tractor's latest fix and returns its vendor arrival
// estimate. Owner-operator trips have no tractor and therefore no live
// tracking; a provider error or a fix without a usable estimate degrades to
// no result so the chain can fall through to the profile schedule.
func (s *GPSSource) Resolve(ctx context.Context, trip dispatchdomain.Trip) (domain.Result, bool) {
	if trip.TractorID == nil {
		return domain.None(), false
	}

	fix, err := s.locations.VehicleLocation(ctx, *trip.TractorID)
	if err != nil {
		s.logger.Debug("GPS lookup failed, falling through",
			zap.Int64("trip_id", trip.ID),
			zap.Int64("tractor_id", *trip.TractorID),
			zap.Error(err),
		)
		return domain.None(), false
	}

	if fix == nil || fix.EstimatedArrival == nil {
		return domain.None(), false
	}

	return domain.Result{
		EstimatedArrival: fix.EstimatedArrival,
		Source:           domain.SourceGPS,
	}, true
}
