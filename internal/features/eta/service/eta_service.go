package service

import (
	"context"
	"fmt"

	dispatchdomain "linehaul-dispatch/internal/features/dispatch/domain"
	dispatchports "linehaul-dispatch/internal/features/dispatch/ports"
	"linehaul-dispatch/internal/features/eta/domain"
	"linehaul-dispatch/internal/features/eta/ports"
)

// EtaService resolves arrival estimates through an ordered source chain:
// live GPS first, profile schedule second, otherwise none. Provenance is
// carried on every result.
type EtaService struct {
	resolvers []ports.Resolver
	trips     dispatchports.TripProvider
}

// NewEtaService creates a new EtaService with the given resolver chain. The
// chain order is the priority order.
func NewEtaService(resolvers []ports.Resolver, trips dispatchports.TripProvider) *EtaService {
	return &EtaService{
		resolvers: resolvers,
		trips:     trips,
	}
}

// Resolve walks the source chain for a single trip. The first source that
// yields wins; if none does, the result is NONE with a null estimate.
func (s *EtaService) Resolve(ctx context.Context, trip dispatchdomain.Trip) domain.Result {
	for _, resolver := range s.resolvers {
		if result, ok := resolver.Resolve(ctx, trip); ok {
			return result
		}
	}
	return domain.None()
}

// ResolveBatch resolves ETAs for a set of trips at once. The trips are
// fetched from the TMS in a single request so the dispatch board avoids N
// sequential round-trips. Trip ids with no matching trip are simply absent
// from the result, not an error.
func (s *EtaService) ResolveBatch(ctx context.Context, tripIDs []int64) (map[int64]domain.Result, error) {
	if len(tripIDs) == 0 {
		return map[int64]domain.Result{}, nil
	}

	trips, err := s.trips.TripsByIDs(ctx, tripIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch trips for batch ETA: %w", err)
	}

	results := make(map[int64]domain.Result, len(trips))
	for _, trip := range trips {
		results[trip.ID] = s.Resolve(ctx, trip)
	}
	return results, nil
}
