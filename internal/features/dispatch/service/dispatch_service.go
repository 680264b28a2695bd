package service

import (
	"context"
	"fmt"
	"time"

	"linehaul-dispatch/internal/core/logger"
	"linehaul-dispatch/internal/features/dispatch/domain"
	"linehaul-dispatch/internal/features/dispatch/ports"

	"go.uber.org/zap"
)

// LateStatus classifies a board item's lateness for display.
type LateStatus string

const (
	// LateStatusOnTime means the trip is not flagged late.
	LateStatusOnTime LateStatus = "ON_TIME"
	// LateStatusActionable means the trip is late and no reason has been
	// recorded yet; dispatch still owes a disposition.
	LateStatusActionable LateStatus = "ACTIONABLE"
	// LateStatusResolved means the trip is late but a reason was recorded
	// through the disposition workflow.
	LateStatusResolved LateStatus = "RESOLVED"
)

// BoardItem is one row of the dispatch board: a trip with its derived facts.
type BoardItem struct {
	TripID              int64             `json:"tripId"`
	TripNumber          string            `json:"tripNumber"`
	Status              domain.TripStatus `json:"status"`
	OriginTerminal      string            `json:"originTerminal"`
	DestinationTerminal string            `json:"destinationTerminal"`
	LinehaulName        string            `json:"linehaulName"`
	// ScheduledDeparture is the resolved scheduled departure time of day;
	// null when no source resolves.
	ScheduledDeparture *domain.ClockTime `json:"scheduledDeparture"`
	// ScheduledDepartureDisplay is the board rendering of the scheduled
	// departure; "-" when unresolved.
	ScheduledDepartureDisplay string `json:"scheduledDepartureDisplay"`
	// ScheduledArrival is the resolved scheduled arrival timestamp.
	ScheduledArrival *time.Time `json:"scheduledArrival"`
	// DispatchTime is the actual departure, or the creation-time proxy.
	DispatchTime *time.Time `json:"dispatchTime"`
	// Lateness is the lateness verdict derived from the two times above.
	Lateness domain.Lateness `json:"lateness"`
	// LateStatus is the display classification of the verdict.
	LateStatus LateStatus `json:"lateStatus"`
	// LateReason is the recorded reason for a resolved late trip.
	LateReason string `json:"lateReason,omitempty"`
	// OwnerOperator is true when the trip has no company tractor.
	OwnerOperator bool `json:"ownerOperator"`
	// LoadFactorPercent is the trailer utilization; null when weight or
	// length cannot be resolved.
	LoadFactorPercent *float64 `json:"loadFactorPercent"`
	// ManifestNumbers lists the loadsheets riding on the trip.
	ManifestNumbers []string `json:"manifestNumbers,omitempty"`
}

// Board is the dispatch board built from one TMS snapshot.
type Board struct {
	Items []BoardItem `json:"items"`
	// FleetLoadFactorPercent is the cumulative load factor over the
	// filtered set, computed from summed weight and length.
	FleetLoadFactorPercent *float64 `json:"fleetLoadFactorPercent"`
	// GeneratedAt is when the snapshot was derived.
	GeneratedAt time.Time `json:"generatedAt"`
}

// DispatchService derives the dispatch board from TMS snapshots. All derived
// values are recomputed from the latest fetch on every call; staleness is
// managed entirely by the caller's refetch cadence.
type DispatchService struct {
	provider ports.TripProvider
	now      func() time.Time
}

// NewDispatchService creates a new DispatchService with the given provider.
func NewDispatchService(provider ports.TripProvider) *DispatchService {
	return &DispatchService{
		provider: provider,
		now:      time.Now,
	}
}

// Board fetches trips and loadsheets matching the filter and derives the
// dispatch board: schedule resolution, lateness verdicts, the late-reason
// join, per-trip load factors and the fleet cumulative load factor.
func (s *DispatchService) Board(ctx context.Context, filter domain.TripFilter) (*Board, error) {
	trips, err := s.provider.Trips(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch trips: %w", err)
	}

	loadsheets, err := s.provider.Loadsheets(ctx, domain.LoadsheetFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch loadsheets: %w", err)
	}

	byTrip := groupLoadsheets(loadsheets)
	now := s.now()

	items := make([]BoardItem, 0, len(trips))
	var lateTripIDs []int64
	var fleet domain.FleetAggregate

	for _, trip := range trips {
		tripLoadsheets := byTrip[trip.ID]

		scheduled := domain.ResolveScheduledDeparture(trip, tripLoadsheets)
		dispatchTime := domain.ResolveDispatchTime(trip)

		var dispatched *domain.ClockTime
		if dispatchTime != nil {
			c := domain.ClockAt(*dispatchTime)
			dispatched = &c
		}

		verdict := domain.EvaluateLateness(scheduled, dispatched)
		if verdict.Late {
			lateTripIDs = append(lateTripIDs, trip.ID)
		}

		weight := domain.TripWeightLbs(trip, tripLoadsheets)
		length := domain.TripTrailerLengthFeet(trip, tripLoadsheets)
		fleet.Add(weight, length)

		var loadFactor *float64
		if weight != nil && length != nil {
			loadFactor = domain.LoadFactorPercent(*weight, *length)
		}

		items = append(items, BoardItem{
			TripID:                    trip.ID,
			TripNumber:                trip.TripNumber,
			Status:                    trip.Status,
			OriginTerminal:            trip.OriginTerminal,
			DestinationTerminal:       trip.DestinationTerminal,
			LinehaulName:              trip.LinehaulName,
			ScheduledDeparture:        scheduled,
			ScheduledDepartureDisplay: scheduled.Display(),
			ScheduledArrival:          domain.ResolveScheduledArrival(trip, tripLoadsheets, now),
			DispatchTime:              dispatchTime,
			Lateness:                  verdict,
			LateStatus:                LateStatusOnTime,
			OwnerOperator:             trip.OwnerOperator(),
			LoadFactorPercent:         loadFactor,
			ManifestNumbers:           manifestNumbers(tripLoadsheets),
		})
	}

	if err := s.joinLateReasons(ctx, items, lateTripIDs); err != nil {
		return nil, err
	}

	logger.Get().Debug("Dispatch board derived",
		zap.Int("trips", len(items)),
		zap.Int("late", len(lateTripIDs)),
	)

	return &Board{
		Items:                  items,
		FleetLoadFactorPercent: fleet.Percent(),
		GeneratedAt:            now,
	}, nil
}

// joinLateReasons classifies late items as actionable or resolved based on
// the recorded late-reason records; lateness itself is derived, the recorded
// reason is not a stored trip field.
func (s *DispatchService) joinLateReasons(ctx context.Context, items []BoardItem, lateTripIDs []int64) error {
	if len(lateTripIDs) == 0 {
		return nil
	}

	reasons, err := s.provider.LateReasons(ctx, lateTripIDs)
	if err != nil {
		return fmt.Errorf("failed to fetch late reasons: %w", err)
	}

	for i := range items {
		if !items[i].Lateness.Late {
			continue
		}
		if record, ok := reasons[items[i].TripID]; ok {
			items[i].LateStatus = LateStatusResolved
			items[i].LateReason = record.Reason
		} else {
			items[i].LateStatus = LateStatusActionable
		}
	}
	return nil
}

func groupLoadsheets(loadsheets []domain.Loadsheet) map[int64][]domain.Loadsheet {
	byTrip := make(map[int64][]domain.Loadsheet)
	for _, ls := range loadsheets {
		if ls.TripID == nil {
			continue
		}
		byTrip[*ls.TripID] = append(byTrip[*ls.TripID], ls)
	}
	return byTrip
}

func manifestNumbers(loadsheets []domain.Loadsheet) []string {
	if len(loadsheets) == 0 {
		return nil
	}
	numbers := make([]string, 0, len(loadsheets))
	for _, ls := range loadsheets {
		numbers = append(numbers, ls.ManifestNumber)
	}
	return numbers
}
