package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"linehaul-dispatch/internal/core/config"
	"linehaul-dispatch/internal/core/httpclient"
	"linehaul-dispatch/internal/core/logger"
	"linehaul-dispatch/internal/features/dispatch/domain"

	"go.uber.org/zap"
)

// TMSAdapter implements the TripProvider port against the TMS REST API.
type TMSAdapter struct {
	// client is the HTTP client used for API requests.
	client *http.Client
	// config holds the TMS connection details.
	config config.TMSConfig
}

// NewTMSAdapter creates a new instance of TMSAdapter.
func NewTMSAdapter(cfg config.TMSConfig) *TMSAdapter {
	return &TMSAdapter{
		client: httpclient.NewClient(10 * time.Second),
		config: cfg,
	}
}

// Trips fetches trips matching the filter and maps them to domain entities.
func (a *TMSAdapter) Trips(ctx context.Context, filter domain.TripFilter) ([]domain.Trip, error) {
	query := url.Values{}
	if filter.Status != "" {
		query.Set("status", filter.Status)
	}
	if filter.StartDate != "" {
		query.Set("startDate", filter.StartDate)
	}
	if filter.EndDate != "" {
		query.Set("endDate", filter.EndDate)
	}
	if filter.Limit > 0 {
		query.Set("limit", strconv.Itoa(filter.Limit))
	}

	var wireTrips []tmsTrip
	if err := a.getJSON(ctx, "/trips", query, &wireTrips); err != nil {
		return nil, fmt.Errorf("failed to fetch trips: %w", err)
	}

	trips := make([]domain.Trip, 0, len(wireTrips))
	for _, wt := range wireTrips {
		trips = append(trips, wt.toDomain())
	}
	return trips, nil
}

// TripsByIDs fetches the given trips in a single request.
func (a *TMSAdapter) TripsByIDs(ctx context.Context, ids []int64) ([]domain.Trip, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := url.Values{}
	query.Set("ids", joinIDs(ids))

	var wireTrips []tmsTrip
	if err := a.getJSON(ctx, "/trips", query, &wireTrips); err != nil {
		return nil, fmt.Errorf("failed to fetch trips by ids: %w", err)
	}

	trips := make([]domain.Trip, 0, len(wireTrips))
	for _, wt := range wireTrips {
		trips = append(trips, wt.toDomain())
	}
	return trips, nil
}

// Loadsheets fetches loadsheets matching the filter.
func (a *TMSAdapter) Loadsheets(ctx context.Context, filter domain.LoadsheetFilter) ([]domain.Loadsheet, error) {
	query := url.Values{}
	if filter.Status != "" {
		query.Set("status", filter.Status)
	}
	if filter.Limit > 0 {
		query.Set("limit", strconv.Itoa(filter.Limit))
	}

	var wireLoadsheets []tmsLoadsheet
	if err := a.getJSON(ctx, "/loadsheets", query, &wireLoadsheets); err != nil {
		return nil, fmt.Errorf("failed to fetch loadsheets: %w", err)
	}

	loadsheets := make([]domain.Loadsheet, 0, len(wireLoadsheets))
	for _, wl := range wireLoadsheets {
		loadsheets = append(loadsheets, wl.toDomain())
	}
	return loadsheets, nil
}

// LateReasons fetches recorded late-departure reasons for the given trips,
// keyed by trip id.
func (a *TMSAdapter) LateReasons(ctx context.Context, tripIDs []int64) (map[int64]domain.LateReasonRecord, error) {
	if len(tripIDs) == 0 {
		return map[int64]domain.LateReasonRecord{}, nil
	}

	query := url.Values{}
	query.Set("tripIds", joinIDs(tripIDs))

	var records []tmsLateReason
	if err := a.getJSON(ctx, "/late-departure-reasons", query, &records); err != nil {
		return nil, fmt.Errorf("failed to fetch late reasons: %w", err)
	}

	out := make(map[int64]domain.LateReasonRecord, len(records))
	for _, r := range records {
		out[r.TripID] = domain.LateReasonRecord{
			TripID:     r.TripID,
			Reason:     r.Reason,
			RecordedAt: time.Time(r.RecordedAt),
		}
	}
	return out, nil
}

// getJSON executes an authenticated GET against the TMS API and decodes the
// response body into out.
func (a *TMSAdapter) getJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	reqURL := a.config.URL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Api-Key", a.config.APIKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("TMS API returned status: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func joinIDs(ids []int64) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	return strings.Join(parts, ",")
}

// internal structs for mapping

// tmsTrip represents the JSON structure of a trip from the TMS API.
type tmsTrip struct {
	ID                  int64         `json:"id"`
	TripNumber          string        `json:"tripNumber"`
	Status              string        `json:"status"`
	PlannedDeparture    *tmsTime      `json:"plannedDeparture"`
	ActualDeparture     *tmsTime      `json:"actualDeparture"`
	PlannedArrival      *tmsTime      `json:"plannedArrival"`
	ActualArrival       *tmsTime      `json:"actualArrival"`
	OriginTerminal      string        `json:"originTerminal"`
	DestinationTerminal string        `json:"destinationTerminal"`
	Driver              *tmsRef       `json:"driver"`
	Truck               *tmsRef       `json:"truck"`
	Trailers            []tmsTrailer  `json:"trailers"`
	Shipments           []tmsShipment `json:"shipments"`
	Profile             *tmsProfile   `json:"linehaulProfile"`
	LinehaulName        string        `json:"linehaulName"`
	CreatedAt           tmsTime       `json:"createdAt"`
}

// tmsRef is a nested reference (driver, truck) carrying only the id.
type tmsRef struct {
	ID int64 `json:"id"`
}

type tmsTrailer struct {
	TrailerNumber string  `json:"trailerNumber"`
	LengthFeet    float64 `json:"lengthFeet"`
}

type tmsShipment struct {
	ProNumber string  `json:"proNumber"`
	WeightLbs float64 `json:"weight"`
}

type tmsProfile struct {
	ID                    int64  `json:"id"`
	StandardDepartureTime string `json:"standardDepartureTime"`
	StandardArrivalTime   string `json:"standardArrivalTime"`
	Frequency             string `json:"frequency"`
	EquipmentType         string `json:"equipmentType"`
	Headhaul              bool   `json:"headhaul"`
}

type tmsLoadsheet struct {
	ManifestNumber         string  `json:"manifestNumber"`
	TrailerNumber          string  `json:"trailerNumber"`
	Pieces                 int     `json:"pieces"`
	Weight                 float64 `json:"weight"`
	SuggestedTrailerLength float64 `json:"suggestedTrailerLength"`
	TargetDispatchTime     string  `json:"targetDispatchTime"`
	TargetArrivalTime      string  `json:"targetArrivalTime"`
	LinehaulName           string  `json:"linehaulName"`
	OriginTerminal         string  `json:"originTerminal"`
	DestinationTerminal    string  `json:"destinationTerminal"`
	TripID                 *int64  `json:"tripId"`
}

type tmsLateReason struct {
	TripID     int64   `json:"tripId"`
	Reason     string  `json:"reason"`
	RecordedAt tmsTime `json:"recordedAt"`
}

func (t tmsTrip) toDomain() domain.Trip {
	trip := domain.Trip{
		ID:                  t.ID,
		TripNumber:          t.TripNumber,
		Status:              domain.TripStatus(t.Status),
		PlannedDeparture:    t.PlannedDeparture.toTimePtr(),
		ActualDeparture:     t.ActualDeparture.toTimePtr(),
		PlannedArrival:      t.PlannedArrival.toTimePtr(),
		ActualArrival:       t.ActualArrival.toTimePtr(),
		OriginTerminal:      t.OriginTerminal,
		DestinationTerminal: t.DestinationTerminal,
		LinehaulName:        t.LinehaulName,
		CreatedAt:           time.Time(t.CreatedAt),
	}

	if t.Driver != nil {
		id := t.Driver.ID
		trip.DriverID = &id
	}
	if t.Truck != nil {
		id := t.Truck.ID
		trip.TractorID = &id
	}
	for _, tr := range t.Trailers {
		trip.Trailers = append(trip.Trailers, domain.Trailer{
			TrailerNumber: tr.TrailerNumber,
			LengthFeet:    tr.LengthFeet,
		})
	}
	for _, s := range t.Shipments {
		trip.Shipments = append(trip.Shipments, domain.Shipment{
			ProNumber: s.ProNumber,
			WeightLbs: s.WeightLbs,
		})
	}
	if t.Profile != nil {
		trip.Profile = &domain.LinehaulProfile{
			ID:                    t.Profile.ID,
			StandardDepartureTime: t.Profile.StandardDepartureTime,
			StandardArrivalTime:   t.Profile.StandardArrivalTime,
			Frequency:             t.Profile.Frequency,
			EquipmentType:         t.Profile.EquipmentType,
			Headhaul:              t.Profile.Headhaul,
		}
	}

	return trip
}

func (l tmsLoadsheet) toDomain() domain.Loadsheet {
	return domain.Loadsheet{
		ManifestNumber:         l.ManifestNumber,
		TrailerNumber:          l.TrailerNumber,
		Pieces:                 l.Pieces,
		WeightLbs:              l.Weight,
		SuggestedTrailerLength: l.SuggestedTrailerLength,
		TargetDispatchTime:     l.TargetDispatchTime,
		TargetArrivalTime:      l.TargetArrivalTime,
		LinehaulName:           l.LinehaulName,
		OriginTerminal:         l.OriginTerminal,
		DestinationTerminal:    l.DestinationTerminal,
		TripID:                 l.TripID,
	}
}

// tmsTime is a custom helper struct to handle the TMS date formats.
type tmsTime time.Time

// UnmarshalJSON parses the timestamp formats used by the TMS. A value that
// matches no known layout logs a warning and unmarshals as the zero time
// rather than failing the whole payload.
func (t *tmsTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), "\"")
	if s == "null" || s == "" {
		*t = tmsTime(time.Time{})
		return nil
	}

	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			*t = tmsTime(parsed)
			return nil
		}
	}

	logger.Get().Warn("Failed to parse TMS timestamp", zap.String("value", s))
	*t = tmsTime(time.Time{})
	return nil
}

// toTimePtr converts an optional wire timestamp into a *time.Time, mapping
// both JSON null and the zero time to nil so missing data stays missing.
func (t *tmsTime) toTimePtr() *time.Time {
	if t == nil {
		return nil
	}
	ts := time.Time(*t)
	if ts.IsZero() {
		return nil
	}
	return &ts
}
