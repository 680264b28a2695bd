package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"linehaul-dispatch/internal/core/config"
	"linehaul-dispatch/internal/core/httpclient"
	"linehaul-dispatch/internal/core/logger"
	"linehaul-dispatch/internal/features/eta/domain"

	"go.uber.org/zap"
)

// LocationAdapter implements the LocationProvider port against the
// telematics vendor's vehicle-location API.
type LocationAdapter struct {
	client *http.Client
	config config.LocationConfig
}

// NewLocationAdapter creates a new instance of LocationAdapter.
func NewLocationAdapter(cfg config.LocationConfig) *LocationAdapter {
	return &LocationAdapter{
		client: httpclient.NewClient(10 * time.Second),
		config: cfg,
	}
}

// locationResponse represents the JSON structure from the location API.
type locationResponse struct {
	Location *wireLocation `json:"location"`
	Error    string        `json:"error"`
}

type wireLocation struct {
	Latitude         float64  `json:"latitude"`
	Longitude        float64  `json:"longitude"`
	SpeedMph         *float64 `json:"speedMph"`
	Heading          *float64 `json:"heading"`
	Timestamp        locTime  `json:"timestamp"`
	Address          string   `json:"address"`
	EstimatedArrival *locTime `json:"estimatedArrival"`
}

// VehicleLocation fetches the latest GPS fix for a vehicle.
func (a *LocationAdapter) VehicleLocation(ctx context.Context, vehicleID int64) (*domain.VehicleLocation, error) {
	url := fmt.Sprintf("%s/vehicle-location/%d", a.config.URL, vehicleID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("location API returned status: %d", resp.StatusCode)
	}

	var payload locationResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if payload.Error != "" {
		return nil, errors.New(payload.Error)
	}
	if payload.Location == nil {
		return nil, nil
	}

	return payload.Location.toDomain(), nil
}

func (w *wireLocation) toDomain() *domain.VehicleLocation {
	loc := &domain.VehicleLocation{
		Latitude:  w.Latitude,
		Longitude: w.Longitude,
		SpeedMph:  w.SpeedMph,
		Heading:   w.Heading,
		Timestamp: time.Time(w.Timestamp),
		Address:   w.Address,
	}
	if w.EstimatedArrival != nil {
		ts := time.Time(*w.EstimatedArrival)
		if !ts.IsZero() {
			loc.EstimatedArrival = &ts
		}
	}
	return loc
}

// locTime handles the timestamp formats the telematics vendor emits. A value
// that matches no known layout degrades to the zero time instead of failing
// the payload.
type locTime time.Time

// UnmarshalJSON parses the vendor timestamp format.
func (t *locTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), "\"")
	if s == "null" || s == "" {
		*t = locTime(time.Time{})
		return nil
	}

	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			*t = locTime(parsed)
			return nil
		}
	}

	logger.Get().Warn("Failed to parse location timestamp", zap.String("value", s))
	*t = locTime(time.Time{})
	return nil
}
