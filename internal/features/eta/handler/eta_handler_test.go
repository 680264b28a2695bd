package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	dispatchdomain "linehaul-dispatch/internal/features/dispatch/domain"
	"linehaul-dispatch/internal/features/eta/adapters"
	"linehaul-dispatch/internal/features/eta/domain"
	"linehaul-dispatch/internal/features/eta/ports"
	"linehaul-dispatch/internal/features/eta/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockLocationProvider is a mock implementation of LocationProvider for testing.
type mockLocationProvider struct {
	location *domain.VehicleLocation
	err      error
}

func (m *mockLocationProvider) VehicleLocation(ctx context.Context, vehicleID int64) (*domain.VehicleLocation, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.location, nil
}

// mockTripProvider implements only the TripsByIDs path used by batch ETA.
type mockTripProvider struct {
	trips []dispatchdomain.Trip
	err   error
}

func (m *mockTripProvider) Trips(ctx context.Context, filter dispatchdomain.TripFilter) ([]dispatchdomain.Trip, error) {
	return m.trips, m.err
}

func (m *mockTripProvider) TripsByIDs(ctx context.Context, ids []int64) ([]dispatchdomain.Trip, error) {
	return m.trips, m.err
}

func (m *mockTripProvider) Loadsheets(ctx context.Context, filter dispatchdomain.LoadsheetFilter) ([]dispatchdomain.Loadsheet, error) {
	return nil, nil
}

func (m *mockTripProvider) LateReasons(ctx context.Context, tripIDs []int64) (map[int64]dispatchdomain.LateReasonRecord, error) {
	return nil, nil
}

func newTestApp(locations ports.LocationProvider, trips *mockTripProvider) *fiber.App {
	profile := adapters.NewProfileSource()
	profile.Now = func() time.Time { return time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC) }

	svc := service.NewEtaService([]ports.Resolver{adapters.NewGPSSource(locations), profile}, trips)
	h := NewEtaHandler(svc, locations)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("requestid", "test-ray-id")
		return c.Next()
	})
	app.Post("/linehaul-trips/eta/batch", h.ResolveBatch)
	app.Get("/vehicle-location/:vehicleId", h.GetVehicleLocation)
	return app
}

// TestEtaHandler_ResolveBatch_Success verifies the batch response mapping.
func TestEtaHandler_ResolveBatch_Success(t *testing.T) {
	trips := &mockTripProvider{
		trips: []dispatchdomain.Trip{
			{
				ID:        1,
				CreatedAt: time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC),
				Profile:   &dispatchdomain.LinehaulProfile{StandardArrivalTime: "14:30:00"},
			},
		},
	}

	app := newTestApp(&mockLocationProvider{}, trips)

	body := strings.NewReader(`{"tripIds":[1,999]}`)
	req := httptest.NewRequest("POST", "/linehaul-trips/eta/batch", body)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result BatchResponse
	err = json.NewDecoder(resp.Body).Decode(&result)
	require.NoError(t, err)
	require.Len(t, result.Etas, 1)
	assert.Equal(t, domain.SourceProfile, result.Etas[1].Source)
	require.NotNil(t, result.Etas[1].EstimatedArrival)
	assert.Equal(t, time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC), *result.Etas[1].EstimatedArrival)
}

// TestEtaHandler_ResolveBatch_InvalidBody verifies malformed JSON is rejected.
func TestEtaHandler_ResolveBatch_InvalidBody(t *testing.T) {
	app := newTestApp(&mockLocationProvider{}, &mockTripProvider{})

	req := httptest.NewRequest("POST", "/linehaul-trips/eta/batch", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

// TestEtaHandler_ResolveBatch_UpstreamError verifies the retryable error mapping.
func TestEtaHandler_ResolveBatch_UpstreamError(t *testing.T) {
	trips := &mockTripProvider{err: errors.New("tms down")}
	app := newTestApp(&mockLocationProvider{}, trips)

	req := httptest.NewRequest("POST", "/linehaul-trips/eta/batch", strings.NewReader(`{"tripIds":[1]}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)

	var errResp ErrorResponse
	err = json.NewDecoder(resp.Body).Decode(&errResp)
	require.NoError(t, err)
	assert.Contains(t, errResp.Message, "temporarily unavailable")
	assert.Equal(t, "test-ray-id", errResp.RayID)
}

// TestEtaHandler_GetVehicleLocation_Success verifies a fix is returned.
func TestEtaHandler_GetVehicleLocation_Success(t *testing.T) {
	locations := &mockLocationProvider{
		location: &domain.VehicleLocation{
			Latitude:  32.78,
			Longitude: -96.80,
			Timestamp: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
			Address:   "Dallas, TX",
		},
	}

	app := newTestApp(locations, &mockTripProvider{})

	req := httptest.NewRequest("GET", "/vehicle-location/42", nil)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result VehicleLocationResponse
	err = json.NewDecoder(resp.Body).Decode(&result)
	require.NoError(t, err)
	require.NotNil(t, result.Location)
	assert.Equal(t, 32.78, result.Location.Latitude)
	assert.Empty(t, result.Error)
}

// TestEtaHandler_GetVehicleLocation_BadID verifies non-integer ids are rejected.
func TestEtaHandler_GetVehicleLocation_BadID(t *testing.T) {
	app := newTestApp(&mockLocationProvider{}, &mockTripProvider{})

	req := httptest.NewRequest("GET", "/vehicle-location/tractor-42", nil)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

// TestEtaHandler_GetVehicleLocation_UpstreamError verifies lookup failures
// surface as a retryable error payload.
func TestEtaHandler_GetVehicleLocation_UpstreamError(t *testing.T) {
	locations := &mockLocationProvider{err: errors.New("telematics down")}
	app := newTestApp(locations, &mockTripProvider{})

	req := httptest.NewRequest("GET", "/vehicle-location/42", nil)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)

	var result VehicleLocationResponse
	err = json.NewDecoder(resp.Body).Decode(&result)
	require.NoError(t, err)
	assert.Nil(t, result.Location)
	assert.Contains(t, result.Error, "temporarily unavailable")
}
