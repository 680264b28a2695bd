package handler

import (
	"strconv"

	"linehaul-dispatch/internal/features/eta/domain"
	"linehaul-dispatch/internal/features/eta/ports"
	"linehaul-dispatch/internal/features/eta/service"

	"github.com/gofiber/fiber/v2"
)

// EtaHandler handles HTTP requests for ETA resolution and vehicle locations.
type EtaHandler struct {
	etaService *service.EtaService
	locations  ports.LocationProvider
}

// NewEtaHandler creates a new EtaHandler.
func NewEtaHandler(etaService *service.EtaService, locations ports.LocationProvider) *EtaHandler {
	return &EtaHandler{
		etaService: etaService,
		locations:  locations,
	}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// BatchRequest is the batch ETA request body.
type BatchRequest struct {
	// TripIDs are the trips to resolve ETAs for.
	TripIDs []int64 `json:"tripIds"`
}

// BatchResponse maps trip ids to their resolved ETA. Trips with no result
// are absent from the mapping.
type BatchResponse struct {
	Etas map[int64]domain.Result `json:"etas"`
}

// VehicleLocationResponse wraps a vehicle location lookup.
type VehicleLocationResponse struct {
	// Location is the latest fix, absent when the vehicle has none.
	Location *domain.VehicleLocation `json:"location,omitempty"`
	// Error is a user-facing message when the lookup failed.
	Error string `json:"error,omitempty"`
}

// ResolveBatch godoc
// @Summary Resolve ETAs for a batch of trips
// @Description Resolves estimated arrival times for the given trips through the GPS-first/profile-fallback source chain. Trips with no result are absent from the mapping.
// @Tags eta
// @Accept json
// @Produce json
// @Param request body BatchRequest true "Trip ids"
// @Success 200 {object} BatchResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /linehaul-trips/eta/batch [post]
func (h *EtaHandler) ResolveBatch(c *fiber.Ctx) error {
	var req BatchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "invalid request body",
			RayID:   c.Locals("requestid").(string),
		})
	}

	etas, err := h.etaService.ResolveBatch(c.Context(), req.TripIDs)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{
			Message: "ETA resolution is temporarily unavailable, please retry",
			RayID:   c.Locals("requestid").(string),
		})
	}

	return c.JSON(BatchResponse{Etas: etas})
}

// GetVehicleLocation godoc
// @Summary Get the latest GPS fix for a vehicle
// @Description Fetches the latest vehicle location from the telematics provider. Lookup failures surface as a retryable error message.
// @Tags eta
// @Accept json
// @Produce json
// @Param vehicleId path int true "Vehicle ID"
// @Success 200 {object} VehicleLocationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} VehicleLocationResponse
// @Router /vehicle-location/{vehicleId} [get]
func (h *EtaHandler) GetVehicleLocation(c *fiber.Ctx) error {
	vehicleID, err := strconv.ParseInt(c.Params("vehicleId"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "vehicle id must be an integer",
			RayID:   c.Locals("requestid").(string),
		})
	}

	location, err := h.locations.VehicleLocation(c.Context(), vehicleID)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(VehicleLocationResponse{
			Error: "vehicle location is temporarily unavailable, please retry",
		})
	}

	return c.JSON(VehicleLocationResponse{Location: location})
}
