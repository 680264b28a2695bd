package handler

import (
	"strconv"

	"linehaul-dispatch/internal/features/dispatch/domain"
	"linehaul-dispatch/internal/features/dispatch/service"

	"github.com/gofiber/fiber/v2"
)

// DispatchHandler handles HTTP requests for the dispatch board.
type DispatchHandler struct {
	dispatchService *service.DispatchService
}

// NewDispatchHandler creates a new DispatchHandler.
func NewDispatchHandler(dispatchService *service.DispatchService) *DispatchHandler {
	return &DispatchHandler{
		dispatchService: dispatchService,
	}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// GetBoard godoc
// @Summary Get the dispatch board
// @Description Derives the linehaul dispatch board (lateness, schedule resolution, load factors) from the latest TMS snapshot
// @Tags dispatch
// @Accept json
// @Produce json
// @Param status query string false "Trip status filter"
// @Param startDate query string false "Start date (YYYY-MM-DD)"
// @Param endDate query string false "End date (YYYY-MM-DD)"
// @Param limit query int false "Maximum number of trips"
// @Success 200 {object} service.Board
// @Failure 502 {object} ErrorResponse
// @Router /dispatch/board [get]
func (h *DispatchHandler) GetBoard(c *fiber.Ctx) error {
	filter := domain.TripFilter{
		Status:    c.Query("status"),
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
	}
	if limit := c.Query("limit"); limit != "" {
		if n, err := strconv.Atoi(limit); err == nil {
			filter.Limit = n
		}
	}

	board, err := h.dispatchService.Board(c.Context(), filter)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{
			Message: "dispatch data is temporarily unavailable, please retry",
			RayID:   c.Locals("requestid").(string),
		})
	}

	return c.JSON(board)
}
