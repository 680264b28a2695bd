// Package handler exposes the lane CRUD endpoints.
package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"linehaul-dispatch/internal/features/lanes/domain"
	"linehaul-dispatch/internal/features/lanes/service"
)

// LaneHandler handles HTTP requests for linehaul lanes.
type LaneHandler struct {
	laneService *service.LaneService
}

// NewLaneHandler creates a new lane handler.
func NewLaneHandler(laneService *service.LaneService) *LaneHandler {
	return &LaneHandler{laneService: laneService}
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// laneRequest is the lane create/update body. Sequence values are accepted
// but overwritten at save time.
type laneRequest struct {
	OriginTerminalID      int64             `json:"originTerminalId"`
	DestinationTerminalID int64             `json:"destinationTerminalId"`
	Active                bool              `json:"active"`
	Steps                 []domain.LaneStep `json:"steps"`
}

func (r laneRequest) toDomain(id int64) *domain.Lane {
	steps := r.Steps
	if steps == nil {
		steps = []domain.LaneStep{}
	}
	return &domain.Lane{
		ID:                    id,
		OriginTerminalID:      r.OriginTerminalID,
		DestinationTerminalID: r.DestinationTerminalID,
		Active:                r.Active,
		Steps:                 steps,
	}
}

// List godoc
// @Summary List linehaul lanes
// @Description Returns every lane with its ordered routing steps
// @Tags lanes
// @Produce json
// @Success 200 {array} domain.Lane
// @Failure 500 {object} ErrorResponse
// @Router /linehaul-lanes [get]
func (h *LaneHandler) List(c *fiber.Ctx) error {
	lanes, err := h.laneService.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Message: "failed to load lanes",
			RayID:   c.Locals("requestid").(string),
		})
	}
	return c.JSON(lanes)
}

// Get godoc
// @Summary Get a linehaul lane
// @Tags lanes
// @Produce json
// @Param id path int true "Lane ID"
// @Success 200 {object} domain.Lane
// @Failure 404 {object} ErrorResponse
// @Router /linehaul-lanes/{id} [get]
func (h *LaneHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return badID(c)
	}

	lane, err := h.laneService.GetByID(c.Context(), id)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(lane)
}

// Create godoc
// @Summary Create a linehaul lane
// @Description Steps with an unselected terminal are dropped; sequences are renumbered 1..N
// @Tags lanes
// @Accept json
// @Produce json
// @Param lane body laneRequest true "Lane"
// @Success 201 {object} domain.Lane
// @Failure 422 {object} ErrorResponse
// @Router /linehaul-lanes [post]
func (h *LaneHandler) Create(c *fiber.Ctx) error {
	var req laneRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "invalid request body",
			RayID:   c.Locals("requestid").(string),
		})
	}

	lane := req.toDomain(0)
	if err := h.laneService.Create(c.Context(), lane); err != nil {
		return h.mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(lane)
}

// Update godoc
// @Summary Update a linehaul lane
// @Description Replaces the lane, including its full step list
// @Tags lanes
// @Accept json
// @Produce json
// @Param id path int true "Lane ID"
// @Param lane body laneRequest true "Lane"
// @Success 200 {object} domain.Lane
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /linehaul-lanes/{id} [put]
func (h *LaneHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return badID(c)
	}

	var req laneRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "invalid request body",
			RayID:   c.Locals("requestid").(string),
		})
	}

	lane := req.toDomain(id)
	if err := h.laneService.Update(c.Context(), lane); err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(lane)
}

// Delete godoc
// @Summary Delete a linehaul lane
// @Description Removes the lane; its steps go with it
// @Tags lanes
// @Param id path int true "Lane ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /linehaul-lanes/{id} [delete]
func (h *LaneHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return badID(c)
	}

	if err := h.laneService.Delete(c.Context(), id); err != nil {
		return h.mapError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *LaneHandler) mapError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrLaneNotFound):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Message: "lane not found",
			RayID:   c.Locals("requestid").(string),
		})
	case errors.Is(err, domain.ErrOriginTerminalRequired),
		errors.Is(err, domain.ErrDestinationTerminalRequired),
		errors.Is(err, domain.ErrInvalidLane):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{
			Message: err.Error(),
			RayID:   c.Locals("requestid").(string),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Message: "failed to save lane",
			RayID:   c.Locals("requestid").(string),
		})
	}
}

func badID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Message: "lane id must be an integer",
		RayID:   c.Locals("requestid").(string),
	})
}
