// Package handler exposes the bulk disposition endpoint.
package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"linehaul-dispatch/internal/features/disposition/domain"
	"linehaul-dispatch/internal/features/disposition/service"
)

// DispositionHandler handles HTTP requests for late-departure dispositions.
type DispositionHandler struct {
	dispositionService *service.DispositionService
}

// NewDispositionHandler creates a new disposition handler.
func NewDispositionHandler(dispositionService *service.DispositionService) *DispositionHandler {
	return &DispositionHandler{dispositionService: dispositionService}
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// Violations itemizes precondition failures, when present.
	Violations []string `json:"violations,omitempty"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// SubmitBulk godoc
// @Summary Submit a bulk late-departure disposition
// @Description Applies a shared late reason, service-failure flag and new departure date to every selected loadsheet. Items succeed or fail independently; failed > 0 is a partial success.
// @Tags dispositions
// @Accept json
// @Produce json
// @Param request body domain.BulkRequest true "Disposition request"
// @Success 200 {object} domain.BulkResponse
// @Failure 422 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /dispositions/bulk [post]
func (h *DispositionHandler) SubmitBulk(c *fiber.Ctx) error {
	var req domain.BulkRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "invalid request body",
			RayID:   c.Locals("requestid").(string),
		})
	}

	resp, err := h.dispositionService.Execute(c.Context(), req)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{
				Message:    "disposition request is incomplete",
				Violations: verr.Violations,
				RayID:      c.Locals("requestid").(string),
			})
		}
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{
			Message: "disposition submission is temporarily unavailable, please retry",
			RayID:   c.Locals("requestid").(string),
		})
	}

	return c.JSON(resp)
}
