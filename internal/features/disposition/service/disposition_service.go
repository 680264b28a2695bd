// Package service orchestrates the bulk disposition workflow.
package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"linehaul-dispatch/internal/core/logger"
	"linehaul-dispatch/internal/features/disposition/domain"
	"linehaul-dispatch/internal/features/disposition/ports"
)

// ValidationError carries the full set of precondition violations for a
// rejected request.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %s", domain.ErrInvalidRequest, strings.Join(e.Violations, "; "))
}

// Unwrap lets callers match with errors.Is(err, domain.ErrInvalidRequest).
func (e *ValidationError) Unwrap() error {
	return domain.ErrInvalidRequest
}

// DispositionService validates bulk requests and submits them to the TMS.
type DispositionService struct {
	submitter ports.DispositionSubmitter
	logger    *zap.Logger
}

// NewDispositionService creates a new disposition service.
func NewDispositionService(submitter ports.DispositionSubmitter) *DispositionService {
	return &DispositionService{
		submitter: submitter,
		logger:    logger.Get(),
	}
}

// Execute validates the request, expands it into one command per loadsheet
// and submits the set as a single batch. Any validation violation blocks
// submission entirely. The TMS result is returned as-is: failed items are a
// partial success the caller must surface, not an error.
func (s *DispositionService) Execute(ctx context.Context, req domain.BulkRequest) (*domain.BulkResponse, error) {
	if violations := req.Validate(); len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}

	resp, err := s.submitter.SubmitBulk(ctx, req.Commands())
	if err != nil {
		return nil, fmt.Errorf("failed to submit dispositions: %w", err)
	}

	if resp.Failed > 0 {
		s.logger.Warn("Bulk disposition partially failed",
			zap.Int("processed", resp.Processed),
			zap.Int("failed", resp.Failed),
			zap.String("late_reason", string(req.LateReason)),
		)
	} else {
		s.logger.Info("Bulk disposition completed",
			zap.Int("processed", resp.Processed),
			zap.String("late_reason", string(req.LateReason)),
		)
	}

	return resp, nil
}
