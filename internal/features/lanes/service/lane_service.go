// Package service contains the lane business logic.
package service

import (
	"context"

	"go.uber.org/zap"

	"linehaul-dispatch/internal/core/logger"
	"linehaul-dispatch/internal/features/lanes/domain"
	"linehaul-dispatch/internal/features/lanes/ports"
)

// LaneService validates and normalizes lanes before they reach persistence.
type LaneService struct {
	repo   ports.LaneRepository
	logger *zap.Logger
}

// NewLaneService creates a new lane service.
func NewLaneService(repo ports.LaneRepository) *LaneService {
	return &LaneService{
		repo:   repo,
		logger: logger.Get(),
	}
}

// Create validates the lane, drops unselected steps, renumbers the rest and
// persists the result.
func (s *LaneService) Create(ctx context.Context, lane *domain.Lane) error {
	if err := lane.Validate(); err != nil {
		return err
	}
	lane.Normalize()

	if err := s.repo.Create(ctx, lane); err != nil {
		return err
	}

	s.logger.Info("Lane created",
		zap.Int64("lane_id", lane.ID),
		zap.Int64("origin_terminal_id", lane.OriginTerminalID),
		zap.Int64("destination_terminal_id", lane.DestinationTerminalID),
		zap.Int("steps", len(lane.Steps)),
	)
	return nil
}

// Update validates and normalizes the lane, then replaces the stored version
// including its full step list.
func (s *LaneService) Update(ctx context.Context, lane *domain.Lane) error {
	if err := lane.Validate(); err != nil {
		return err
	}
	lane.Normalize()

	if err := s.repo.Update(ctx, lane); err != nil {
		return err
	}

	s.logger.Info("Lane updated",
		zap.Int64("lane_id", lane.ID),
		zap.Int("steps", len(lane.Steps)),
	)
	return nil
}

// GetByID returns a single lane or domain.ErrLaneNotFound.
func (s *LaneService) GetByID(ctx context.Context, id int64) (*domain.Lane, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns all lanes.
func (s *LaneService) List(ctx context.Context) ([]domain.Lane, error) {
	return s.repo.List(ctx)
}

// Delete removes a lane and its steps.
func (s *LaneService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Lane deleted", zap.Int64("lane_id", id))
	return nil
}
