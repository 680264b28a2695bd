// Package ports defines the persistence contract for the lanes feature.
package ports

import (
	"context"

	"linehaul-dispatch/internal/features/lanes/domain"
)

// LaneRepository persists lane aggregates. Updates replace the full step
// list, and deletes cascade to the lane's steps.
type LaneRepository interface {
	Create(ctx context.Context, lane *domain.Lane) error
	Update(ctx context.Context, lane *domain.Lane) error
	// GetByID returns domain.ErrLaneNotFound when the id does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Lane, error)
	List(ctx context.Context) ([]domain.Lane, error)
	Delete(ctx context.Context, id int64) error
}
