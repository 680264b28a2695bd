package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"linehaul-dispatch/internal/core/cache"
	"linehaul-dispatch/internal/core/logger"
	"linehaul-dispatch/internal/features/lanes/domain"
	"linehaul-dispatch/internal/features/lanes/ports"
)

const (
	laneListKey   = "lanes:all"
	laneKeyPrefix = "lanes:"
)

// CachedLaneRepository is a read-through cache decorator over a LaneRepository.
// Lanes are read-mostly reference data, so reads are served from cache and
// every mutation drops the affected keys.
type CachedLaneRepository struct {
	inner  ports.LaneRepository
	cache  cache.Cache
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedLaneRepository wraps inner with a cache using the given TTL.
func NewCachedLaneRepository(inner ports.LaneRepository, c cache.Cache, ttl time.Duration) *CachedLaneRepository {
	return &CachedLaneRepository{
		inner:  inner,
		cache:  c,
		ttl:    ttl,
		logger: logger.Get(),
	}
}

func laneKey(id int64) string {
	return fmt.Sprintf("%s%d", laneKeyPrefix, id)
}

// Create delegates to the inner repository and invalidates the list key.
func (r *CachedLaneRepository) Create(ctx context.Context, lane *domain.Lane) error {
	if err := r.inner.Create(ctx, lane); err != nil {
		return err
	}
	r.invalidate(ctx, laneListKey)
	return nil
}

// Update delegates to the inner repository and invalidates both keys.
func (r *CachedLaneRepository) Update(ctx context.Context, lane *domain.Lane) error {
	if err := r.inner.Update(ctx, lane); err != nil {
		return err
	}
	r.invalidate(ctx, laneListKey, laneKey(lane.ID))
	return nil
}

// GetByID serves from cache when possible, falling back to the inner
// repository. A cache failure never fails the read.
func (r *CachedLaneRepository) GetByID(ctx context.Context, id int64) (*domain.Lane, error) {
	key := laneKey(id)
	if data, err := r.cache.Get(ctx, key); err == nil {
		var lane domain.Lane
		if err := json.Unmarshal(data, &lane); err == nil {
			return &lane, nil
		}
		r.logger.Warn("Discarding unreadable cached lane", zap.String("key", key))
	}

	lane, err := r.inner.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.store(ctx, key, lane)
	return lane, nil
}

// List serves the full lane set from cache when possible.
func (r *CachedLaneRepository) List(ctx context.Context) ([]domain.Lane, error) {
	if data, err := r.cache.Get(ctx, laneListKey); err == nil {
		var lanes []domain.Lane
		if err := json.Unmarshal(data, &lanes); err == nil {
			return lanes, nil
		}
		r.logger.Warn("Discarding unreadable cached lane list", zap.String("key", laneListKey))
	}

	lanes, err := r.inner.List(ctx)
	if err != nil {
		return nil, err
	}
	r.store(ctx, laneListKey, lanes)
	return lanes, nil
}

// Delete delegates to the inner repository and invalidates both keys.
func (r *CachedLaneRepository) Delete(ctx context.Context, id int64) error {
	if err := r.inner.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx, laneListKey, laneKey(id))
	return nil
}

func (r *CachedLaneRepository) store(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := r.cache.Set(ctx, key, data, r.ttl); err != nil {
		r.logger.Warn("Failed to cache lane data", zap.String("key", key), zap.Error(err))
	}
}

func (r *CachedLaneRepository) invalidate(ctx context.Context, keys ...string) {
	for _, key := range keys {
		if err := r.cache.Delete(ctx, key); err != nil {
			r.logger.Warn("Failed to invalidate lane cache", zap.String("key", key), zap.Error(err))
		}
	}
}
