package court

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Metafyzik/tennis-club/internal/logger"
	"github.com/Metafyzik/tennis-club/internal/metrics"

	"github.com/redis/go-redis/v9"
)

const cacheTTL = 5 * time.Minute

// cachedRepository is a read-through cache over single-court lookups.
// Mutations write through to the database and drop the cached entry, so a
// stale court is visible for at most one in-flight request.
type cachedRepository struct {
	inner Repository
	redis *redis.Client
}

func NewCachedRepository(inner Repository, redisClient *redis.Client) Repository {
	return &cachedRepository{
		inner: inner,
		redis: redisClient,
	}
}

func cacheKey(id int64) string {
	return fmt.Sprintf("court:%d", id)
}

func (r *cachedRepository) FindByID(ctx context.Context, id int64) (*CourtWithSurface, error) {
	data, err := r.redis.Get(ctx, cacheKey(id)).Bytes()
	if err == nil {
		var cw CourtWithSurface
		if err := json.Unmarshal(data, &cw); err == nil {
			metrics.RecordCourtCache("hit")
			return &cw, nil
		}
		// Unreadable entry, fall through to the database.
		r.redis.Del(ctx, cacheKey(id))
	}
	metrics.RecordCourtCache("miss")

	cw, err := r.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(cw); err == nil {
		if err := r.redis.Set(ctx, cacheKey(cw.ID), data, cacheTTL).Err(); err != nil {
			logger.Debugf("court cache set failed for id %d: %v", cw.ID, err)
		}
	}

	return cw, nil
}

func (r *cachedRepository) Create(ctx context.Context, name string, surfaceTypeID int64) (*CourtWithSurface, error) {
	return r.inner.Create(ctx, name, surfaceTypeID)
}

func (r *cachedRepository) FindAll(ctx context.Context) ([]CourtWithSurface, error) {
	return r.inner.FindAll(ctx)
}

func (r *cachedRepository) Update(ctx context.Context, id int64, name string, surfaceTypeID int64) (*CourtWithSurface, error) {
	cw, err := r.inner.Update(ctx, id, name, surfaceTypeID)
	if err != nil {
		return nil, err
	}

	r.redis.Del(ctx, cacheKey(id))
	return cw, nil
}

func (r *cachedRepository) SoftDelete(ctx context.Context, id int64) error {
	if err := r.inner.SoftDelete(ctx, id); err != nil {
		return err
	}

	r.redis.Del(ctx, cacheKey(id))
	return nil
}
