package redis

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"casaraiz-backend/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// CachedAvailabilityRepo fronts the availability readstore for public
// listings. The TTL is short and the cache is advisory only: confirmation
// paths never read it, so a stale entry can overstate remaining units but
// never oversell.
type CachedAvailabilityRepo struct {
	rdb  *redis.Client
	next queries.AvailabilityViewRepo
	ttl  time.Duration
	sf   singleflight.Group
}

func NewCachedAvailabilityRepo(rdb *redis.Client, next queries.AvailabilityViewRepo, ttl time.Duration) *CachedAvailabilityRepo {
	return &CachedAvailabilityRepo{rdb: rdb, next: next, ttl: ttl}
}

func (c *CachedAvailabilityRepo) FindByOfferingID(ctx context.Context, offeringID uuid.UUID) (*queries.AvailabilityView, error) {
	key := keyOfferingAvailability(offeringID)
	return getOrLoad(ctx, c, key, func(ctx context.Context) (*queries.AvailabilityView, error) {
		return c.next.FindByOfferingID(ctx, offeringID)
	})
}

func (c *CachedAvailabilityRepo) FindByHouseID(ctx context.Context, houseID uuid.UUID) ([]*queries.AvailabilityView, error) {
	key := keyHouseAvailability(houseID)
	return getOrLoad(ctx, c, key, func(ctx context.Context) ([]*queries.AvailabilityView, error) {
		return c.next.FindByHouseID(ctx, houseID)
	})
}

// Invalidate drops both the offering entry and its house listing.
func (c *CachedAvailabilityRepo) Invalidate(ctx context.Context, offeringID, houseID uuid.UUID) {
	if err := c.rdb.Del(ctx, keyOfferingAvailability(offeringID), keyHouseAvailability(houseID)).Err(); err != nil {
		slog.Warn("availability cache invalidation failed", "offering_id", offeringID, "error", err.Error())
	}
}

// Cache failures degrade to the underlying store; singleflight keeps a cold
// key from stampeding the database.
func getOrLoad[T any](ctx context.Context, c *CachedAvailabilityRepo, key string, loader func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	if s, err := c.rdb.Get(ctx, key).Result(); err == nil {
		var out T
		if err := json.Unmarshal([]byte(s), &out); err == nil {
			return out, nil
		}
	} else if err != redis.Nil {
		slog.Warn("availability cache read failed", "key", key, "error", err.Error())
	}

	vAny, err, _ := c.sf.Do(key, func() (any, error) {
		v, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		if b, marshalErr := json.Marshal(v); marshalErr == nil {
			if setErr := c.rdb.Set(ctx, key, b, c.ttl).Err(); setErr != nil {
				slog.Warn("availability cache write failed", "key", key, "error", setErr.Error())
			}
		}
		return v, nil
	})
	if err != nil {
		return zero, err
	}

	v, ok := vAny.(T)
	if !ok {
		return loader(ctx)
	}
	return v, nil
}
