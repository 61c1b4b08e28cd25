package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gauravcr7rm/equal-weighted-stock-index/config"
	"github.com/gauravcr7rm/equal-weighted-stock-index/internal/model"
	"github.com/gauravcr7rm/equal-weighted-stock-index/utils"
	"github.com/redis/go-redis/v9"
)

var ErrCacheMiss = errors.New("cache miss")

const dateLayout = "2006-01-02"

func performanceKey(start, end time.Time) string {
	return fmt.Sprintf("index_performance:%s:%s", start.Format(dateLayout), end.Format(dateLayout))
}

func compositionKey(date time.Time) string {
	return fmt.Sprintf("index_composition:%s", date.Format(dateLayout))
}

func changesKey(start, end time.Time) string {
	return fmt.Sprintf("composition_changes:%s:%s", start.Format(dateLayout), end.Format(dateLayout))
}

type RedisCache struct {
	redis *redis.Client
	cfg   *config.Config
}

func NewRedisCache(redisClient *redis.Client, cfg *config.Config) *RedisCache {
	return &RedisCache{redis: redisClient, cfg: cfg}
}

func (r *RedisCache) SetPerformance(ctx context.Context, start, end time.Time, entries []model.PerformanceEntry) error {
	return r.setJSON(ctx, performanceKey(start, end), entries)
}

func (r *RedisCache) GetPerformance(ctx context.Context, start, end time.Time) ([]model.PerformanceEntry, error) {
	var entries []model.PerformanceEntry
	if err := r.getJSON(ctx, performanceKey(start, end), &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *RedisCache) SetComposition(ctx context.Context, date time.Time, stocks []model.CompositionStock) error {
	return r.setJSON(ctx, compositionKey(date), stocks)
}

func (r *RedisCache) GetComposition(ctx context.Context, date time.Time) ([]model.CompositionStock, error) {
	var stocks []model.CompositionStock
	if err := r.getJSON(ctx, compositionKey(date), &stocks); err != nil {
		return nil, err
	}
	return stocks, nil
}

func (r *RedisCache) SetChanges(ctx context.Context, start, end time.Time, changes []model.CompositionChange) error {
	return r.setJSON(ctx, changesKey(start, end), changes)
}

func (r *RedisCache) GetChanges(ctx context.Context, start, end time.Time) ([]model.CompositionChange, error) {
	var changes []model.CompositionChange
	if err := r.getJSON(ctx, changesKey(start, end), &changes); err != nil {
		return nil, err
	}
	return changes, nil
}

// InvalidateIndex drops the cached performance and changes for the built
// range plus the composition of every calendar day inside it. Cached entries
// for other ranges expire by TTL.
func (r *RedisCache) InvalidateIndex(ctx context.Context, start, end time.Time) error {
	rqID := utils.GetRequestIDFromCtx(ctx)
	slog.Debug("InvalidateIndex start", slog.String("rqID", rqID))

	keys := []string{
		performanceKey(start, end),
		changesKey(start, end),
	}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		keys = append(keys, compositionKey(d))
	}

	err := r.redis.Del(ctx, keys...).Err()
	if err != nil {
		slog.Error("failed on redis.Del", slog.String("rqID", rqID), slog.String("err", err.Error()))
		return err
	}

	slog.Debug("InvalidateIndex completed", slog.String("rqID", rqID), slog.Int("keys", len(keys)))

	return nil
}

func (r *RedisCache) setJSON(ctx context.Context, key string, value any) error {
	rqID := utils.GetRequestIDFromCtx(ctx)
	slog.Debug("cache set start", slog.String("rqID", rqID), slog.String("key", key))

	valueJson, err := json.Marshal(value)
	if err != nil {
		slog.Error(
			"can't marshal value for cache",
			slog.String("rqID", rqID),
			slog.String("err", err.Error()),
			slog.String("key", key),
		)
		return errors.New("can't marshal value")
	}

	err = r.redis.Set(ctx, key, valueJson, r.cfg.Cache.Expiration).Err()
	if err != nil {
		slog.Error("failed on redis.Set", slog.String("rqID", rqID), slog.String("err", err.Error()), slog.String("key", key))
		return err
	}

	slog.Debug("cache set completed", slog.String("rqID", rqID), slog.String("key", key))

	return nil
}

func (r *RedisCache) getJSON(ctx context.Context, key string, dest any) error {
	rqID := utils.GetRequestIDFromCtx(ctx)
	slog.Debug("cache get start", slog.String("rqID", rqID), slog.String("key", key))

	res, err := r.redis.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			slog.Debug("cache miss", slog.String("rqID", rqID), slog.String("key", key))
			return ErrCacheMiss
		}
		slog.Error("failed on redis.Get", slog.String("rqID", rqID), slog.String("err", err.Error()), slog.String("key", key))
		return err
	}

	err = json.Unmarshal([]byte(res), dest)
	if err != nil {
		slog.Error(
			"can't unmarshal cached value",
			slog.String("rqID", rqID),
			slog.String("err", err.Error()),
			slog.String("key", key),
		)
		return errors.New("can't unmarshal value")
	}

	slog.Debug("cache get completed", slog.String("rqID", rqID), slog.String("key", key))

	return nil
}
