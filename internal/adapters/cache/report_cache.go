package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-goals/internal/core/domain"
	"github.com/comitanigiacomo/kanso-goals/internal/core/services"
)

var _ services.Analytics = (*CachedAnalytics)(nil)

// CachedAnalytics memoizes computed reports in Redis under
// reports:{user}:{generation}:*. Purge bumps the user's generation, so a
// report computed before a write and stored after the purge lands under a
// key that is never read again. Redis failures degrade to computing the report.
type CachedAnalytics struct {
	next  services.Analytics
	cache *redis.Client
	ttl   time.Duration
	log   *zap.Logger
}

func NewCachedAnalytics(next services.Analytics, cache *redis.Client, ttl time.Duration, log *zap.Logger) *CachedAnalytics {
	if log == nil {
		log = zap.NewNop()
	}
	return &CachedAnalytics{
		next:  next,
		cache: cache,
		ttl:   ttl,
		log:   log.Named("report_cache"),
	}
}

func reportPrefix(userID string) string {
	return fmt.Sprintf("reports:%s:", userID)
}

// generationKey lives outside reportPrefix so prefix deletes never reset it.
func generationKey(userID string) string {
	return fmt.Sprintf("reportgen:%s", userID)
}

// generation reads the user's current report generation. ok is false when
// Redis cannot be read and the report must bypass the cache.
func (c *CachedAnalytics) generation(ctx context.Context, userID string) (int64, bool) {
	gen, err := c.cache.Get(ctx, generationKey(userID)).Int64()
	switch {
	case err == nil:
		return gen, true
	case errors.Is(err, redis.Nil):
		return 0, true
	default:
		c.log.Warn("redis generation read error", zap.String("user_id", userID), zap.Error(err))
		return 0, false
	}
}

func cached[T any](ctx context.Context, c *CachedAnalytics, userID, name string, load func() (T, error)) (T, error) {
	// The generation must be read before load runs.
	gen, ok := c.generation(ctx, userID)
	if !ok {
		return load()
	}
	key := fmt.Sprintf("%s%d:%s", reportPrefix(userID), gen, name)

	val, err := c.cache.Get(ctx, key).Bytes()
	if err == nil {
		var out T
		if err := json.Unmarshal(val, &out); err == nil {
			return out, nil
		}
		c.log.Warn("corrupted report, cleaning up key", zap.String("key", key))
		c.cache.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		c.log.Warn("redis read error", zap.String("key", key), zap.Error(err))
	}

	out, err := load()
	if err != nil {
		return out, err
	}

	if data, err := json.Marshal(out); err == nil {
		if setErr := c.cache.Set(ctx, key, data, c.ttl).Err(); setErr != nil {
			c.log.Warn("redis set error", zap.String("key", key), zap.Error(setErr))
		}
	}

	return out, nil
}

func (c *CachedAnalytics) CompletionReport(ctx context.Context, userID string, week int) (*domain.CompletionReport, error) {
	return cached(ctx, c, userID, fmt.Sprintf("completion:%d", week), func() (*domain.CompletionReport, error) {
		return c.next.CompletionReport(ctx, userID, week)
	})
}

func (c *CachedAnalytics) RecentCompletions(ctx context.Context, userID string, currentWeek int) ([]domain.WeeklyCompletion, error) {
	return cached(ctx, c, userID, fmt.Sprintf("recent:%d", currentWeek), func() ([]domain.WeeklyCompletion, error) {
		return c.next.RecentCompletions(ctx, userID, currentWeek)
	})
}

func (c *CachedAnalytics) HabitPerformance(ctx context.Context, userID, habitID string) (*domain.HabitPerformanceReport, error) {
	return cached(ctx, c, userID, "habit:"+habitID, func() (*domain.HabitPerformanceReport, error) {
		return c.next.HabitPerformance(ctx, userID, habitID)
	})
}

func (c *CachedAnalytics) YearlyPerformance(ctx context.Context, userID string, currentYear, currentWeek int) ([]domain.HabitContribution, error) {
	return cached(ctx, c, userID, fmt.Sprintf("yearly:%d:%d", currentYear, currentWeek), func() ([]domain.HabitContribution, error) {
		return c.next.YearlyPerformance(ctx, userID, currentYear, currentWeek)
	})
}

func (c *CachedAnalytics) GoalWeeklyStatistics(ctx context.Context, userID string, week int) (*domain.GoalWeeklyStatistics, error) {
	return cached(ctx, c, userID, fmt.Sprintf("goals:%d", week), func() (*domain.GoalWeeklyStatistics, error) {
		return c.next.GoalWeeklyStatistics(ctx, userID, week)
	})
}

// Purge retires every cached report of userID. Bumping the generation is
// what invalidates; deleting the old keys only reclaims memory.
func (c *CachedAnalytics) Purge(ctx context.Context, userID string) error {
	if err := c.cache.Incr(ctx, generationKey(userID)).Err(); err != nil {
		return fmt.Errorf("purge reports for %s: %w", userID, err)
	}

	n, err := DeleteByPrefix(ctx, c.cache, reportPrefix(userID))
	if err != nil {
		c.log.Warn("stale report cleanup failed", zap.String("user_id", userID), zap.Error(err))
		return nil
	}
	c.log.Debug("reports purged", zap.String("user_id", userID), zap.Int("keys", n))
	return nil
}
