package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-goals/internal/adapters/cache"
	"github.com/comitanigiacomo/kanso-goals/internal/core/domain"
)

var _ domain.HabitRepository = (*CachedHabitRepository)(nil)

const habitListTTL = 30 * time.Minute

// CachedHabitRepository keeps each user's filtered habit lists in Redis and
// drops them on every write.
type CachedHabitRepository struct {
	next  domain.HabitRepository
	cache *redis.Client
	log   *zap.Logger
}

func NewCachedHabitRepository(next domain.HabitRepository, rdb *redis.Client, log *zap.Logger) *CachedHabitRepository {
	if log == nil {
		log = zap.NewNop()
	}
	return &CachedHabitRepository{
		next:  next,
		cache: rdb,
		log:   log.Named("habit_cache"),
	}
}

func (r *CachedHabitRepository) userPrefix(userID string) string {
	return fmt.Sprintf("habits:%s:", userID)
}

func (r *CachedHabitRepository) cacheKey(userID string, f domain.HabitFilter) string {
	year, lte := "*", "*"
	if f.Year != nil {
		year = fmt.Sprint(*f.Year)
	}
	if f.StartingWeekLte != nil {
		lte = fmt.Sprint(*f.StartingWeekLte)
	}
	return fmt.Sprintf("%sy=%s:s<=%s", r.userPrefix(userID), year, lte)
}

func (r *CachedHabitRepository) invalidate(ctx context.Context, userID string) {
	if _, err := cache.DeleteByPrefix(ctx, r.cache, r.userPrefix(userID)); err != nil {
		r.log.Warn("failed to invalidate habit lists", zap.String("user_id", userID), zap.Error(err))
	}
}

func (r *CachedHabitRepository) ListByUserID(ctx context.Context, userID string, filter domain.HabitFilter) ([]*domain.Habit, error) {
	key := r.cacheKey(userID, filter)

	val, err := r.cache.Get(ctx, key).Result()
	if err == nil {
		var habits []*domain.Habit
		if err := json.Unmarshal([]byte(val), &habits); err == nil {
			return habits, nil
		}

		r.log.Warn("corrupted habit list, cleaning up key", zap.String("user_id", userID))
		r.cache.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		r.log.Warn("redis read error", zap.Error(err))
	}

	habits, err := r.next.ListByUserID(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(habits); err == nil {
		if setErr := r.cache.Set(ctx, key, data, habitListTTL).Err(); setErr != nil {
			r.log.Warn("redis set error", zap.Error(setErr))
		}
	}

	return habits, nil
}

func (r *CachedHabitRepository) GetByID(ctx context.Context, id, userID string) (*domain.Habit, error) {
	return r.next.GetByID(ctx, id, userID)
}

func (r *CachedHabitRepository) SumExpectedEffort(ctx context.Context, userID string, startingWeekLte int) (int, error) {
	return r.next.SumExpectedEffort(ctx, userID, startingWeekLte)
}

func (r *CachedHabitRepository) Create(ctx context.Context, habit *domain.Habit) error {
	if err := r.next.Create(ctx, habit); err != nil {
		return err
	}
	r.invalidate(ctx, habit.UserID)
	return nil
}

func (r *CachedHabitRepository) Update(ctx context.Context, habit *domain.Habit) error {
	if err := r.next.Update(ctx, habit); err != nil {
		return err
	}
	r.invalidate(ctx, habit.UserID)
	return nil
}

func (r *CachedHabitRepository) Delete(ctx context.Context, id, userID string) error {
	if err := r.next.Delete(ctx, id, userID); err != nil {
		return err
	}
	r.invalidate(ctx, userID)
	return nil
}
