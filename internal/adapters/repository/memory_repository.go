package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/comitanigiacomo/kanso-goals/internal/core/domain"
)

var (
	_ domain.HabitRepository  = (*InMemoryHabitRepository)(nil)
	_ domain.EffortRepository = (*InMemoryEffortRepository)(nil)
)

type InMemoryHabitRepository struct {
	store map[string]*domain.Habit
	order []string

	// efforts is notified on Delete to emulate ON DELETE CASCADE.
	efforts *InMemoryEffortRepository

	mu sync.RWMutex
}

func NewInMemoryHabitRepository(efforts *InMemoryEffortRepository) *InMemoryHabitRepository {
	return &InMemoryHabitRepository{
		store:   make(map[string]*domain.Habit),
		efforts: efforts,
	}
}

func (r *InMemoryHabitRepository) Create(ctx context.Context, habit *domain.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *habit
	r.store[habit.ID] = &copied
	r.order = append(r.order, habit.ID)
	return nil
}

func (r *InMemoryHabitRepository) GetByID(ctx context.Context, id, userID string) (*domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	habit, ok := r.store[id]
	if !ok || habit.UserID != userID {
		return nil, domain.ErrHabitNotFound
	}
	copied := *habit
	return &copied, nil
}

func (r *InMemoryHabitRepository) ListByUserID(ctx context.Context, userID string, filter domain.HabitFilter) ([]*domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	habits := []*domain.Habit{}
	for _, id := range r.order {
		h, ok := r.store[id]
		if !ok || h.UserID != userID {
			continue
		}
		if filter.Year != nil && h.Year != *filter.Year {
			continue
		}
		if filter.StartingWeekLte != nil && h.StartingWeek > *filter.StartingWeekLte {
			continue
		}
		copied := *h
		habits = append(habits, &copied)
	}

	sort.SliceStable(habits, func(i, j int) bool {
		return habits[i].StartingWeek < habits[j].StartingWeek
	})

	return habits, nil
}

func (r *InMemoryHabitRepository) SumExpectedEffort(ctx context.Context, userID string, startingWeekLte int) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := 0
	for _, h := range r.store {
		if h.UserID == userID && h.StartingWeek <= startingWeekLte {
			total += h.ExpectedEffort
		}
	}
	return total, nil
}

func (r *InMemoryHabitRepository) Update(ctx context.Context, habit *domain.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.store[habit.ID]
	if !ok || existing.UserID != habit.UserID {
		return domain.ErrHabitNotFound
	}

	copied := *habit
	r.store[habit.ID] = &copied
	return nil
}

func (r *InMemoryHabitRepository) Delete(ctx context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.store[id]
	if !ok || existing.UserID != userID {
		return domain.ErrHabitNotFound
	}

	delete(r.store, id)
	if r.efforts != nil {
		r.efforts.deleteByHabit(id)
	}
	return nil
}

type InMemoryEffortRepository struct {
	store map[string]*domain.Effort
	order []string

	mu sync.RWMutex
}

func NewInMemoryEffortRepository() *InMemoryEffortRepository {
	return &InMemoryEffortRepository{
		store: make(map[string]*domain.Effort),
	}
}

func (r *InMemoryEffortRepository) Create(ctx context.Context, effort *domain.Effort) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.store {
		if e.HabitID == effort.HabitID && e.Week == effort.Week && e.UserID == effort.UserID {
			return domain.ErrEffortConflict
		}
	}

	copied := *effort
	r.store[effort.ID] = &copied
	r.order = append(r.order, effort.ID)
	return nil
}

func (r *InMemoryEffortRepository) GetByID(ctx context.Context, id, userID string) (*domain.Effort, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.store[id]
	if !ok || e.UserID != userID {
		return nil, domain.ErrEffortNotFound
	}
	copied := *e
	return &copied, nil
}

func matchEffort(e *domain.Effort, userID string, f domain.EffortFilter) bool {
	if e.UserID != userID {
		return false
	}
	if f.HabitID != "" && e.HabitID != f.HabitID {
		return false
	}
	if f.Year != nil && e.Year != *f.Year {
		return false
	}
	if f.Week != nil && e.Week != *f.Week {
		return false
	}
	if f.WeekLte != nil && e.Week > *f.WeekLte {
		return false
	}
	return true
}

func (r *InMemoryEffortRepository) ListByUserID(ctx context.Context, userID string, filter domain.EffortFilter) ([]*domain.Effort, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	efforts := []*domain.Effort{}
	for _, id := range r.order {
		e, ok := r.store[id]
		if !ok || !matchEffort(e, userID, filter) {
			continue
		}
		copied := *e
		efforts = append(efforts, &copied)
	}
	return efforts, nil
}

func (r *InMemoryEffortRepository) SumLevel(ctx context.Context, userID string, filter domain.EffortFilter) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := 0
	for _, e := range r.store {
		if matchEffort(e, userID, filter) {
			total += e.Level
		}
	}
	return total, nil
}

func (r *InMemoryEffortRepository) Update(ctx context.Context, effort *domain.Effort) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.store[effort.ID]
	if !ok || existing.UserID != effort.UserID {
		return domain.ErrEffortNotFound
	}

	copied := *effort
	r.store[effort.ID] = &copied
	return nil
}

func (r *InMemoryEffortRepository) Delete(ctx context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.store[id]
	if !ok || existing.UserID != userID {
		return domain.ErrEffortNotFound
	}

	delete(r.store, id)
	return nil
}

func (r *InMemoryEffortRepository) deleteByHabit(habitID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, e := range r.store {
		if e.HabitID == habitID {
			delete(r.store, id)
		}
	}
}
