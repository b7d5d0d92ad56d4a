package services_test

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/comitanigiacomo/kanso-goals/internal/core/domain"
)

type MockHabitRepo struct {
	mock.Mock
}

func (m *MockHabitRepo) Create(ctx context.Context, h *domain.Habit) error {
	return m.Called(ctx, h).Error(0)
}

func (m *MockHabitRepo) GetByID(ctx context.Context, id, userID string) (*domain.Habit, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Habit), args.Error(1)
}

func (m *MockHabitRepo) ListByUserID(ctx context.Context, userID string, f domain.HabitFilter) ([]*domain.Habit, error) {
	args := m.Called(ctx, userID, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Habit), args.Error(1)
}

func (m *MockHabitRepo) SumExpectedEffort(ctx context.Context, userID string, startingWeekLte int) (int, error) {
	args := m.Called(ctx, userID, startingWeekLte)
	return args.Int(0), args.Error(1)
}

func (m *MockHabitRepo) Update(ctx context.Context, h *domain.Habit) error {
	return m.Called(ctx, h).Error(0)
}

func (m *MockHabitRepo) Delete(ctx context.Context, id, userID string) error {
	return m.Called(ctx, id, userID).Error(0)
}

type MockEffortRepo struct {
	mock.Mock
}

func (m *MockEffortRepo) Create(ctx context.Context, e *domain.Effort) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockEffortRepo) GetByID(ctx context.Context, id, userID string) (*domain.Effort, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Effort), args.Error(1)
}

func (m *MockEffortRepo) ListByUserID(ctx context.Context, userID string, f domain.EffortFilter) ([]*domain.Effort, error) {
	args := m.Called(ctx, userID, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Effort), args.Error(1)
}

func (m *MockEffortRepo) SumLevel(ctx context.Context, userID string, f domain.EffortFilter) (int, error) {
	args := m.Called(ctx, userID, f)
	return args.Int(0), args.Error(1)
}

func (m *MockEffortRepo) Update(ctx context.Context, e *domain.Effort) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockEffortRepo) Delete(ctx context.Context, id, userID string) error {
	return m.Called(ctx, id, userID).Error(0)
}

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

// recordingInvalidator collects the users whose reports were invalidated.
type recordingInvalidator struct {
	mu    sync.Mutex
	users []string
}

func (r *recordingInvalidator) Invalidate(ctx context.Context, userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = append(r.users, userID)
}

func (r *recordingInvalidator) Users() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.users...)
}

type MockGoalRepo struct {
	mock.Mock
}

func (m *MockGoalRepo) Create(ctx context.Context, g *domain.Goal) error {
	return m.Called(ctx, g).Error(0)
}

func (m *MockGoalRepo) GetByID(ctx context.Context, id, userID string) (*domain.Goal, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Goal), args.Error(1)
}

func (m *MockGoalRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.Goal, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Goal), args.Error(1)
}

func (m *MockGoalRepo) Update(ctx context.Context, g *domain.Goal) error {
	return m.Called(ctx, g).Error(0)
}

func (m *MockGoalRepo) Delete(ctx context.Context, id, userID string) error {
	return m.Called(ctx, id, userID).Error(0)
}

type MockObjectiveRepo struct {
	mock.Mock
}

func (m *MockObjectiveRepo) Create(ctx context.Context, o *domain.Objective) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockObjectiveRepo) GetByID(ctx context.Context, id, userID string) (*domain.Objective, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Objective), args.Error(1)
}

func (m *MockObjectiveRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.Objective, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Objective), args.Error(1)
}

func (m *MockObjectiveRepo) Update(ctx context.Context, o *domain.Objective) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockObjectiveRepo) Delete(ctx context.Context, id, userID string) error {
	return m.Called(ctx, id, userID).Error(0)
}

type MockSupportRepo struct {
	mock.Mock
}

func (m *MockSupportRepo) CreateTicket(ctx context.Context, t *domain.Ticket) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockSupportRepo) GetTicket(ctx context.Context, id string) (*domain.Ticket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ticket), args.Error(1)
}

func (m *MockSupportRepo) ListTickets(ctx context.Context) ([]*domain.Ticket, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Ticket), args.Error(1)
}

func (m *MockSupportRepo) UpdateTicket(ctx context.Context, t *domain.Ticket) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockSupportRepo) CreateAnnouncement(ctx context.Context, a *domain.Announcement) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockSupportRepo) ListAnnouncements(ctx context.Context) ([]*domain.Announcement, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Announcement), args.Error(1)
}

func (m *MockSupportRepo) CreateFeature(ctx context.Context, f *domain.Feature) error {
	return m.Called(ctx, f).Error(0)
}

func (m *MockSupportRepo) ListFeatures(ctx context.Context) ([]*domain.Feature, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Feature), args.Error(1)
}
