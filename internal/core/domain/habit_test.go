package domain_test

import (
	"strings"
	"testing"
	"time"

	"github.com/comitanigiacomo/kanso-goals/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validParams() domain.HabitParams {
	return domain.HabitParams{
		Name:           "Run",
		StartingWeek:   3,
		ExpectedEffort: 10,
		Year:           2024,
	}
}

func TestNewHabit(t *testing.T) {
	t.Run("Success: Creates valid habit with defaults", func(t *testing.T) {
		h, err := domain.NewHabit("u1", validParams())

		require.NoError(t, err)
		assert.NotEmpty(t, h.ID)
		assert.Equal(t, "u1", h.UserID)
		assert.Equal(t, "Run", h.Name)
		assert.Equal(t, domain.DefaultHabitColor, h.Color)
		assert.Nil(t, h.EndingWeek)
		assert.WithinDuration(t, time.Now().UTC(), h.CreatedAt, 2*time.Second)
	})

	t.Run("Success: Zero expected effort is allowed", func(t *testing.T) {
		p := validParams()
		p.ExpectedEffort = 0

		h, err := domain.NewHabit("u1", p)

		require.NoError(t, err)
		assert.Equal(t, 0, h.ExpectedEffort)
	})

	t.Run("Error: Invalid UserID", func(t *testing.T) {
		_, err := domain.NewHabit("", validParams())
		assert.ErrorIs(t, err, domain.ErrHabitInvalidUserID)
	})
}

func TestHabit_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *domain.HabitParams)
		wantErr error
	}{
		{"Empty name", func(p *domain.HabitParams) { p.Name = "   " }, domain.ErrHabitNameEmpty},
		{"Name too long", func(p *domain.HabitParams) { p.Name = strings.Repeat("a", 256) }, domain.ErrHabitNameTooLong},
		{"Week zero", func(p *domain.HabitParams) { p.StartingWeek = 0 }, domain.ErrInvalidWeek},
		{"Week 54", func(p *domain.HabitParams) { p.StartingWeek = 54 }, domain.ErrInvalidWeek},
		{"Ending before starting", func(p *domain.HabitParams) { p.EndingWeek = domain.IntPtr(2) }, domain.ErrInvalidEndingWeek},
		{"Negative effort", func(p *domain.HabitParams) { p.ExpectedEffort = -1 }, domain.ErrInvalidExpectedEffort},
		{"Missing year", func(p *domain.HabitParams) { p.Year = 0 }, domain.ErrInvalidYear},
		{"Ending equal to starting", func(p *domain.HabitParams) { p.EndingWeek = domain.IntPtr(3) }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams()
			tt.mutate(&p)

			_, err := domain.NewHabit("u1", p)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestHabit_Update(t *testing.T) {
	h, err := domain.NewHabit("u1", validParams())
	require.NoError(t, err)
	h.Color = "blue"

	t.Run("Keeps color when not provided", func(t *testing.T) {
		p := validParams()
		p.Name = "  Swim "
		p.ExpectedEffort = 4

		require.NoError(t, h.Update(p))
		assert.Equal(t, "Swim", h.Name)
		assert.Equal(t, 4, h.ExpectedEffort)
		assert.Equal(t, "blue", h.Color)
	})

	t.Run("Rejects invalid params without mutating", func(t *testing.T) {
		p := validParams()
		p.StartingWeek = 99

		assert.ErrorIs(t, h.Update(p), domain.ErrInvalidWeek)
		assert.Equal(t, 3, h.StartingWeek)
	})
}

func TestHabit_Status(t *testing.T) {
	h := &domain.Habit{StartingWeek: 1}
	assert.Equal(t, domain.HabitStatusOpen, h.Status(40), "no ending week means open")

	h.EndingWeek = domain.IntPtr(10)
	assert.Equal(t, domain.HabitStatusOpen, h.Status(10))
	assert.Equal(t, domain.HabitStatusFinished, h.Status(11))
}

func TestEffort_Validate(t *testing.T) {
	e := domain.NewEffort("h1", "u1", 5, 3, 2024)
	assert.NoError(t, e.Validate())
	assert.NotEmpty(t, e.ID)

	e.Week = 0
	assert.ErrorIs(t, e.Validate(), domain.ErrInvalidWeek)

	e = domain.NewEffort("", "u1", 5, 3, 2024)
	assert.ErrorIs(t, e.Validate(), domain.ErrInvalidEffortHabit)

	e = domain.NewEffort("h1", "u1", 5, -2, 2024)
	assert.NoError(t, e.Validate(), "negative levels are stored as given")
}
