package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/kanso-goals/internal/core/domain"

	_ "github.com/jackc/pgx/v5/stdlib"
)

var _ domain.HabitRepository = (*PostgresHabitRepository)(nil)

const habitColumns = `id, user_id, objective_id, name, starting_week, ending_week,
	expected_effort, year, color, created_at, updated_at`

type PostgresHabitRepository struct {
	db *sqlx.DB
}

func NewPostgresHabitRepository(db *sqlx.DB) *PostgresHabitRepository {
	return &PostgresHabitRepository{db: db}
}

func (r *PostgresHabitRepository) Create(ctx context.Context, h *domain.Habit) error {
	query := `
		INSERT INTO habits (` + habitColumns + `)
		VALUES (
			:id, :user_id, :objective_id, :name, :starting_week, :ending_week,
			:expected_effort, :year, :color, :created_at, :updated_at
		)`

	if _, err := r.db.NamedExecContext(ctx, query, h); err != nil {
		if pgErrorCode(err) == pgForeignKeyViolation {
			return fmt.Errorf("referenced user or objective does not exist: %w", err)
		}
		return fmt.Errorf("failed to insert habit: %w", err)
	}
	return nil
}

func (r *PostgresHabitRepository) GetByID(ctx context.Context, id, userID string) (*domain.Habit, error) {
	var h domain.Habit
	query := `SELECT ` + habitColumns + ` FROM habits WHERE id = $1 AND user_id = $2`

	if err := r.db.GetContext(ctx, &h, query, id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrHabitNotFound
		}
		return nil, fmt.Errorf("database scan error: %w", err)
	}
	return &h, nil
}

func (r *PostgresHabitRepository) ListByUserID(ctx context.Context, userID string, filter domain.HabitFilter) ([]*domain.Habit, error) {
	conds := []string{"user_id = $1"}
	args := []interface{}{userID}

	if filter.Year != nil {
		args = append(args, *filter.Year)
		conds = append(conds, fmt.Sprintf("year = $%d", len(args)))
	}
	if filter.StartingWeekLte != nil {
		args = append(args, *filter.StartingWeekLte)
		conds = append(conds, fmt.Sprintf("starting_week <= $%d", len(args)))
	}

	query := `SELECT ` + habitColumns + ` FROM habits
		WHERE ` + strings.Join(conds, " AND ") + `
		ORDER BY starting_week ASC, created_at ASC, id ASC`

	habits := []*domain.Habit{}
	if err := r.db.SelectContext(ctx, &habits, query, args...); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	return habits, nil
}

func (r *PostgresHabitRepository) SumExpectedEffort(ctx context.Context, userID string, startingWeekLte int) (int, error) {
	var total int
	query := `
		SELECT COALESCE(SUM(expected_effort), 0)
		FROM habits
		WHERE user_id = $1 AND starting_week <= $2`

	if err := r.db.GetContext(ctx, &total, query, userID, startingWeekLte); err != nil {
		return 0, fmt.Errorf("sum expected effort: %w", err)
	}
	return total, nil
}

func (r *PostgresHabitRepository) Update(ctx context.Context, h *domain.Habit) error {
	query := `
		UPDATE habits SET
			objective_id = $1, name = $2, starting_week = $3, ending_week = $4,
			expected_effort = $5, year = $6, color = $7, updated_at = NOW()
		WHERE id = $8 AND user_id = $9
		RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query,
		h.ObjectiveID, h.Name, h.StartingWeek, h.EndingWeek,
		h.ExpectedEffort, h.Year, h.Color,
		h.ID, h.UserID,
	).Scan(&h.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrHabitNotFound
		}
		return fmt.Errorf("update query failed: %w", err)
	}
	return nil
}

func (r *PostgresHabitRepository) Delete(ctx context.Context, id, userID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM habits WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete query failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrHabitNotFound
	}
	return nil
}
