package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/kanso-goals/internal/core/domain"
)

var _ domain.EffortRepository = (*PostgresEffortRepository)(nil)

const effortColumns = `id, habit_id, user_id, week, level, year, created_at, updated_at`

type PostgresEffortRepository struct {
	db *sqlx.DB
}

func NewPostgresEffortRepository(db *sqlx.DB) *PostgresEffortRepository {
	return &PostgresEffortRepository{db: db}
}

func (r *PostgresEffortRepository) Create(ctx context.Context, e *domain.Effort) error {
	query := `
		INSERT INTO efforts (` + effortColumns + `)
		VALUES (:id, :habit_id, :user_id, :week, :level, :year, :created_at, :updated_at)`

	_, err := r.db.NamedExecContext(ctx, query, e)
	if err != nil {
		switch pgErrorCode(err) {
		case pgUniqueViolation:
			return domain.ErrEffortConflict
		case pgForeignKeyViolation:
			return domain.ErrHabitNotFound
		}
		return fmt.Errorf("failed to insert effort: %w", err)
	}
	return nil
}

func (r *PostgresEffortRepository) GetByID(ctx context.Context, id, userID string) (*domain.Effort, error) {
	var e domain.Effort
	query := `SELECT ` + effortColumns + ` FROM efforts WHERE id = $1 AND user_id = $2`

	if err := r.db.GetContext(ctx, &e, query, id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEffortNotFound
		}
		return nil, fmt.Errorf("database scan error: %w", err)
	}
	return &e, nil
}

// effortWhere renders filter as a WHERE clause with positional arguments.
func effortWhere(userID string, f domain.EffortFilter) (string, []interface{}) {
	conds := []string{"user_id = $1"}
	args := []interface{}{userID}

	add := func(cond string, v interface{}) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.HabitID != "" {
		add("habit_id = $%d", f.HabitID)
	}
	if f.Year != nil {
		add("year = $%d", *f.Year)
	}
	if f.Week != nil {
		add("week = $%d", *f.Week)
	}
	if f.WeekLte != nil {
		add("week <= $%d", *f.WeekLte)
	}

	return "WHERE " + strings.Join(conds, " AND "), args
}

func (r *PostgresEffortRepository) ListByUserID(ctx context.Context, userID string, filter domain.EffortFilter) ([]*domain.Effort, error) {
	where, args := effortWhere(userID, filter)
	query := `SELECT ` + effortColumns + ` FROM efforts ` + where + ` ORDER BY created_at ASC, id ASC`

	efforts := []*domain.Effort{}
	if err := r.db.SelectContext(ctx, &efforts, query, args...); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	return efforts, nil
}

func (r *PostgresEffortRepository) SumLevel(ctx context.Context, userID string, filter domain.EffortFilter) (int, error) {
	where, args := effortWhere(userID, filter)
	query := `SELECT COALESCE(SUM(level), 0) FROM efforts ` + where

	var total int
	if err := r.db.GetContext(ctx, &total, query, args...); err != nil {
		return 0, fmt.Errorf("sum level: %w", err)
	}
	return total, nil
}

func (r *PostgresEffortRepository) Update(ctx context.Context, e *domain.Effort) error {
	query := `
		UPDATE efforts SET level = $1, updated_at = NOW()
		WHERE id = $2 AND user_id = $3
		RETURNING updated_at`

	if err := r.db.QueryRowContext(ctx, query, e.Level, e.ID, e.UserID).Scan(&e.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrEffortNotFound
		}
		return fmt.Errorf("update query failed: %w", err)
	}
	return nil
}

func (r *PostgresEffortRepository) Delete(ctx context.Context, id, userID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM efforts WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete query failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrEffortNotFound
	}
	return nil
}
