package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/kanso-goals/internal/core/domain"
)

var (
	_ domain.GoalRepository      = (*PostgresGoalRepository)(nil)
	_ domain.ObjectiveRepository = (*PostgresObjectiveRepository)(nil)
)

type PostgresGoalRepository struct {
	db *sqlx.DB
}

func NewPostgresGoalRepository(db *sqlx.DB) *PostgresGoalRepository {
	return &PostgresGoalRepository{db: db}
}

func (r *PostgresGoalRepository) Create(ctx context.Context, g *domain.Goal) error {
	query := `
		INSERT INTO goals (id, user_id, name, description, year, created_at, updated_at)
		VALUES (:id, :user_id, :name, :description, :year, :created_at, :updated_at)`

	if _, err := r.db.NamedExecContext(ctx, query, g); err != nil {
		return fmt.Errorf("failed to insert goal: %w", err)
	}
	return nil
}

func (r *PostgresGoalRepository) GetByID(ctx context.Context, id, userID string) (*domain.Goal, error) {
	var g domain.Goal
	err := r.db.GetContext(ctx, &g, `SELECT * FROM goals WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrGoalNotFound
		}
		return nil, fmt.Errorf("database scan error: %w", err)
	}
	return &g, nil
}

func (r *PostgresGoalRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Goal, error) {
	goals := []*domain.Goal{}
	err := r.db.SelectContext(ctx, &goals,
		`SELECT * FROM goals WHERE user_id = $1 ORDER BY year DESC, created_at ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	return goals, nil
}

func (r *PostgresGoalRepository) Update(ctx context.Context, g *domain.Goal) error {
	res, err := r.db.NamedExecContext(ctx, `
		UPDATE goals SET name = :name, description = :description, year = :year, updated_at = :updated_at
		WHERE id = :id AND user_id = :user_id`, g)
	if err != nil {
		return fmt.Errorf("update query failed: %w", err)
	}
	return expectOneRow(res, domain.ErrGoalNotFound)
}

func (r *PostgresGoalRepository) Delete(ctx context.Context, id, userID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM goals WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete query failed: %w", err)
	}
	return expectOneRow(res, domain.ErrGoalNotFound)
}

type PostgresObjectiveRepository struct {
	db *sqlx.DB
}

func NewPostgresObjectiveRepository(db *sqlx.DB) *PostgresObjectiveRepository {
	return &PostgresObjectiveRepository{db: db}
}

func (r *PostgresObjectiveRepository) Create(ctx context.Context, o *domain.Objective) error {
	query := `
		INSERT INTO objectives (id, user_id, goal_id, name, quarter, year, created_at, updated_at)
		VALUES (:id, :user_id, :goal_id, :name, :quarter, :year, :created_at, :updated_at)`

	if _, err := r.db.NamedExecContext(ctx, query, o); err != nil {
		if pgErrorCode(err) == pgForeignKeyViolation {
			return domain.ErrGoalNotFound
		}
		return fmt.Errorf("failed to insert objective: %w", err)
	}
	return nil
}

func (r *PostgresObjectiveRepository) GetByID(ctx context.Context, id, userID string) (*domain.Objective, error) {
	var o domain.Objective
	err := r.db.GetContext(ctx, &o, `SELECT * FROM objectives WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrObjectiveNotFound
		}
		return nil, fmt.Errorf("database scan error: %w", err)
	}
	return &o, nil
}

func (r *PostgresObjectiveRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Objective, error) {
	objectives := []*domain.Objective{}
	err := r.db.SelectContext(ctx, &objectives,
		`SELECT * FROM objectives WHERE user_id = $1 ORDER BY year DESC, quarter ASC, created_at ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	return objectives, nil
}

func (r *PostgresObjectiveRepository) Update(ctx context.Context, o *domain.Objective) error {
	res, err := r.db.NamedExecContext(ctx, `
		UPDATE objectives SET goal_id = :goal_id, name = :name, quarter = :quarter, year = :year, updated_at = :updated_at
		WHERE id = :id AND user_id = :user_id`, o)
	if err != nil {
		return fmt.Errorf("update query failed: %w", err)
	}
	return expectOneRow(res, domain.ErrObjectiveNotFound)
}

func (r *PostgresObjectiveRepository) Delete(ctx context.Context, id, userID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM objectives WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete query failed: %w", err)
	}
	return expectOneRow(res, domain.ErrObjectiveNotFound)
}

func expectOneRow(res sql.Result, notFound error) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return notFound
	}
	return nil
}
