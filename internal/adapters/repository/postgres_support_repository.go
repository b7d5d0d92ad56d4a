package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/kanso-goals/internal/core/domain"
)

var _ domain.SupportRepository = (*PostgresSupportRepository)(nil)

type PostgresSupportRepository struct {
	db *sqlx.DB
}

func NewPostgresSupportRepository(db *sqlx.DB) *PostgresSupportRepository {
	return &PostgresSupportRepository{db: db}
}

func (r *PostgresSupportRepository) CreateTicket(ctx context.Context, t *domain.Ticket) error {
	query := `
		INSERT INTO tickets (id, title, content, sender, status, type, created_at, updated_at)
		VALUES (:id, :title, :content, :sender, :status, :type, :created_at, :updated_at)`

	if _, err := r.db.NamedExecContext(ctx, query, t); err != nil {
		return fmt.Errorf("failed to insert ticket: %w", err)
	}
	return nil
}

func (r *PostgresSupportRepository) GetTicket(ctx context.Context, id string) (*domain.Ticket, error) {
	var t domain.Ticket
	if err := r.db.GetContext(ctx, &t, `SELECT * FROM tickets WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTicketNotFound
		}
		return nil, fmt.Errorf("database scan error: %w", err)
	}
	return &t, nil
}

func (r *PostgresSupportRepository) ListTickets(ctx context.Context) ([]*domain.Ticket, error) {
	tickets := []*domain.Ticket{}
	if err := r.db.SelectContext(ctx, &tickets, `SELECT * FROM tickets ORDER BY created_at DESC`); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	return tickets, nil
}

func (r *PostgresSupportRepository) UpdateTicket(ctx context.Context, t *domain.Ticket) error {
	res, err := r.db.NamedExecContext(ctx,
		`UPDATE tickets SET status = :status, updated_at = :updated_at WHERE id = :id`, t)
	if err != nil {
		return fmt.Errorf("update query failed: %w", err)
	}
	return expectOneRow(res, domain.ErrTicketNotFound)
}

func (r *PostgresSupportRepository) CreateAnnouncement(ctx context.Context, a *domain.Announcement) error {
	query := `
		INSERT INTO announcements (id, title, content, type, starting_date, end_date)
		VALUES (:id, :title, :content, :type, :starting_date, :end_date)`

	if _, err := r.db.NamedExecContext(ctx, query, a); err != nil {
		return fmt.Errorf("failed to insert announcement: %w", err)
	}
	return nil
}

func (r *PostgresSupportRepository) ListAnnouncements(ctx context.Context) ([]*domain.Announcement, error) {
	announcements := []*domain.Announcement{}
	err := r.db.SelectContext(ctx, &announcements, `SELECT * FROM announcements ORDER BY starting_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	return announcements, nil
}

func (r *PostgresSupportRepository) CreateFeature(ctx context.Context, f *domain.Feature) error {
	query := `
		INSERT INTO features (id, title, description, created_at)
		VALUES (:id, :title, :description, :created_at)`

	if _, err := r.db.NamedExecContext(ctx, query, f); err != nil {
		return fmt.Errorf("failed to insert feature: %w", err)
	}
	return nil
}

func (r *PostgresSupportRepository) ListFeatures(ctx context.Context) ([]*domain.Feature, error) {
	features := []*domain.Feature{}
	if err := r.db.SelectContext(ctx, &features, `SELECT * FROM features ORDER BY created_at DESC`); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	return features, nil
}
