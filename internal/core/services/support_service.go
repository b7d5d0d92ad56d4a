package services

import (
	"context"
	"time"

	"github.com/comitanigiacomo/kanso-goals/internal/core/domain"
)

type SupportService struct {
	repo domain.SupportRepository
}

func NewSupportService(repo domain.SupportRepository) *SupportService {
	return &SupportService{repo: repo}
}

type TicketInput struct {
	Title   string
	Content string
	Sender  string
	Type    string
}

type AnnouncementInput struct {
	Title        string
	Content      string
	Type         string
	StartingDate time.Time
	EndDate      time.Time
}

func (s *SupportService) OpenTicket(ctx context.Context, input TicketInput) (*domain.Ticket, error) {
	ticketType := input.Type
	if ticketType == "" {
		ticketType = domain.TicketTypeWeb
	}

	ticket, err := domain.NewTicket(input.Title, input.Content, input.Sender, ticketType)
	if err != nil {
		return nil, err
	}
	if err := s.repo.CreateTicket(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

func (s *SupportService) ListTickets(ctx context.Context) ([]*domain.Ticket, error) {
	return s.repo.ListTickets(ctx)
}

func (s *SupportService) SetTicketStatus(ctx context.Context, id, status string) (*domain.Ticket, error) {
	ticket, err := s.repo.GetTicket(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := ticket.SetStatus(status); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateTicket(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

func (s *SupportService) PublishAnnouncement(ctx context.Context, input AnnouncementInput) (*domain.Announcement, error) {
	a, err := domain.NewAnnouncement(input.Title, input.Content, input.Type, input.StartingDate, input.EndDate)
	if err != nil {
		return nil, err
	}
	if err := s.repo.CreateAnnouncement(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *SupportService) ListAnnouncements(ctx context.Context) ([]*domain.Announcement, error) {
	return s.repo.ListAnnouncements(ctx)
}

func (s *SupportService) PublishFeature(ctx context.Context, title, description string) (*domain.Feature, error) {
	f, err := domain.NewFeature(title, description)
	if err != nil {
		return nil, err
	}
	if err := s.repo.CreateFeature(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *SupportService) ListFeatures(ctx context.Context) ([]*domain.Feature, error) {
	return s.repo.ListFeatures(ctx)
}
