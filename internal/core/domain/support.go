package domain

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrTitleEmpty          = errors.New("title cannot be empty")
	ErrContentTooLong      = errors.New("content is too long (max 1000 chars)")
	ErrInvalidTicketStatus = errors.New("invalid ticket status (must be open, resolved or closed)")
	ErrInvalidTicketType   = errors.New("invalid ticket type (must be email or web)")
	ErrInvalidAnnouncement = errors.New("invalid announcement type (must be alert, info or warning)")
	ErrInvalidDateRange    = errors.New("end date cannot be before starting date")
)

const (
	TicketStatusOpen     = "open"
	TicketStatusResolved = "resolved"
	TicketStatusClosed   = "closed"

	TicketTypeEmail = "email"
	TicketTypeWeb   = "web"

	AnnouncementAlert   = "alert"
	AnnouncementInfo    = "info"
	AnnouncementWarning = "warning"

	AnnouncementOn  = "ON"
	AnnouncementOff = "OFF"

	MaxContentLen = 1000
)

type Ticket struct {
	ID        string    `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	Sender    string    `json:"sender" db:"sender"`
	Status    string    `json:"status" db:"status"`
	Type      string    `json:"type" db:"type"`
	CreatedAt time.Time `json:"creation_date" db:"created_at"`
	UpdatedAt time.Time `json:"updated_date" db:"updated_at"`
}

type Announcement struct {
	ID           string    `json:"id" db:"id"`
	Title        string    `json:"title" db:"title"`
	Content      string    `json:"content" db:"content"`
	Type         string    `json:"type" db:"type"`
	StartingDate time.Time `json:"starting_date" db:"starting_date"`
	EndDate      time.Time `json:"end_date" db:"end_date"`
}

type Feature struct {
	ID          string    `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

func validateText(title, content string) error {
	if strings.TrimSpace(title) == "" {
		return ErrTitleEmpty
	}
	if len(strings.TrimSpace(title)) > MaxNameLen {
		return ErrHabitNameTooLong
	}
	if len(content) > MaxContentLen {
		return ErrContentTooLong
	}
	return nil
}

func NewTicket(title, content, sender, ticketType string) (*Ticket, error) {
	if err := validateText(title, content); err != nil {
		return nil, err
	}
	if _, err := mail.ParseAddress(sender); err != nil {
		return nil, ErrInvalidEmail
	}
	switch ticketType {
	case TicketTypeEmail, TicketTypeWeb:
	default:
		return nil, ErrInvalidTicketType
	}

	now := time.Now().UTC()
	return &Ticket{
		ID:        uuid.NewString(),
		Title:     strings.TrimSpace(title),
		Content:   content,
		Sender:    strings.ToLower(strings.TrimSpace(sender)),
		Status:    TicketStatusOpen,
		Type:      ticketType,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (t *Ticket) SetStatus(status string) error {
	switch status {
	case TicketStatusOpen, TicketStatusResolved, TicketStatusClosed:
	default:
		return ErrInvalidTicketStatus
	}
	t.Status = status
	t.UpdatedAt = time.Now().UTC()
	return nil
}

func NewAnnouncement(title, content, kind string, start, end time.Time) (*Announcement, error) {
	if err := validateText(title, content); err != nil {
		return nil, err
	}
	switch kind {
	case AnnouncementAlert, AnnouncementInfo, AnnouncementWarning:
	default:
		return nil, ErrInvalidAnnouncement
	}
	if end.Before(start) {
		return nil, ErrInvalidDateRange
	}

	return &Announcement{
		ID:           uuid.NewString(),
		Title:        strings.TrimSpace(title),
		Content:      content,
		Type:         kind,
		StartingDate: truncateDay(start),
		EndDate:      truncateDay(end),
	}, nil
}

// Status is ON while the end date lies strictly after today.
func (a *Announcement) Status(now time.Time) string {
	if a.EndDate.After(truncateDay(now)) {
		return AnnouncementOn
	}
	return AnnouncementOff
}

func NewFeature(title, description string) (*Feature, error) {
	if err := validateText(title, description); err != nil {
		return nil, err
	}
	return &Feature{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		CreatedAt:   time.Now().UTC(),
	}, nil
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
