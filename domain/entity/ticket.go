package entity

import (
	"errors"
	"time"
)

type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusResolved   TicketStatus = "resolved"
)

type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityHigh   TicketPriority = "high"
)

var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidPriority   = errors.New("invalid priority")
)

// Ticket is a support request raised for a store.
type Ticket struct {
	ID          string         `json:"id"`
	StoreID     string         `json:"store_id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Priority    TicketPriority `json:"priority"`
	Status      TicketStatus   `json:"status"`
	CreatedBy   string         `json:"created_by"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	ResolvedAt  *time.Time     `json:"resolved_at,omitempty"`
}

func NewTicket(id, storeID, title, description string, priority TicketPriority, createdBy string) *Ticket {
	now := time.Now()
	return &Ticket{
		ID:          id,
		StoreID:     storeID,
		Title:       title,
		Description: description,
		Priority:    priority,
		Status:      TicketStatusOpen,
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func ValidPriority(p TicketPriority) bool {
	switch p {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh:
		return true
	}
	return false
}

// Start moves an open ticket into progress.
func (t *Ticket) Start() error {
	if t.Status != TicketStatusOpen {
		return ErrInvalidTransition
	}
	t.Status = TicketStatusInProgress
	t.UpdatedAt = time.Now()
	return nil
}

func (t *Ticket) Resolve() error {
	if t.Status == TicketStatusResolved {
		return ErrInvalidTransition
	}
	now := time.Now()
	t.Status = TicketStatusResolved
	t.ResolvedAt = &now
	t.UpdatedAt = now
	return nil
}

func (t *Ticket) Reopen() error {
	if t.Status != TicketStatusResolved {
		return ErrInvalidTransition
	}
	t.Status = TicketStatusOpen
	t.ResolvedAt = nil
	t.UpdatedAt = time.Now()
	return nil
}

// IsOpen reports whether the ticket counts towards the open volume.
func (t *Ticket) IsOpen() bool {
	return t.Status == TicketStatusOpen || t.Status == TicketStatusInProgress
}
