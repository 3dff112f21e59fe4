package usecase

import (
	"context"
	"fmt"

	"github.com/harukisoda/project-manager/internal/domain"
)

// UpdateTicketInput contains the parameters for editing a ticket.
// Empty fields are left unchanged; at least one must be set.
type UpdateTicketInput struct {
	ID          string
	Title       string
	Description string
	Priority    string
}

// UpdateTicketOutput contains the updated ticket.
type UpdateTicketOutput struct {
	Ticket *domain.Ticket
}

// UpdateTicket is the use case for editing a ticket's title, description,
// or priority.
type UpdateTicket struct {
	tickets domain.TicketRepository
	clock   domain.Clock
	logger  domain.Logger
}

// NewUpdateTicket creates a new UpdateTicket use case.
func NewUpdateTicket(tickets domain.TicketRepository, clock domain.Clock, logger domain.Logger) *UpdateTicket {
	return &UpdateTicket{tickets: tickets, clock: clock, logger: logger}
}

// Execute loads the ticket, applies the requested field changes through
// the entity's mutators, and persists the result. Validation failures
// leave the stored ticket untouched.
func (uc *UpdateTicket) Execute(_ context.Context, in UpdateTicketInput) (*UpdateTicketOutput, error) {
	if in.Title == "" && in.Description == "" && in.Priority == "" {
		return nil, domain.ErrNoFieldsToUpdate
	}

	ticket, err := uc.tickets.Get(in.ID)
	if err != nil {
		return nil, fmt.Errorf("get ticket: %w", err)
	}
	if ticket == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrTicketNotFound, in.ID)
	}

	now := uc.clock.Now()
	if in.Title != "" {
		if err := ticket.UpdateTitle(in.Title, now); err != nil {
			return nil, err
		}
	}
	if in.Description != "" {
		if err := ticket.UpdateDescription(in.Description, now); err != nil {
			return nil, err
		}
	}
	if in.Priority != "" {
		priority, err := domain.ParsePriority(in.Priority)
		if err != nil {
			return nil, err
		}
		if err := ticket.ChangePriority(priority, now); err != nil {
			return nil, err
		}
	}

	if err := uc.tickets.Update(ticket); err != nil {
		return nil, fmt.Errorf("update ticket: %w", err)
	}

	if uc.logger != nil {
		uc.logger.Info("ticket updated", "id", ticket.ID)
	}

	return &UpdateTicketOutput{Ticket: ticket}, nil
}
