// Package usecase contains application use cases.
package usecase

import (
	"context"
	"fmt"

	"github.com/harukisoda/project-manager/internal/domain"
)

// CreateTicketInput contains the parameters for creating a ticket.
// Enum fields are raw strings from the caller; empty means default.
type CreateTicketInput struct {
	Title       string
	Description string
	Priority    string
	Type        string
	Privacy     string
}

// CreateTicketOutput contains the created ticket.
type CreateTicketOutput struct {
	Ticket *domain.Ticket
}

// CreateTicket is the use case for creating a ticket.
type CreateTicket struct {
	tickets domain.TicketRepository
	clock   domain.Clock
	ids     domain.IDGenerator
	logger  domain.Logger
}

// NewCreateTicket creates a new CreateTicket use case.
func NewCreateTicket(tickets domain.TicketRepository, clock domain.Clock, ids domain.IDGenerator, logger domain.Logger) *CreateTicket {
	return &CreateTicket{
		tickets: tickets,
		clock:   clock,
		ids:     ids,
		logger:  logger,
	}
}

// Execute validates the input, builds the ticket with defaults, and saves it.
func (uc *CreateTicket) Execute(_ context.Context, in CreateTicketInput) (*CreateTicketOutput, error) {
	ticket, err := domain.New(domain.NewTicketInput{
		ID:          uc.ids.NewID(),
		Title:       in.Title,
		Description: in.Description,
		Priority:    domain.Priority(in.Priority),
		Type:        domain.Type(in.Type),
		Privacy:     domain.Privacy(in.Privacy),
	}, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	if err := uc.tickets.Save(ticket); err != nil {
		return nil, fmt.Errorf("save ticket: %w", err)
	}

	if uc.logger != nil {
		uc.logger.Info("ticket created", "id", ticket.ID, "title", ticket.Title)
	}

	return &CreateTicketOutput{Ticket: ticket}, nil
}
