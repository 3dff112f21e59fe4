package usecase

import (
	"context"
	"fmt"

	"github.com/harukisoda/project-manager/internal/domain"
)

// GetTicketInput contains the parameters for fetching a ticket.
type GetTicketInput struct {
	ID string
}

// GetTicketOutput contains the fetched ticket.
type GetTicketOutput struct {
	Ticket *domain.Ticket
}

// GetTicket is the use case for fetching a single ticket by id.
type GetTicket struct {
	tickets domain.TicketRepository
}

// NewGetTicket creates a new GetTicket use case.
func NewGetTicket(tickets domain.TicketRepository) *GetTicket {
	return &GetTicket{tickets: tickets}
}

// Execute retrieves the ticket, failing with ErrTicketNotFound if absent.
func (uc *GetTicket) Execute(_ context.Context, in GetTicketInput) (*GetTicketOutput, error) {
	ticket, err := uc.tickets.Get(in.ID)
	if err != nil {
		return nil, fmt.Errorf("get ticket: %w", err)
	}
	if ticket == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrTicketNotFound, in.ID)
	}
	return &GetTicketOutput{Ticket: ticket}, nil
}
