package usecase

import (
	"context"
	"fmt"

	"github.com/harukisoda/project-manager/internal/domain"
)

// DeleteTicketInput contains the parameters for deleting a ticket.
type DeleteTicketInput struct {
	ID string
}

// DeleteTicket is the use case for removing a ticket from the store.
type DeleteTicket struct {
	tickets domain.TicketRepository
	logger  domain.Logger
}

// NewDeleteTicket creates a new DeleteTicket use case.
func NewDeleteTicket(tickets domain.TicketRepository, logger domain.Logger) *DeleteTicket {
	return &DeleteTicket{tickets: tickets, logger: logger}
}

// Execute deletes the ticket, failing with ErrTicketNotFound if absent.
func (uc *DeleteTicket) Execute(_ context.Context, in DeleteTicketInput) error {
	if err := uc.tickets.Delete(in.ID); err != nil {
		return fmt.Errorf("delete ticket: %w", err)
	}

	if uc.logger != nil {
		uc.logger.Info("ticket deleted", "id", in.ID)
	}
	return nil
}
