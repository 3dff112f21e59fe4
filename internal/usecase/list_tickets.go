package usecase

import (
	"context"
	"fmt"

	"github.com/harukisoda/project-manager/internal/domain"
)

// ListTicketsInput contains the parameters for listing tickets.
type ListTicketsInput struct {
	// IncludeArchived also returns archived tickets. By default only
	// active tickets (pending, in_progress, completed) are listed.
	IncludeArchived bool
}

// ListTicketsOutput contains the listed tickets in stored order.
type ListTicketsOutput struct {
	Tickets []*domain.Ticket
}

// ListTickets is the use case for listing stored tickets.
type ListTickets struct {
	tickets domain.TicketRepository
}

// NewListTickets creates a new ListTickets use case.
func NewListTickets(tickets domain.TicketRepository) *ListTickets {
	return &ListTickets{tickets: tickets}
}

// Execute returns the stored tickets, optionally filtering out archived ones.
func (uc *ListTickets) Execute(_ context.Context, in ListTicketsInput) (*ListTicketsOutput, error) {
	tickets, err := uc.tickets.List()
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}

	if !in.IncludeArchived {
		active := make([]*domain.Ticket, 0, len(tickets))
		for _, t := range tickets {
			if t.IsActive() {
				active = append(active, t)
			}
		}
		tickets = active
	}

	return &ListTicketsOutput{Tickets: tickets}, nil
}
