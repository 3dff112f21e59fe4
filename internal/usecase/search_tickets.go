package usecase

import (
	"context"
	"fmt"

	"github.com/harukisoda/project-manager/internal/domain"
)

// SearchTicketsInput contains the search criteria as raw strings.
// Empty fields are ignored; all provided criteria are ANDed.
type SearchTicketsInput struct {
	Title    string // Substring match on title
	Search   string // Substring match on title or description
	Status   string
	Priority string
	Type     string
	Privacy  string
}

// SearchTicketsOutput contains the matching tickets.
type SearchTicketsOutput struct {
	Tickets []*domain.Ticket
}

// SearchTickets is the use case for filtered ticket search.
type SearchTickets struct {
	tickets domain.TicketRepository
}

// NewSearchTickets creates a new SearchTickets use case.
func NewSearchTickets(tickets domain.TicketRepository) *SearchTickets {
	return &SearchTickets{tickets: tickets}
}

// Execute parses the enum criteria and runs the repository search.
// Unknown enum values fail fast before touching the store.
func (uc *SearchTickets) Execute(_ context.Context, in SearchTicketsInput) (*SearchTicketsOutput, error) {
	filter := domain.TicketFilter{
		Title:  in.Title,
		Search: in.Search,
	}

	var err error
	if in.Status != "" {
		if filter.Status, err = domain.ParseStatus(in.Status); err != nil {
			return nil, err
		}
	}
	if in.Priority != "" {
		if filter.Priority, err = domain.ParsePriority(in.Priority); err != nil {
			return nil, err
		}
	}
	if in.Type != "" {
		if filter.Type, err = domain.ParseType(in.Type); err != nil {
			return nil, err
		}
	}
	if in.Privacy != "" {
		if filter.Privacy, err = domain.ParsePrivacy(in.Privacy); err != nil {
			return nil, err
		}
	}

	tickets, err := uc.tickets.Search(filter)
	if err != nil {
		return nil, fmt.Errorf("search tickets: %w", err)
	}
	return &SearchTicketsOutput{Tickets: tickets}, nil
}
