package usecase

import (
	"context"
	"fmt"

	"github.com/harukisoda/project-manager/internal/domain"
)

// ImportTicketsInput contains the parameters for creating tickets from a
// frontmatter file.
type ImportTicketsInput struct {
	Content string // File content (YAML frontmatter blocks + descriptions)
	DryRun  bool   // If true, parse and validate without creating tickets
}

// ImportTicketsOutput contains the created tickets (or the tickets that
// would be created in dry-run mode).
type ImportTicketsOutput struct {
	Tickets []*domain.Ticket
}

// ImportTickets is the use case for batch ticket creation from a file.
type ImportTickets struct {
	tickets domain.TicketRepository
	clock   domain.Clock
	ids     domain.IDGenerator
	logger  domain.Logger
}

// NewImportTickets creates a new ImportTickets use case.
func NewImportTickets(tickets domain.TicketRepository, clock domain.Clock, ids domain.IDGenerator, logger domain.Logger) *ImportTickets {
	return &ImportTickets{
		tickets: tickets,
		clock:   clock,
		ids:     ids,
		logger:  logger,
	}
}

// Execute parses all drafts, builds every ticket, and only then persists.
// A bad block anywhere fails the whole import with nothing written.
func (uc *ImportTickets) Execute(_ context.Context, in ImportTicketsInput) (*ImportTicketsOutput, error) {
	drafts, err := domain.ParseTicketDrafts(in.Content)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	tickets := make([]*domain.Ticket, 0, len(drafts))
	for i, draft := range drafts {
		ticket, err := domain.New(domain.NewTicketInput{
			ID:          uc.ids.NewID(),
			Title:       draft.Title,
			Description: draft.Description,
			Priority:    draft.Priority,
			Type:        draft.Type,
			Privacy:     draft.Privacy,
		}, now)
		if err != nil {
			return nil, fmt.Errorf("ticket %d: %w", i+1, err)
		}
		tickets = append(tickets, ticket)
	}

	if in.DryRun {
		return &ImportTicketsOutput{Tickets: tickets}, nil
	}

	for _, ticket := range tickets {
		if err := uc.tickets.Save(ticket); err != nil {
			return nil, fmt.Errorf("save ticket %q: %w", ticket.ID, err)
		}
	}

	if uc.logger != nil {
		uc.logger.Info("tickets imported", "count", len(tickets))
	}

	return &ImportTicketsOutput{Tickets: tickets}, nil
}
