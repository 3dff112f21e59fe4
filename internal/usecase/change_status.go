package usecase

import (
	"context"
	"fmt"

	"github.com/harukisoda/project-manager/internal/domain"
)

// ChangeStatusInput contains the parameters for a status transition.
type ChangeStatusInput struct {
	ID     string
	Status string
}

// ChangeStatusOutput contains the transitioned ticket.
type ChangeStatusOutput struct {
	Ticket *domain.Ticket
}

// ChangeStatus is the use case for moving a ticket through its lifecycle.
// The entity enforces the transition table; this layer only loads,
// delegates, and persists.
type ChangeStatus struct {
	tickets domain.TicketRepository
	clock   domain.Clock
	logger  domain.Logger
}

// NewChangeStatus creates a new ChangeStatus use case.
func NewChangeStatus(tickets domain.TicketRepository, clock domain.Clock, logger domain.Logger) *ChangeStatus {
	return &ChangeStatus{tickets: tickets, clock: clock, logger: logger}
}

// Execute applies the requested transition and persists the ticket.
func (uc *ChangeStatus) Execute(ctx context.Context, in ChangeStatusInput) (*ChangeStatusOutput, error) {
	status, err := domain.ParseStatus(in.Status)
	if err != nil {
		return nil, err
	}
	return uc.transition(ctx, in.ID, status)
}

// Start moves the ticket to in_progress.
func (uc *ChangeStatus) Start(ctx context.Context, id string) (*ChangeStatusOutput, error) {
	return uc.transition(ctx, id, domain.StatusInProgress)
}

// Complete moves the ticket to completed.
func (uc *ChangeStatus) Complete(ctx context.Context, id string) (*ChangeStatusOutput, error) {
	return uc.transition(ctx, id, domain.StatusCompleted)
}

// Archive moves the ticket to archived.
func (uc *ChangeStatus) Archive(ctx context.Context, id string) (*ChangeStatusOutput, error) {
	return uc.transition(ctx, id, domain.StatusArchived)
}

func (uc *ChangeStatus) transition(_ context.Context, id string, target domain.Status) (*ChangeStatusOutput, error) {
	ticket, err := uc.tickets.Get(id)
	if err != nil {
		return nil, fmt.Errorf("get ticket: %w", err)
	}
	if ticket == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrTicketNotFound, id)
	}

	from := ticket.Status
	if err := ticket.ChangeStatus(target, uc.clock.Now()); err != nil {
		return nil, err
	}

	if err := uc.tickets.Update(ticket); err != nil {
		return nil, fmt.Errorf("update ticket: %w", err)
	}

	if uc.logger != nil {
		uc.logger.Info("ticket status changed", "id", ticket.ID, "from", from, "to", target)
	}

	return &ChangeStatusOutput{Ticket: ticket}, nil
}
