package usecase

import (
	"context"
	"fmt"

	"github.com/harukisoda/project-manager/internal/domain"
)

// TicketStatsOutput contains aggregated collection counts.
type TicketStatsOutput struct {
	Stats *domain.Statistics
}

// TicketStats is the use case for collection statistics.
type TicketStats struct {
	tickets domain.TicketRepository
}

// NewTicketStats creates a new TicketStats use case.
func NewTicketStats(tickets domain.TicketRepository) *TicketStats {
	return &TicketStats{tickets: tickets}
}

// Execute aggregates counts by status, priority, and type.
func (uc *TicketStats) Execute(_ context.Context) (*TicketStatsOutput, error) {
	stats, err := uc.tickets.Statistics()
	if err != nil {
		return nil, fmt.Errorf("compute statistics: %w", err)
	}
	return &TicketStatsOutput{Stats: stats}, nil
}
