package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/harukisoda/project-manager/internal/domain"
)

// Export formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ExportTicketsInput contains the parameters for exporting the collection.
type ExportTicketsInput struct {
	Format string // "json" (default) or "yaml"
}

// ExportTicketsOutput contains the serialized collection.
type ExportTicketsOutput struct {
	Content []byte
	Count   int
}

// ExportTickets is the use case for dumping the full collection.
type ExportTickets struct {
	tickets domain.TicketRepository
}

// NewExportTickets creates a new ExportTickets use case.
func NewExportTickets(tickets domain.TicketRepository) *ExportTickets {
	return &ExportTickets{tickets: tickets}
}

// Execute serializes every stored ticket in the requested format.
func (uc *ExportTickets) Execute(_ context.Context, in ExportTicketsInput) (*ExportTicketsOutput, error) {
	format := in.Format
	if format == "" {
		format = FormatJSON
	}
	if format != FormatJSON && format != FormatYAML {
		return nil, fmt.Errorf("unknown export format %q (want json or yaml)", in.Format)
	}

	tickets, err := uc.tickets.List()
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}

	records := make([]domain.Record, 0, len(tickets))
	for _, t := range tickets {
		records = append(records, t.ToRecord())
	}

	var content []byte
	switch format {
	case FormatJSON:
		content, err = json.MarshalIndent(records, "", "  ")
	case FormatYAML:
		content, err = yaml.Marshal(records)
	}
	if err != nil {
		return nil, fmt.Errorf("marshal tickets: %w", err)
	}

	return &ExportTicketsOutput{Content: content, Count: len(records)}, nil
}
