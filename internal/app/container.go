// Package app provides the dependency injection container for the application.
package app

import (
	"log/slog"
	"path/filepath"

	"github.com/harukisoda/project-manager/internal/domain"
	"github.com/harukisoda/project-manager/internal/infra/config"
	"github.com/harukisoda/project-manager/internal/infra/jsonstore"
	"github.com/harukisoda/project-manager/internal/infra/logging"
	"github.com/harukisoda/project-manager/internal/usecase"
)

// Config holds the resolved application paths.
type Config struct {
	StorePath string // Path to tickets.json
	DataDir   string // Directory holding the store and logs
	Mode      string // Optional mode suffix (empty for default)
}

// Container wires ports to implementations and provides factory methods
// for use cases. Its lifetime is owned by the process entry point; it is
// passed down explicitly, never looked up globally.
type Container struct {
	Tickets domain.TicketRepository
	Clock   domain.Clock
	IDs     domain.IDGenerator
	Logger  *slog.Logger
	Config  Config
}

// New creates a Container from the loaded configuration. The storage path
// resolution (env override, config file, XDG default) happens here; the
// repository only ever sees the final path.
func New() (*Container, error) {
	loader := config.NewLoader()
	cfg, err := loader.Load()
	if err != nil {
		return nil, err
	}

	storePath := loader.ResolveStoragePath(cfg)
	appCfg := Config{
		StorePath: storePath,
		DataDir:   filepath.Dir(storePath),
		Mode:      cfg.Mode,
	}

	// Logs go to a file under the data dir so CLI output stays clean and
	// the MCP server keeps stdout free for the protocol. Fall back to
	// stderr when the data dir is not writable.
	level := logging.ParseLevel(cfg.Log.Level)
	logger, _, err := logging.NewFileLogger(appCfg.DataDir, level)
	if err != nil {
		logger = logging.NewStderrLogger(level)
	}

	return &Container{
		Tickets: jsonstore.New(storePath, logger),
		Clock:   domain.RealClock{},
		IDs:     domain.SortableIDGenerator{},
		Logger:  logger,
		Config:  appCfg,
	}, nil
}

// NewWithDeps creates a Container with custom dependencies for testing.
func NewWithDeps(cfg Config, tickets domain.TicketRepository, clock domain.Clock, ids domain.IDGenerator, logger *slog.Logger) *Container {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Container{
		Tickets: tickets,
		Clock:   clock,
		IDs:     ids,
		Logger:  logger,
		Config:  cfg,
	}
}

// UseCase factory methods

// CreateTicketUseCase returns a new CreateTicket use case.
func (c *Container) CreateTicketUseCase() *usecase.CreateTicket {
	return usecase.NewCreateTicket(c.Tickets, c.Clock, c.IDs, c.Logger)
}

// GetTicketUseCase returns a new GetTicket use case.
func (c *Container) GetTicketUseCase() *usecase.GetTicket {
	return usecase.NewGetTicket(c.Tickets)
}

// ListTicketsUseCase returns a new ListTickets use case.
func (c *Container) ListTicketsUseCase() *usecase.ListTickets {
	return usecase.NewListTickets(c.Tickets)
}

// UpdateTicketUseCase returns a new UpdateTicket use case.
func (c *Container) UpdateTicketUseCase() *usecase.UpdateTicket {
	return usecase.NewUpdateTicket(c.Tickets, c.Clock, c.Logger)
}

// ChangeStatusUseCase returns a new ChangeStatus use case.
func (c *Container) ChangeStatusUseCase() *usecase.ChangeStatus {
	return usecase.NewChangeStatus(c.Tickets, c.Clock, c.Logger)
}

// DeleteTicketUseCase returns a new DeleteTicket use case.
func (c *Container) DeleteTicketUseCase() *usecase.DeleteTicket {
	return usecase.NewDeleteTicket(c.Tickets, c.Logger)
}

// SearchTicketsUseCase returns a new SearchTickets use case.
func (c *Container) SearchTicketsUseCase() *usecase.SearchTickets {
	return usecase.NewSearchTickets(c.Tickets)
}

// TicketStatsUseCase returns a new TicketStats use case.
func (c *Container) TicketStatsUseCase() *usecase.TicketStats {
	return usecase.NewTicketStats(c.Tickets)
}

// ImportTicketsUseCase returns a new ImportTickets use case.
func (c *Container) ImportTicketsUseCase() *usecase.ImportTickets {
	return usecase.NewImportTickets(c.Tickets, c.Clock, c.IDs, c.Logger)
}

// ExportTicketsUseCase returns a new ExportTickets use case.
func (c *Container) ExportTicketsUseCase() *usecase.ExportTickets {
	return usecase.NewExportTickets(c.Tickets)
}
