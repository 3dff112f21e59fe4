package domain

import "time"

// TicketFilter describes search criteria. String fields are ignored when
// empty; all provided criteria are ANDed together.
type TicketFilter struct {
	Title    string   // Case-insensitive substring match on title
	Search   string   // Case-insensitive substring match on title or description
	Status   Status   // Exact match
	Priority Priority // Exact match
	Type     Type     // Exact match
	Privacy  Privacy  // Exact match
}

// IsEmpty reports whether no criteria are set.
func (f TicketFilter) IsEmpty() bool {
	return f == TicketFilter{}
}

// Statistics aggregates ticket counts by status, priority, and type.
type Statistics struct {
	ByStatus   map[Status]int
	ByPriority map[Priority]int
	ByType     map[Type]int
	Total      int
}

// TicketRepository manages ticket persistence.
type TicketRepository interface {
	// Get retrieves a ticket by id. Returns nil if not found.
	Get(id string) (*Ticket, error)

	// List retrieves every ticket in stored order.
	List() ([]*Ticket, error)

	// Search retrieves tickets matching the filter. An empty filter
	// returns everything.
	Search(filter TicketFilter) ([]*Ticket, error)

	// Save creates or updates a ticket (upsert by id).
	Save(ticket *Ticket) error

	// Update replaces an existing ticket. Fails with ErrTicketNotFound
	// if the id is absent.
	Update(ticket *Ticket) error

	// Delete removes a ticket by id. Fails with ErrTicketNotFound if
	// the id is absent.
	Delete(id string) error

	// Exists reports whether a ticket with the given id is stored.
	Exists(id string) (bool, error)

	// Count returns the number of stored tickets.
	Count() (int, error)

	// Clear removes every ticket.
	Clear() error

	// Statistics aggregates counts over the full collection.
	Statistics() (*Statistics, error)
}

// Logger is the logging port consumed by use cases. *slog.Logger
// satisfies it.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// IDGenerator supplies ticket ids when none are given at creation.
type IDGenerator interface {
	// NewID returns a fresh unique id.
	NewID() string
}

// SortableIDGenerator implements IDGenerator with timestamp-prefixed ids.
type SortableIDGenerator struct{}

// NewID returns a fresh lexicographically sortable id.
func (SortableIDGenerator) NewID() string {
	return GenerateID()
}
