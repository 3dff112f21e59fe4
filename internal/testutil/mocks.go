// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"fmt"
	"strings"
	"time"

	"github.com/harukisoda/project-manager/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// Advance moves the clock forward.
func (m *MockClock) Advance(d time.Duration) {
	m.NowTime = m.NowTime.Add(d)
}

// MockIDGenerator is a test double for domain.IDGenerator producing
// sequential ids.
type MockIDGenerator struct {
	Prefix string
	N      int
}

// NewID returns the next sequential id.
func (m *MockIDGenerator) NewID() string {
	m.N++
	prefix := m.Prefix
	if prefix == "" {
		prefix = "ticket"
	}
	return fmt.Sprintf("%s%04d", prefix, m.N)
}

// MockTicketRepository is a test double for domain.TicketRepository.
// Tickets keeps insertion order. Error fields, when set, are returned by
// the corresponding methods.
type MockTicketRepository struct {
	SaveErr   error
	GetErr    error
	UpdateErr error
	Tickets   []*domain.Ticket
}

// NewMockTicketRepository creates an empty MockTicketRepository.
func NewMockTicketRepository() *MockTicketRepository {
	return &MockTicketRepository{}
}

// Get retrieves a ticket by id. Returns nil if not found.
func (m *MockTicketRepository) Get(id string) (*domain.Ticket, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	for _, t := range m.Tickets {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, nil
}

// List returns all tickets in insertion order.
func (m *MockTicketRepository) List() ([]*domain.Ticket, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.Tickets, nil
}

// Search applies the filter in memory.
func (m *MockTicketRepository) Search(filter domain.TicketFilter) ([]*domain.Ticket, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	var matched []*domain.Ticket
	for _, t := range m.Tickets {
		if mockMatches(t, filter) {
			matched = append(matched, t)
		}
	}
	return matched, nil
}

func mockMatches(t *domain.Ticket, f domain.TicketFilter) bool {
	contains := func(haystack, needle string) bool {
		return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
	}
	if f.Title != "" && !contains(t.Title, f.Title) {
		return false
	}
	if f.Search != "" && !contains(t.Title, f.Search) && !contains(t.Description, f.Search) {
		return false
	}
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	if f.Priority != "" && t.Priority != f.Priority {
		return false
	}
	if f.Type != "" && t.Type != f.Type {
		return false
	}
	if f.Privacy != "" && t.Privacy != f.Privacy {
		return false
	}
	return true
}

// Save upserts a ticket.
func (m *MockTicketRepository) Save(ticket *domain.Ticket) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	for i, t := range m.Tickets {
		if t.ID == ticket.ID {
			m.Tickets[i] = ticket
			return nil
		}
	}
	m.Tickets = append(m.Tickets, ticket)
	return nil
}

// Update replaces an existing ticket.
func (m *MockTicketRepository) Update(ticket *domain.Ticket) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	for i, t := range m.Tickets {
		if t.ID == ticket.ID {
			m.Tickets[i] = ticket
			return nil
		}
	}
	return fmt.Errorf("%w: %s", domain.ErrTicketNotFound, ticket.ID)
}

// Delete removes a ticket by id.
func (m *MockTicketRepository) Delete(id string) error {
	for i, t := range m.Tickets {
		if t.ID == id {
			m.Tickets = append(m.Tickets[:i], m.Tickets[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", domain.ErrTicketNotFound, id)
}

// Exists reports whether a ticket with the given id is stored.
func (m *MockTicketRepository) Exists(id string) (bool, error) {
	t, err := m.Get(id)
	return t != nil, err
}

// Count returns the number of stored tickets.
func (m *MockTicketRepository) Count() (int, error) {
	return len(m.Tickets), nil
}

// Clear removes every ticket.
func (m *MockTicketRepository) Clear() error {
	m.Tickets = nil
	return nil
}

// Statistics aggregates counts over the stored tickets.
func (m *MockTicketRepository) Statistics() (*domain.Statistics, error) {
	stats := &domain.Statistics{
		ByStatus:   make(map[domain.Status]int),
		ByPriority: make(map[domain.Priority]int),
		ByType:     make(map[domain.Type]int),
		Total:      len(m.Tickets),
	}
	for _, t := range m.Tickets {
		stats.ByStatus[t.Status]++
		stats.ByPriority[t.Priority]++
		stats.ByType[t.Type]++
	}
	return stats, nil
}

// Ensure mocks implement the domain ports.
var (
	_ domain.TicketRepository = (*MockTicketRepository)(nil)
	_ domain.Clock            = (*MockClock)(nil)
	_ domain.IDGenerator      = (*MockIDGenerator)(nil)
)
