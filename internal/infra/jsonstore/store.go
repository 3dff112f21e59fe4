// Package jsonstore provides a JSON file-based implementation of TicketRepository.
package jsonstore

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/harukisoda/project-manager/internal/domain"
)

// Store implements domain.TicketRepository using a single JSON file
// holding the full ticket collection as an array.
//
// Mutating operations serialize on mu, so at most one file rewrite is in
// flight per Store and mutations apply in call order. Reads are not
// serialized against writes; they see whichever full-file snapshot is on
// disk when they run. Nothing here protects against other OS processes.
type Store struct {
	logger *slog.Logger
	path   string
	mu     sync.Mutex
}

// New creates a new Store for the given file path. The file does not need
// to exist; it will be created on first write.
func New(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{path: path, logger: logger}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Get retrieves a ticket by id. Returns nil if not found.
func (s *Store) Get(id string) (*domain.Ticket, error) {
	if err := domain.ValidateID(id); err != nil {
		return nil, err
	}

	tickets, err := s.load()
	if err != nil {
		return nil, err
	}
	for _, t := range tickets {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, nil
}

// List retrieves every ticket in stored order.
func (s *Store) List() ([]*domain.Ticket, error) {
	return s.load()
}

// Search retrieves tickets matching the filter. All provided criteria are
// ANDed; an empty filter returns everything.
func (s *Store) Search(filter domain.TicketFilter) ([]*domain.Ticket, error) {
	tickets, err := s.load()
	if err != nil {
		return nil, err
	}
	if filter.IsEmpty() {
		return tickets, nil
	}

	matched := make([]*domain.Ticket, 0, len(tickets))
	for _, t := range tickets {
		if matches(t, filter) {
			matched = append(matched, t)
		}
	}
	return matched, nil
}

// matches applies every set criterion of the filter.
func matches(t *domain.Ticket, f domain.TicketFilter) bool {
	if f.Title != "" && !containsFold(t.Title, f.Title) {
		return false
	}
	if f.Search != "" && !containsFold(t.Title, f.Search) && !containsFold(t.Description, f.Search) {
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

// containsFold is a case-insensitive substring check.
func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// Save creates or updates a ticket (upsert by id), then rewrites the file.
func (s *Store) Save(ticket *domain.Ticket) error {
	if err := domain.ValidateID(ticket.ID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tickets, err := s.load()
	if err != nil {
		return err
	}

	replaced := false
	for i, t := range tickets {
		if t.ID == ticket.ID {
			tickets[i] = ticket
			replaced = true
			break
		}
	}
	if !replaced {
		tickets = append(tickets, ticket)
	}

	return s.write(tickets)
}

// Update replaces an existing ticket. Fails if the id is absent.
func (s *Store) Update(ticket *domain.Ticket) error {
	if err := domain.ValidateID(ticket.ID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tickets, err := s.load()
	if err != nil {
		return err
	}

	for i, t := range tickets {
		if t.ID == ticket.ID {
			tickets[i] = ticket
			return s.write(tickets)
		}
	}
	return fmt.Errorf("%w: %s", domain.ErrTicketNotFound, ticket.ID)
}

// Delete removes a ticket by id. Fails if the id is absent.
func (s *Store) Delete(id string) error {
	if err := domain.ValidateID(id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tickets, err := s.load()
	if err != nil {
		return err
	}

	for i, t := range tickets {
		if t.ID == id {
			tickets = append(tickets[:i], tickets[i+1:]...)
			return s.write(tickets)
		}
	}
	return fmt.Errorf("%w: %s", domain.ErrTicketNotFound, id)
}

// Exists reports whether a ticket with the given id is stored.
func (s *Store) Exists(id string) (bool, error) {
	t, err := s.Get(id)
	if err != nil {
		return false, err
	}
	return t != nil, nil
}

// Count returns the number of stored tickets.
func (s *Store) Count() (int, error) {
	tickets, err := s.load()
	if err != nil {
		return 0, err
	}
	return len(tickets), nil
}

// Clear removes every ticket.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.write(nil)
}

// Statistics aggregates counts by status, priority, and type in a single
// pass over the collection.
func (s *Store) Statistics() (*domain.Statistics, error) {
	tickets, err := s.load()
	if err != nil {
		return nil, err
	}

	stats := &domain.Statistics{
		ByStatus:   make(map[domain.Status]int),
		ByPriority: make(map[domain.Priority]int),
		ByType:     make(map[domain.Type]int),
		Total:      len(tickets),
	}
	for _, t := range tickets {
		stats.ByStatus[t.Status]++
		stats.ByPriority[t.Priority]++
		stats.ByType[t.Type]++
	}
	return stats, nil
}

// load reads and deserializes the full collection. A missing, empty, or
// unparseable file degrades to an empty collection (lenient read); a file
// that parses but holds an invalid record surfaces the validation error.
func (s *Store) load() ([]*domain.Ticket, error) {
	content, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("ticket store unreadable, treating as empty",
				"path", s.path, "error", err)
		}
		return nil, nil
	}
	if len(content) == 0 {
		return nil, nil
	}

	var records []domain.Record
	if err := json.Unmarshal(content, &records); err != nil {
		s.logger.Warn("ticket store corrupted, treating as empty",
			"path", s.path, "error", err)
		return nil, nil
	}

	tickets := make([]*domain.Ticket, 0, len(records))
	for _, rec := range records {
		ticket, err := domain.Reconstitute(rec)
		if err != nil {
			return nil, fmt.Errorf("record %q: %w", rec.ID, err)
		}
		tickets = append(tickets, ticket)
	}
	return tickets, nil
}

// write serializes the full collection and replaces the file. The parent
// directory is created if missing; the content goes to a temp file first
// and is renamed into place so readers never see a partial write.
func (s *Store) write(tickets []*domain.Ticket) error {
	records := make([]domain.Record, 0, len(tickets))
	for _, t := range tickets {
		records = append(records, t.ToRecord())
	}

	content, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal ticket store: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Ensure Store implements TicketRepository.
var _ domain.TicketRepository = (*Store)(nil)
