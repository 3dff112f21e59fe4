package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/harukisoda/project-manager/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	return New(filepath.Join(dir, "tickets.json"), nil)
}

func newTestTicket(t *testing.T, title string) *domain.Ticket {
	t.Helper()
	ticket, err := domain.New(domain.NewTicketInput{
		Title:       title,
		Description: "Description for " + title,
	}, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return ticket
}

func TestStore_SaveAndGet(t *testing.T) {
	store := newTestStore(t)
	ticket := newTestTicket(t, "Test ticket")

	if err := store.Save(ticket); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := store.Get(ticket.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got == nil {
		t.Fatal("Get() = nil, want ticket")
	}
	if got.Title != ticket.Title {
		t.Errorf("Title = %q, want %q", got.Title, ticket.Title)
	}
	if got.Status != domain.StatusPending {
		t.Errorf("Status = %q, want pending", got.Status)
	}
	if !got.CreatedAt.Equal(ticket.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, ticket.CreatedAt)
	}
}

func TestStore_Get_Missing(t *testing.T) {
	store := newTestStore(t)

	got, err := store.Get("nosuchid")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != nil {
		t.Errorf("Get() = %+v, want nil", got)
	}
}

func TestStore_Get_InvalidID(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.Get(""); !errors.Is(err, domain.ErrInvalidID) {
		t.Errorf("Get(\"\") error = %v, want ErrInvalidID", err)
	}
	if _, err := store.Get("not valid!"); !errors.Is(err, domain.ErrInvalidID) {
		t.Errorf("Get(invalid) error = %v, want ErrInvalidID", err)
	}
}

func TestStore_Save_Upsert(t *testing.T) {
	store := newTestStore(t)
	ticket := newTestTicket(t, "Original")

	if err := store.Save(ticket); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if err := ticket.UpdateTitle("Renamed", time.Now()); err != nil {
		t.Fatalf("UpdateTitle() error = %v", err)
	}
	if err := store.Save(ticket); err != nil {
		t.Fatalf("Save() second error = %v", err)
	}

	count, err := store.Count()
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 1 {
		t.Errorf("Count() = %d, want 1 after upsert", count)
	}

	got, _ := store.Get(ticket.ID)
	if got.Title != "Renamed" {
		t.Errorf("Title = %q, want %q", got.Title, "Renamed")
	}
}

func TestStore_List_PreservesInsertionOrder(t *testing.T) {
	store := newTestStore(t)

	var ids []string
	for i := 0; i < 5; i++ {
		ticket := newTestTicket(t, fmt.Sprintf("Ticket %d", i))
		ticket.ID = fmt.Sprintf("fixed%02d", i)
		if err := store.Save(ticket); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		ids = append(ids, ticket.ID)
	}

	tickets, err := store.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(tickets) != 5 {
		t.Fatalf("List() returned %d tickets, want 5", len(tickets))
	}
	for i, want := range ids {
		if tickets[i].ID != want {
			t.Errorf("tickets[%d].ID = %q, want %q", i, tickets[i].ID, want)
		}
	}
}

func TestStore_List_Idempotent(t *testing.T) {
	store := newTestStore(t)
	if err := store.Save(newTestTicket(t, "One")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	first, err := store.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	second, err := store.List()
	if err != nil {
		t.Fatalf("List() second error = %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID || first[i].Title != second[i].Title {
			t.Errorf("collection changed without mutation at index %d", i)
		}
	}
}

func TestStore_Update(t *testing.T) {
	store := newTestStore(t)
	ticket := newTestTicket(t, "Ticket")

	// Update before save must fail
	if err := store.Update(ticket); !errors.Is(err, domain.ErrTicketNotFound) {
		t.Errorf("Update() error = %v, want ErrTicketNotFound", err)
	}

	if err := store.Save(ticket); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := ticket.UpdateDescription("New description", time.Now()); err != nil {
		t.Fatalf("UpdateDescription() error = %v", err)
	}
	if err := store.Update(ticket); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, _ := store.Get(ticket.ID)
	if got.Description != "New description" {
		t.Errorf("Description = %q, want updated", got.Description)
	}
}

func TestStore_Delete(t *testing.T) {
	store := newTestStore(t)
	ticket := newTestTicket(t, "Doomed")

	if err := store.Save(ticket); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := store.Delete(ticket.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	exists, err := store.Exists(ticket.ID)
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if exists {
		t.Error("ticket still exists after Delete()")
	}

	// Deleting again must fail with not-found carrying the id
	err = store.Delete(ticket.ID)
	if !errors.Is(err, domain.ErrTicketNotFound) {
		t.Errorf("Delete() error = %v, want ErrTicketNotFound", err)
	}
}

func TestStore_Clear(t *testing.T) {
	store := newTestStore(t)
	for i := 0; i < 3; i++ {
		if err := store.Save(newTestTicket(t, fmt.Sprintf("T%d", i))); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	count, err := store.Count()
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 0 {
		t.Errorf("Count() = %d after Clear(), want 0", count)
	}
}

func TestStore_Search(t *testing.T) {
	store := newTestStore(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	mk := func(title, desc string, prio domain.Priority, typ domain.Type) *domain.Ticket {
		ticket, err := domain.New(domain.NewTicketInput{
			Title: title, Description: desc, Priority: prio, Type: typ,
		}, now)
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		return ticket
	}

	pendingHigh := mk("Fix login bug", "Users cannot login with email", domain.PriorityHigh, domain.TypeBug)
	inProgress := mk("Add search", "Full text search over tickets", domain.PriorityMedium, domain.TypeFeature)
	if err := inProgress.StartProgress(now.Add(time.Minute)); err != nil {
		t.Fatalf("StartProgress() error = %v", err)
	}
	completedLow := mk("Update docs", "Refresh the README", domain.PriorityLow, domain.TypeTask)
	if err := completedLow.StartProgress(now.Add(time.Minute)); err != nil {
		t.Fatalf("StartProgress() error = %v", err)
	}
	if err := completedLow.Complete(now.Add(2 * time.Minute)); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	for _, ticket := range []*domain.Ticket{pendingHigh, inProgress, completedLow} {
		if err := store.Save(ticket); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}

	tests := []struct {
		name    string
		filter  domain.TicketFilter
		wantIDs []string
	}{
		{
			name:    "empty filter returns all",
			filter:  domain.TicketFilter{},
			wantIDs: []string{pendingHigh.ID, inProgress.ID, completedLow.ID},
		},
		{
			name:    "status and priority ANDed",
			filter:  domain.TicketFilter{Status: domain.StatusPending, Priority: domain.PriorityHigh},
			wantIDs: []string{pendingHigh.ID},
		},
		{
			name:    "title substring case-insensitive",
			filter:  domain.TicketFilter{Title: "LOGIN"},
			wantIDs: []string{pendingHigh.ID},
		},
		{
			name:    "generic search matches description",
			filter:  domain.TicketFilter{Search: "readme"},
			wantIDs: []string{completedLow.ID},
		},
		{
			name:    "generic search matches title",
			filter:  domain.TicketFilter{Search: "add search"},
			wantIDs: []string{inProgress.ID},
		},
		{
			name:    "type filter",
			filter:  domain.TicketFilter{Type: domain.TypeFeature},
			wantIDs: []string{inProgress.ID},
		},
		{
			name:    "no match",
			filter:  domain.TicketFilter{Status: domain.StatusArchived},
			wantIDs: nil,
		},
		{
			name:    "conflicting criteria",
			filter:  domain.TicketFilter{Title: "login", Status: domain.StatusCompleted},
			wantIDs: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.Search(tt.filter)
			if err != nil {
				t.Fatalf("Search() error = %v", err)
			}
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("Search() returned %d tickets, want %d", len(got), len(tt.wantIDs))
			}
			for i, want := range tt.wantIDs {
				if got[i].ID != want {
					t.Errorf("result[%d].ID = %q, want %q", i, got[i].ID, want)
				}
			}
		})
	}
}

func TestStore_Statistics(t *testing.T) {
	store := newTestStore(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	specs := []struct {
		priority domain.Priority
		typ      domain.Type
		archive  bool
	}{
		{domain.PriorityHigh, domain.TypeBug, false},
		{domain.PriorityHigh, domain.TypeFeature, true},
		{domain.PriorityLow, domain.TypeTask, false},
	}
	for i, spec := range specs {
		ticket, err := domain.New(domain.NewTicketInput{
			Title:       fmt.Sprintf("Ticket %d", i),
			Description: "d",
			Priority:    spec.priority,
			Type:        spec.typ,
		}, now)
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		if spec.archive {
			if err := ticket.Archive(now.Add(time.Minute)); err != nil {
				t.Fatalf("Archive() error = %v", err)
			}
		}
		if err := store.Save(ticket); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}

	stats, err := store.Statistics()
	if err != nil {
		t.Fatalf("Statistics() error = %v", err)
	}
	if stats.Total != 3 {
		t.Errorf("Total = %d, want 3", stats.Total)
	}
	if stats.ByStatus[domain.StatusPending] != 2 {
		t.Errorf("ByStatus[pending] = %d, want 2", stats.ByStatus[domain.StatusPending])
	}
	if stats.ByStatus[domain.StatusArchived] != 1 {
		t.Errorf("ByStatus[archived] = %d, want 1", stats.ByStatus[domain.StatusArchived])
	}
	if stats.ByPriority[domain.PriorityHigh] != 2 {
		t.Errorf("ByPriority[high] = %d, want 2", stats.ByPriority[domain.PriorityHigh])
	}
	if stats.ByType[domain.TypeBug] != 1 {
		t.Errorf("ByType[bug] = %d, want 1", stats.ByType[domain.TypeBug])
	}
}

func TestStore_LenientRead(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		store := newTestStore(t)
		tickets, err := store.List()
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(tickets) != 0 {
			t.Errorf("List() = %d tickets, want 0", len(tickets))
		}
	})

	t.Run("empty file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "tickets.json")
		if err := os.WriteFile(path, nil, 0o600); err != nil {
			t.Fatal(err)
		}
		store := New(path, nil)
		tickets, err := store.List()
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(tickets) != 0 {
			t.Errorf("List() = %d tickets, want 0", len(tickets))
		}
	})

	t.Run("corrupted file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "tickets.json")
		if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
			t.Fatal(err)
		}
		store := New(path, nil)
		tickets, err := store.List()
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(tickets) != 0 {
			t.Errorf("List() = %d tickets, want 0", len(tickets))
		}
	})

	t.Run("corrupted file recoverable by save", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "tickets.json")
		if err := os.WriteFile(path, []byte("garbage"), 0o600); err != nil {
			t.Fatal(err)
		}
		store := New(path, nil)
		if err := store.Save(newTestTicket(t, "Fresh start")); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		count, err := store.Count()
		if err != nil {
			t.Fatalf("Count() error = %v", err)
		}
		if count != 1 {
			t.Errorf("Count() = %d, want 1", count)
		}
	})

	t.Run("invalid record surfaces error", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "tickets.json")
		bad := `[{"id":"abc","title":"T","description":"D","status":"done","priority":"medium","type":"task","privacy":"local-only","createdAt":"2025-06-01T12:00:00Z","updatedAt":"2025-06-01T12:00:00Z"}]`
		if err := os.WriteFile(path, []byte(bad), 0o600); err != nil {
			t.Fatal(err)
		}
		store := New(path, nil)
		_, err := store.List()
		if !errors.Is(err, domain.ErrInvalidStatus) {
			t.Errorf("List() error = %v, want ErrInvalidStatus", err)
		}
	})
}

func TestStore_WriteCreatesParentDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deeply", "nested", "tickets.json")
	store := New(path, nil)

	if err := store.Save(newTestTicket(t, "Nested")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("store file not created: %v", err)
	}
}

func TestStore_FileFormat(t *testing.T) {
	store := newTestStore(t)
	ticket := newTestTicket(t, "Format check")
	if err := store.Save(ticket); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	content, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	var records []map[string]any
	if err := json.Unmarshal(content, &records); err != nil {
		t.Fatalf("stored file is not a JSON array: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	for _, key := range []string{"id", "title", "description", "status", "priority", "type", "privacy", "createdAt", "updatedAt"} {
		if _, ok := records[0][key]; !ok {
			t.Errorf("record missing %q field", key)
		}
	}
}

func TestStore_ConcurrentSaves(t *testing.T) {
	store := newTestStore(t)
	const n = 20

	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ticket := newTestTicket(t, fmt.Sprintf("Concurrent %d", i))
			errs[i] = store.Save(ticket)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Errorf("Save(%d) error = %v", i, err)
		}
	}

	tickets, err := store.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(tickets) != n {
		t.Errorf("List() = %d tickets after %d concurrent saves, want no data loss", len(tickets), n)
	}
}

func TestStore_FailedMutationDoesNotPoisonLater(t *testing.T) {
	store := newTestStore(t)

	if err := store.Delete("missing0"); !errors.Is(err, domain.ErrTicketNotFound) {
		t.Fatalf("Delete() error = %v, want ErrTicketNotFound", err)
	}

	// A later save must still go through
	if err := store.Save(newTestTicket(t, "After failure")); err != nil {
		t.Fatalf("Save() after failed delete error = %v", err)
	}
}
