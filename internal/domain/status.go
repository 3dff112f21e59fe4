package domain

import "fmt"

// Status represents the lifecycle state of a ticket.
type Status string

const (
	StatusPending    Status = "pending"     // Created, awaiting start
	StatusInProgress Status = "in_progress" // Work underway
	StatusCompleted  Status = "completed"   // Work finished
	StatusArchived   Status = "archived"    // Shelved, no longer active
)

// AllStatuses returns all valid status values.
func AllStatuses() []Status {
	return []Status{
		StatusPending,
		StatusInProgress,
		StatusCompleted,
		StatusArchived,
	}
}

// transitions defines the allowed status transitions.
// Flow: pending → in_progress → completed
//
//	└────────┴────→ archived
//
// completed and archived are terminal. Identity transitions
// (e.g. pending → pending) are not listed and therefore rejected.
var transitions = map[Status][]Status{
	StatusPending:    {StatusInProgress, StatusArchived},
	StatusInProgress: {StatusCompleted, StatusArchived},
	StatusCompleted:  {},
	StatusArchived:   {},
}

// CanTransitionTo returns true if the status can transition to the target status.
func (s Status) CanTransitionTo(target Status) bool {
	allowed, ok := transitions[s]
	if !ok {
		return false
	}
	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}

// IsFinalized returns true if the status is a terminal state.
func (s Status) IsFinalized() bool {
	return s == StatusCompleted || s == StatusArchived
}

// IsActive returns true unless the ticket has been archived.
func (s Status) IsActive() bool {
	return s != StatusArchived
}

// IsValid returns true if the status is a known valid value.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusArchived:
		return true
	default:
		return false
	}
}

// Display returns a human-readable representation of the status.
func (s Status) Display() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusInProgress:
		return "In Progress"
	case StatusCompleted:
		return "Completed"
	case StatusArchived:
		return "Archived"
	default:
		return string(s)
	}
}

// ParseStatus validates a raw status string.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
	return s, nil
}
