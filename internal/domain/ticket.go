// Package domain contains core business entities and interfaces.
package domain

import (
	"fmt"
	"time"
)

// Ticket represents a tracked unit of work (bug, feature, or task).
// Fields are ordered to minimize memory padding.
type Ticket struct {
	CreatedAt   time.Time // Creation time, immutable
	UpdatedAt   time.Time // Bumped on every mutation, strictly monotonic
	ID          string    // Opaque identifier, immutable
	Title       string
	Description string
	Status      Status
	Priority    Priority
	Type        Type
	Privacy     Privacy
}

// NewTicketInput contains the parameters for creating a ticket. Zero-value
// enum fields take their defaults (medium priority, task type, local-only
// privacy). ID is optional; when empty a sortable id is generated.
type NewTicketInput struct {
	ID          string
	Title       string
	Description string
	Priority    Priority
	Type        Type
	Privacy     Privacy
}

// New creates a ticket with validated fields and default status pending.
// CreatedAt and UpdatedAt are both set to now.
func New(in NewTicketInput, now time.Time) (*Ticket, error) {
	id := in.ID
	if id == "" {
		id = GenerateID()
	}
	if err := ValidateID(id); err != nil {
		return nil, err
	}

	title, err := ValidateTitle(in.Title)
	if err != nil {
		return nil, err
	}
	desc, err := ValidateDescription(in.Description)
	if err != nil {
		return nil, err
	}

	priority := in.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPriority, string(priority))
	}

	typ := in.Type
	if typ == "" {
		typ = TypeTask
	}
	if !typ.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidType, string(typ))
	}

	privacy := in.Privacy
	if privacy == "" {
		privacy = PrivacyLocalOnly
	}
	if !privacy.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPrivacy, string(privacy))
	}

	return &Ticket{
		ID:          id,
		Title:       title,
		Description: desc,
		Status:      StatusPending,
		Priority:    priority,
		Type:        typ,
		Privacy:     privacy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Record is the persisted representation of a ticket.
type Record struct {
	ID          string    `json:"id"          yaml:"id"`
	Title       string    `json:"title"       yaml:"title"`
	Description string    `json:"description" yaml:"description"`
	Status      string    `json:"status"      yaml:"status"`
	Priority    string    `json:"priority"    yaml:"priority"`
	Type        string    `json:"type"        yaml:"type"`
	Privacy     string    `json:"privacy"     yaml:"privacy"`
	CreatedAt   time.Time `json:"createdAt"   yaml:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"   yaml:"updatedAt"`
}

// Reconstitute rebuilds a ticket from a persisted record, applying the
// same field validation as New. The stored id and timestamps are kept.
func Reconstitute(rec Record) (*Ticket, error) {
	if err := ValidateID(rec.ID); err != nil {
		return nil, err
	}
	title, err := ValidateTitle(rec.Title)
	if err != nil {
		return nil, err
	}
	desc, err := ValidateDescription(rec.Description)
	if err != nil {
		return nil, err
	}
	status, err := ParseStatus(rec.Status)
	if err != nil {
		return nil, err
	}
	priority, err := ParsePriority(rec.Priority)
	if err != nil {
		return nil, err
	}
	typ, err := ParseType(rec.Type)
	if err != nil {
		return nil, err
	}
	privacy, err := ParsePrivacy(rec.Privacy)
	if err != nil {
		return nil, err
	}

	return &Ticket{
		ID:          rec.ID,
		Title:       title,
		Description: desc,
		Status:      status,
		Priority:    priority,
		Type:        typ,
		Privacy:     privacy,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}, nil
}

// ToRecord converts the ticket to its persisted representation.
func (t *Ticket) ToRecord() Record {
	return Record{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		Type:        string(t.Type),
		Privacy:     string(t.Privacy),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// touch bumps UpdatedAt. The new value is always strictly greater than
// the previous one, even when the clock has not advanced.
func (t *Ticket) touch(now time.Time) {
	if now.After(t.UpdatedAt) {
		t.UpdatedAt = now
		return
	}
	t.UpdatedAt = t.UpdatedAt.Add(time.Nanosecond)
}

// UpdateTitle replaces the title after validation. The entity is left
// unchanged on failure.
func (t *Ticket) UpdateTitle(raw string, now time.Time) error {
	title, err := ValidateTitle(raw)
	if err != nil {
		return err
	}
	t.Title = title
	t.touch(now)
	return nil
}

// UpdateDescription replaces the description after validation. The entity
// is left unchanged on failure.
func (t *Ticket) UpdateDescription(raw string, now time.Time) error {
	desc, err := ValidateDescription(raw)
	if err != nil {
		return err
	}
	t.Description = desc
	t.touch(now)
	return nil
}

// ChangeStatus moves the ticket to target if the transition is allowed.
// Identity transitions are rejected like any other unlisted pair.
func (t *Ticket) ChangeStatus(target Status, now time.Time) error {
	if !target.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, string(target))
	}
	if !t.Status.CanTransitionTo(target) {
		return fmt.Errorf("%w: %s → %s", ErrInvalidTransition, t.Status, target)
	}
	t.Status = target
	t.touch(now)
	return nil
}

// StartProgress moves the ticket to in_progress.
func (t *Ticket) StartProgress(now time.Time) error {
	return t.ChangeStatus(StatusInProgress, now)
}

// Complete moves the ticket to completed.
func (t *Ticket) Complete(now time.Time) error {
	return t.ChangeStatus(StatusCompleted, now)
}

// Archive moves the ticket to archived.
func (t *Ticket) Archive(now time.Time) error {
	return t.ChangeStatus(StatusArchived, now)
}

// ChangePriority replaces the priority after validation.
func (t *Ticket) ChangePriority(target Priority, now time.Time) error {
	if !target.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, string(target))
	}
	t.Priority = target
	t.touch(now)
	return nil
}

// IsFinalized returns true when the ticket is completed or archived.
func (t *Ticket) IsFinalized() bool {
	return t.Status.IsFinalized()
}

// IsActive returns true unless the ticket has been archived.
func (t *Ticket) IsActive() bool {
	return t.Status.IsActive()
}

// DisplayTitle returns the title truncated to at most max characters.
func (t *Ticket) DisplayTitle(max int) string {
	return DisplayTitle(t.Title, max)
}
