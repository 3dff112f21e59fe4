package domain

import "fmt"

// Priority represents the urgency of a ticket.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// AllPriorities returns all valid priority values.
func AllPriorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow}
}

// IsValid returns true if the priority is a known valid value.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// Display returns a human-readable representation of the priority.
func (p Priority) Display() string {
	switch p {
	case PriorityHigh:
		return "High"
	case PriorityMedium:
		return "Medium"
	case PriorityLow:
		return "Low"
	default:
		return string(p)
	}
}

// ParsePriority validates a raw priority string.
func ParsePriority(raw string) (Priority, error) {
	p := Priority(raw)
	if !p.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPriority, raw)
	}
	return p, nil
}

// Type represents the kind of work a ticket tracks.
type Type string

const (
	TypeFeature Type = "feature"
	TypeBug     Type = "bug"
	TypeTask    Type = "task"
)

// AllTypes returns all valid ticket type values.
func AllTypes() []Type {
	return []Type{TypeFeature, TypeBug, TypeTask}
}

// IsValid returns true if the type is a known valid value.
func (t Type) IsValid() bool {
	switch t {
	case TypeFeature, TypeBug, TypeTask:
		return true
	default:
		return false
	}
}

// ParseType validates a raw ticket type string.
func ParseType(raw string) (Type, error) {
	t := Type(raw)
	if !t.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidType, raw)
	}
	return t, nil
}

// Privacy represents how widely a ticket may be shared.
type Privacy string

const (
	PrivacyLocalOnly Privacy = "local-only"
	PrivacyShareable Privacy = "shareable"
	PrivacyPublic    Privacy = "public"
)

// AllPrivacies returns all valid privacy values.
func AllPrivacies() []Privacy {
	return []Privacy{PrivacyLocalOnly, PrivacyShareable, PrivacyPublic}
}

// IsValid returns true if the privacy level is a known valid value.
func (p Privacy) IsValid() bool {
	switch p {
	case PrivacyLocalOnly, PrivacyShareable, PrivacyPublic:
		return true
	default:
		return false
	}
}

// ParsePrivacy validates a raw privacy level string.
func ParsePrivacy(raw string) (Privacy, error) {
	p := Privacy(raw)
	if !p.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPrivacy, raw)
	}
	return p, nil
}
