package domain

import (
	"errors"
	"testing"
)

func TestParseTicketDrafts(t *testing.T) {
	content := `---
title: Fix login bug
priority: high
type: bug
---
Users cannot login with email.

---
title: Add dark mode
privacy: shareable
---
Theme toggle in settings.
`

	drafts, err := ParseTicketDrafts(content)
	if err != nil {
		t.Fatalf("ParseTicketDrafts() error = %v", err)
	}
	if len(drafts) != 2 {
		t.Fatalf("got %d drafts, want 2", len(drafts))
	}

	first := drafts[0]
	if first.Title != "Fix login bug" {
		t.Errorf("Title = %q", first.Title)
	}
	if first.Priority != PriorityHigh {
		t.Errorf("Priority = %q, want high", first.Priority)
	}
	if first.Type != TypeBug {
		t.Errorf("Type = %q, want bug", first.Type)
	}
	if first.Description != "Users cannot login with email." {
		t.Errorf("Description = %q", first.Description)
	}

	second := drafts[1]
	if second.Title != "Add dark mode" {
		t.Errorf("Title = %q", second.Title)
	}
	if second.Privacy != PrivacyShareable {
		t.Errorf("Privacy = %q, want shareable", second.Privacy)
	}
	if second.Priority != "" {
		t.Errorf("Priority = %q, want unset", second.Priority)
	}
}

func TestParseTicketDrafts_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"empty file", "", ErrEmptyFile},
		{"whitespace only", "  \n\t\n", ErrEmptyFile},
		{"no frontmatter", "just some text", ErrNoTicketsInFile},
		{"missing title", "---\npriority: high\n---\ndesc\n", ErrEmptyTitle},
		{"missing description", "---\ntitle: T\n---\n\n", ErrEmptyDescription},
		{"bad priority", "---\ntitle: T\npriority: urgent\n---\ndesc\n", ErrInvalidPriority},
		{"bad type", "---\ntitle: T\ntype: epic\n---\ndesc\n", ErrInvalidType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTicketDrafts(tt.content)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ParseTicketDrafts() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseTicketDrafts_SecondBlockErrorNamesIndex(t *testing.T) {
	content := "---\ntitle: Good\n---\ndesc\n\n---\ntitle: Bad\npriority: nope\n---\ndesc\n"
	_, err := ParseTicketDrafts(content)
	if err == nil {
		t.Fatal("expected error")
	}
	if got := err.Error(); got[:8] != "ticket 2" {
		t.Errorf("error = %q, want \"ticket 2\" prefix", got)
	}
}
