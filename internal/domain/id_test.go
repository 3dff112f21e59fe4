package domain

import (
	"strings"
	"testing"
	"time"
)

func TestValidateID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"single char", "a", false},
		{"alphanumeric", "abc123XYZ", false},
		{"max length", strings.Repeat("a", MaxIDLength), false},
		{"empty", "", true},
		{"too long", strings.Repeat("a", MaxIDLength+1), true},
		{"space", "a b", true},
		{"dash", "a-b", true},
		{"unicode", "ティケット", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
		})
	}
}

func TestGenerateID_Valid(t *testing.T) {
	id := GenerateID()
	if err := ValidateID(id); err != nil {
		t.Errorf("GenerateID() = %q, invalid: %v", id, err)
	}
}

func TestGenerateID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := GenerateID()
		if seen[id] {
			t.Fatalf("duplicate id %q after %d generations", id, i)
		}
		seen[id] = true
	}
}

func TestGenerateID_Sortable(t *testing.T) {
	first := GenerateID()
	time.Sleep(20 * time.Millisecond)
	second := GenerateID()

	if !(first < second) {
		t.Errorf("ids should sort in creation order: %q then %q", first, second)
	}
}
