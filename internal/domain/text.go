package domain

import (
	"fmt"
	"strings"
)

// Field length limits.
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 2000
)

// ValidateTitle trims the title and checks the non-empty and length
// constraints. The trimmed value is returned.
func ValidateTitle(raw string) (string, error) {
	title := strings.TrimSpace(raw)
	if title == "" {
		return "", fmt.Errorf("%w (or whitespace-only)", ErrEmptyTitle)
	}
	if len(title) > MaxTitleLength {
		return "", fmt.Errorf("%w: %d characters (max %d)", ErrTitleTooLong, len(title), MaxTitleLength)
	}
	return title, nil
}

// ValidateDescription trims the description and checks the non-empty and
// length constraints. The trimmed value is returned.
func ValidateDescription(raw string) (string, error) {
	desc := strings.TrimSpace(raw)
	if desc == "" {
		return "", fmt.Errorf("%w (or whitespace-only)", ErrEmptyDescription)
	}
	if len(desc) > MaxDescriptionLength {
		return "", fmt.Errorf("%w: %d characters (max %d)", ErrDescriptionTooLong, len(desc), MaxDescriptionLength)
	}
	return desc, nil
}

// DisplayTitle truncates a title to at most max characters, appending an
// ellipsis when the title is cut. When max leaves no room for the
// ellipsis (1-3), the literal prefix is returned instead.
func DisplayTitle(title string, max int) string {
	if max <= 0 {
		return ""
	}
	if len(title) <= max {
		return title
	}
	if max <= 3 {
		return title[:max]
	}
	return title[:max-3] + "..."
}
