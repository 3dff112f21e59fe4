package domain

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// TicketDraft represents a ticket to be created from file input.
type TicketDraft struct {
	Title       string
	Description string
	Priority    Priority
	Type        Type
	Privacy     Privacy
}

// draftFrontmatter is the YAML frontmatter of one draft block.
type draftFrontmatter struct {
	Title    string `yaml:"title"`
	Priority string `yaml:"priority"`
	Type     string `yaml:"type"`
	Privacy  string `yaml:"privacy"`
}

// ParseTicketDrafts parses a file containing one or more ticket
// definitions. Each definition is a YAML frontmatter block followed by
// the description:
//
//	---
//	title: Fix login bug
//	priority: high
//	type: bug
//	---
//	Users cannot login with email.
//
// All drafts are validated before any is returned; a single bad block
// fails the whole parse.
func ParseTicketDrafts(content string) ([]TicketDraft, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyFile
	}

	blocks := splitDraftBlocks(content)
	if len(blocks) == 0 {
		return nil, ErrNoTicketsInFile
	}

	drafts := make([]TicketDraft, 0, len(blocks))
	for i, block := range blocks {
		draft, err := parseDraftBlock(block)
		if err != nil {
			return nil, fmt.Errorf("ticket %d: %w", i+1, err)
		}
		drafts = append(drafts, draft)
	}

	return drafts, nil
}

// draftBlock is one frontmatter + description pair.
type draftBlock struct {
	frontmatter string
	description string
}

// splitDraftBlocks splits content into frontmatter/description pairs.
// A block starts at a line containing only "---" and its frontmatter ends
// at the next such line.
func splitDraftBlocks(content string) []draftBlock {
	lines := strings.Split(content, "\n")

	var blocks []draftBlock
	i := 0
	for i < len(lines) {
		if strings.TrimRight(lines[i], " \t") != "---" {
			i++
			continue
		}

		// Find the closing fence.
		end := -1
		for j := i + 1; j < len(lines); j++ {
			if strings.TrimRight(lines[j], " \t") == "---" {
				end = j
				break
			}
		}
		if end == -1 {
			break
		}

		frontmatter := strings.Join(lines[i+1:end], "\n")

		// Description runs until the next opening fence or EOF.
		descEnd := len(lines)
		for j := end + 1; j < len(lines); j++ {
			if strings.TrimRight(lines[j], " \t") == "---" {
				descEnd = j
				break
			}
		}
		description := strings.Join(lines[end+1:descEnd], "\n")

		blocks = append(blocks, draftBlock{
			frontmatter: frontmatter,
			description: description,
		})
		i = descEnd
	}

	return blocks
}

// parseDraftBlock decodes one block's frontmatter and validates the draft.
func parseDraftBlock(block draftBlock) (TicketDraft, error) {
	var fm draftFrontmatter
	if err := yaml.Unmarshal([]byte(block.frontmatter), &fm); err != nil {
		return TicketDraft{}, fmt.Errorf("parse frontmatter: %w", err)
	}

	title, err := ValidateTitle(fm.Title)
	if err != nil {
		return TicketDraft{}, err
	}
	description, err := ValidateDescription(block.description)
	if err != nil {
		return TicketDraft{}, err
	}

	draft := TicketDraft{Title: title, Description: description}

	if fm.Priority != "" {
		draft.Priority, err = ParsePriority(fm.Priority)
		if err != nil {
			return TicketDraft{}, err
		}
	}
	if fm.Type != "" {
		draft.Type, err = ParseType(fm.Type)
		if err != nil {
			return TicketDraft{}, err
		}
	}
	if fm.Privacy != "" {
		draft.Privacy, err = ParsePrivacy(fm.Privacy)
		if err != nil {
			return TicketDraft{}, err
		}
	}

	return draft, nil
}
