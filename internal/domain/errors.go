package domain

import "errors"

// Domain errors.
var (
	ErrTicketNotFound     = errors.New("ticket not found")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrEmptyTitle         = errors.New("title cannot be empty")
	ErrTitleTooLong       = errors.New("title too long")
	ErrEmptyDescription   = errors.New("description cannot be empty")
	ErrDescriptionTooLong = errors.New("description too long")
	ErrInvalidID          = errors.New("invalid ticket id")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrInvalidPriority    = errors.New("invalid priority")
	ErrInvalidType        = errors.New("invalid ticket type")
	ErrInvalidPrivacy     = errors.New("invalid privacy level")
	ErrEmptyFile          = errors.New("file is empty")
	ErrNoTicketsInFile    = errors.New("no tickets found in file")
	ErrNoFieldsToUpdate   = errors.New("no fields to update")
)

// IsValidation reports whether err is one of the input validation errors.
// Storage and not-found failures are excluded.
func IsValidation(err error) bool {
	for _, target := range []error{
		ErrEmptyTitle, ErrTitleTooLong,
		ErrEmptyDescription, ErrDescriptionTooLong,
		ErrInvalidID, ErrInvalidStatus, ErrInvalidPriority,
		ErrInvalidType, ErrInvalidPrivacy,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
