package ticket

import "errors"

// Ticket-related errors
var (
	// Validation errors
	ErrEmptyTitle      = errors.New("ticket title cannot be empty")
	ErrTitleTooLong    = errors.New("ticket title cannot exceed 255 characters")
	ErrInvalidStatus   = errors.New("invalid ticket status")
	ErrInvalidPriority = errors.New("ticket priority must be between 1 and 5")

	// Business logic errors
	ErrTicketNotFound  = errors.New("ticket not found")
	ErrProjectNotFound = errors.New("project not found")
	ErrTeamNotFound    = errors.New("team not found")
	ErrMemberNotFound  = errors.New("assigned member not found")
)
