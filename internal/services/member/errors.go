package member

import "errors"

// Member-related errors
var (
	// Validation errors
	ErrEmptyName    = errors.New("name cannot be empty")
	ErrNameTooLong  = errors.New("name cannot exceed 255 characters")
	ErrInvalidEmail = errors.New("invalid email address")
	ErrEmailTaken   = errors.New("email is already in use")

	// Business logic errors
	ErrMemberNotFound  = errors.New("member not found")
	ErrProjectNotFound = errors.New("project not found")
	ErrTeamNotFound    = errors.New("team not found")
)
