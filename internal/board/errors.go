package board

import "errors"

// Store errors
var (
	ErrUnknownTicket = errors.New("ticket not found in store")
	ErrUnknownStatus = errors.New("unknown status bucket")
)

// Drag session errors
var (
	// ErrDragInProgress indicates Start was called while a session was
	// already active. The UI's pointer capture makes this unreachable in
	// practice; it is a precondition check, not a recoverable state.
	ErrDragInProgress = errors.New("a drag session is already active")

	// ErrNoActiveDrag indicates a hover, drop or cancel arrived with no
	// active session.
	ErrNoActiveDrag = errors.New("no active drag session")

	// ErrCommitResolved indicates Confirm or Fail was called on a commit
	// that has already been resolved.
	ErrCommitResolved = errors.New("commit already resolved")
)
