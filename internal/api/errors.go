package api

import "fmt"

// FailureKind classifies a reconciliation failure for user-facing messaging.
type FailureKind int

const (
	// FailureValidation covers 4xx responses other than 404: the server
	// rejected the payload.
	FailureValidation FailureKind = iota
	// FailureNotFound means the ticket no longer exists server-side
	// (removed concurrently by another actor).
	FailureNotFound
	// FailureTransport covers connectivity problems, timeouts and 5xx
	// responses.
	FailureTransport
)

func (k FailureKind) String() string {
	switch k {
	case FailureValidation:
		return "validation"
	case FailureNotFound:
		return "not_found"
	case FailureTransport:
		return "transport"
	}
	return "unknown"
}

// ReconciliationError reports a failed persist. It carries the id of the
// ticket whose optimistic change must be rolled back; the client never
// rolls back or retries on its own, the caller decides.
type ReconciliationError struct {
	TicketID   string
	Kind       FailureKind
	StatusCode int // 0 for transport-level failures
	Err        error
}

func (e *ReconciliationError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("persist ticket %s: %s (HTTP %d)", e.TicketID, e.Kind, e.StatusCode)
	}
	return fmt.Sprintf("persist ticket %s: %s: %v", e.TicketID, e.Kind, e.Err)
}

func (e *ReconciliationError) Unwrap() error { return e.Err }

// UserMessage returns the message shown in the board's notification line.
func (e *ReconciliationError) UserMessage() string {
	switch e.Kind {
	case FailureValidation:
		return "The server rejected the change; the board was restored."
	case FailureNotFound:
		return "That ticket no longer exists on the server."
	default:
		return "Could not reach the server; the board was restored."
	}
}
