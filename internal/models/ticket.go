package models

import "time"

// Status identifies which board column a ticket lives in.
type Status string

// Workflow statuses, in board order.
const (
	StatusBacklog    Status = "backlog"
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

// Statuses lists all workflow statuses in board order.
// The board renders one column per entry.
func Statuses() []Status {
	return []Status{StatusBacklog, StatusTodo, StatusInProgress, StatusDone}
}

// IsValid reports whether s is one of the known workflow statuses.
func (s Status) IsValid() bool {
	switch s {
	case StatusBacklog, StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Ticket represents a single ticket on the kanban board.
// IDs are opaque strings (UUID v4, assigned by the server) and stay stable
// across reorders and status changes. CreatedAt/UpdatedAt are server-assigned.
type Ticket struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      Status     `json:"status"`
	Priority    int        `json:"priority"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Team        *TeamRef   `json:"team,omitempty"`
	AssignedTo  *MemberRef `json:"assignedTo,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	// ProjectID scopes the ticket server-side; it is not part of the
	// wire shape (list filtering uses the projectId query parameter).
	ProjectID int `json:"-"`
}

// Clone returns a deep copy of the ticket. Board snapshots rely on clones
// being values, never aliases into live state.
func (t *Ticket) Clone() *Ticket {
	c := *t
	if t.DueDate != nil {
		d := *t.DueDate
		c.DueDate = &d
	}
	if t.Team != nil {
		tm := *t.Team
		c.Team = &tm
	}
	if t.AssignedTo != nil {
		a := *t.AssignedTo
		c.AssignedTo = &a
	}
	return &c
}

// TeamRef is the lightweight team reference embedded in a ticket.
type TeamRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// MemberRef is the lightweight member reference embedded in a ticket
// and returned by the assignee suggestion endpoint.
type MemberRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
