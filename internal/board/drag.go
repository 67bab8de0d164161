package board

import (
	"github.com/kanriapp/kanri/internal/models"
)

// DragState names the states of a drag session's lifecycle.
type DragState int

const (
	// DragIdle means no drag is in progress.
	DragIdle DragState = iota
	// DragActive means a ticket has been grabbed and is being moved
	// optimistically through the store.
	DragActive
)

func (s DragState) String() string {
	switch s {
	case DragIdle:
		return "idle"
	case DragActive:
		return "active"
	}
	return "unknown"
}

// DragSession tracks one move of a single ticket from grab to drop or
// cancel. It drives the store optimistically while the drag is active and
// holds the one rollback anchor for the whole drag: the snapshot taken at
// Start, never refreshed mid-drag, so any number of intermediate hovers
// roll back atomically to the pre-drag state.
//
// At most one drag is active at a time; Start enforces that as a
// precondition. Persistence is not part of the session: Drop hands the
// in-flight status change off as a Commit and returns the session to idle,
// so the next drag can begin while the previous commit is still waiting on
// the server.
type DragSession struct {
	store *Store

	state        DragState
	ticketID     string
	originStatus models.Status
	snapshot     Snapshot
}

// NewDragSession creates an idle session bound to the given store.
func NewDragSession(store *Store) *DragSession {
	return &DragSession{store: store}
}

// State returns the session's current state.
func (d *DragSession) State() DragState { return d.state }

// TicketID returns the id of the ticket being dragged, or "" when idle.
func (d *DragSession) TicketID() string {
	if d.state == DragIdle {
		return ""
	}
	return d.ticketID
}

// OriginStatus returns the dragged ticket's status at drag-start.
func (d *DragSession) OriginStatus() models.Status { return d.originStatus }

// Start begins a drag of the given ticket. It captures the ticket's current
// status and a full store snapshot as the rollback anchor.
func (d *DragSession) Start(ticketID string) error {
	if d.state != DragIdle {
		return ErrDragInProgress
	}
	status, ok := d.store.StatusOf(ticketID)
	if !ok {
		return ErrUnknownTicket
	}
	d.ticketID = ticketID
	d.originStatus = status
	d.snapshot = d.store.Snapshot()
	d.state = DragActive
	return nil
}

// Hover applies the candidate position implied by the current drag target,
// moving the ticket optimistically. It may fire many times per drag and is
// idempotent: hovering the same target twice produces no additional change.
func (d *DragSession) Hover(status models.Status, index int) error {
	if d.state != DragActive {
		return ErrNoActiveDrag
	}
	return d.store.Move(d.ticketID, status, index)
}

// Drop ends the drag over a valid target and returns the session to idle.
// If the ticket's status is back at its origin the commit is nil and
// nothing needs persisting: a pure within-column reorder is visual only,
// the remote contract persists status transitions alone. Otherwise the
// returned Commit carries the ticket to persist and the rollback anchor;
// the caller sends the ticket through the reconciliation client and
// reports back with Commit.Confirm or Commit.Fail. The session itself is
// free for the next drag immediately.
func (d *DragSession) Drop() (*Commit, error) {
	if d.state != DragActive {
		return nil, ErrNoActiveDrag
	}
	d.state = DragIdle
	final, ok := d.store.StatusOf(d.ticketID)
	if !ok {
		// The ticket vanished mid-drag (e.g. removed by a concurrent
		// refresh); nothing to persist, nothing to keep.
		return nil, ErrUnknownTicket
	}
	if final == d.originStatus {
		return nil, nil
	}
	t, _ := d.store.Get(d.ticketID)
	return &Commit{store: d.store, ticket: t, snapshot: d.snapshot}, nil
}

// Cancel ends the drag with no valid drop target: the store is restored to
// the pre-drag snapshot and no network call is made.
func (d *DragSession) Cancel() error {
	if d.state != DragActive {
		return ErrNoActiveDrag
	}
	d.store.Restore(d.snapshot)
	d.state = DragIdle
	return nil
}

// Commit is the detached in-flight half of a drop: the ticket whose status
// change is being persisted, plus the pre-drag snapshot it rolls back to
// on failure. It is independent of the session that produced it, so a new
// drag can start while a commit is still unresolved. Exactly one of
// Confirm or Fail resolves it; a second call is a no-op error.
type Commit struct {
	store    *Store
	ticket   *models.Ticket
	snapshot Snapshot
	resolved bool
}

// Ticket returns the optimistic ticket awaiting persistence.
func (c *Commit) Ticket() *models.Ticket { return c.ticket }

// Confirm accepts the server's returned ticket as the new truth and
// resolves the commit. The server payload replaces the optimistic guess
// wholesale.
func (c *Commit) Confirm(server *models.Ticket) error {
	if c.resolved {
		return ErrCommitResolved
	}
	c.resolved = true
	c.store.Upsert(server)
	return nil
}

// Fail rolls the store back to the pre-drag snapshot after a failed
// persist and resolves the commit. The caller surfaces the error to the
// user; the commit never retries on its own.
func (c *Commit) Fail() error {
	if c.resolved {
		return ErrCommitResolved
	}
	c.resolved = true
	c.store.Restore(c.snapshot)
	return nil
}
