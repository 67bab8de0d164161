// Package board owns the client-side view of the kanban board: an ordered
// in-memory collection of tickets grouped by status, and the drag session
// state machine that mutates it optimistically.
package board

import (
	"github.com/kanriapp/kanri/internal/models"
)

// Store is the single in-memory source of truth for the client's view of
// tickets. It keeps a mapping from ticket id to ticket plus a derived
// per-status ordering. The store does no I/O; the remote service is the
// authority whenever a write is confirmed, and confirmed tickets are folded
// back in through Upsert.
//
// The store is not safe for concurrent use. It is owned by the TUI update
// loop and only ever touched from there; network results arrive as messages,
// never as direct calls from other goroutines.
type Store struct {
	tickets map[string]*models.Ticket
	buckets map[models.Status][]string
}

// Snapshot is an immutable copy of the store's state, sufficient to restore
// it later. Snapshots are values: restoring one and then mutating the store
// never corrupts the snapshot, and a snapshot survives any number of
// unrelated mutations between capture and restore.
type Snapshot struct {
	tickets map[string]*models.Ticket
	buckets map[models.Status][]string
}

// NewStore creates an empty store with one bucket per workflow status.
func NewStore() *Store {
	s := &Store{}
	s.reset()
	return s
}

func (s *Store) reset() {
	s.tickets = make(map[string]*models.Ticket)
	s.buckets = make(map[models.Status][]string, len(models.Statuses()))
	for _, st := range models.Statuses() {
		s.buckets[st] = nil
	}
}

// Load replaces the whole collection. Used after the initial board fetch.
// Tickets arrive in server order and keep that relative order within their
// status bucket.
func (s *Store) Load(tickets []*models.Ticket) {
	s.reset()
	for _, t := range tickets {
		if _, ok := s.tickets[t.ID]; ok {
			continue // duplicate id in payload, first one wins
		}
		c := t.Clone()
		s.tickets[c.ID] = c
		s.buckets[c.Status] = append(s.buckets[c.Status], c.ID)
	}
}

// Len returns the total number of tickets across all buckets.
func (s *Store) Len() int {
	return len(s.tickets)
}

// Get returns the ticket with the given id. The returned ticket is a copy;
// mutations to it never reach the store except through Upsert.
func (s *Store) Get(id string) (*models.Ticket, bool) {
	t, ok := s.tickets[id]
	if !ok {
		return nil, false
	}
	return t.Clone(), true
}

// StatusOf returns the status bucket the ticket currently lives in.
func (s *Store) StatusOf(id string) (models.Status, bool) {
	t, ok := s.tickets[id]
	if !ok {
		return "", false
	}
	return t.Status, true
}

// IndexOf returns the ticket's status and its position within that bucket.
func (s *Store) IndexOf(id string) (models.Status, int, bool) {
	t, ok := s.tickets[id]
	if !ok {
		return "", 0, false
	}
	for i, bid := range s.buckets[t.Status] {
		if bid == id {
			return t.Status, i, true
		}
	}
	// Unreachable as long as the bucket invariant holds.
	return t.Status, 0, false
}

// Bucket returns the tickets in the given status bucket, in order.
// The slice and its tickets are copies.
func (s *Store) Bucket(status models.Status) []*models.Ticket {
	ids := s.buckets[status]
	out := make([]*models.Ticket, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.tickets[id].Clone())
	}
	return out
}

// Upsert inserts or replaces a ticket by id. An existing ticket whose status
// is unchanged keeps its position in the bucket; a new ticket, or one whose
// status changed, is appended to the end of its status bucket.
func (s *Store) Upsert(t *models.Ticket) {
	c := t.Clone()
	prev, ok := s.tickets[c.ID]
	if ok && prev.Status == c.Status {
		s.tickets[c.ID] = c
		return
	}
	if ok {
		s.buckets[prev.Status] = removeID(s.buckets[prev.Status], c.ID)
	}
	s.tickets[c.ID] = c
	s.buckets[c.Status] = append(s.buckets[c.Status], c.ID)
}

// Move removes the ticket from its current bucket and splices it into the
// target bucket at targetIndex, clamped to [0, len(bucket)]. Source and
// target may be the same bucket, in which case the operation degenerates to
// a within-bucket reorder. Repeating the same move is a no-op after the
// first application.
func (s *Store) Move(id string, target models.Status, targetIndex int) error {
	t, ok := s.tickets[id]
	if !ok {
		return ErrUnknownTicket
	}
	if !target.IsValid() {
		return ErrUnknownStatus
	}

	s.buckets[t.Status] = removeID(s.buckets[t.Status], id)

	bucket := s.buckets[target]
	if targetIndex < 0 {
		targetIndex = 0
	}
	if targetIndex > len(bucket) {
		targetIndex = len(bucket)
	}
	bucket = append(bucket, "")
	copy(bucket[targetIndex+1:], bucket[targetIndex:])
	bucket[targetIndex] = id
	s.buckets[target] = bucket

	t.Status = target
	return nil
}

// Remove deletes the ticket from its bucket.
func (s *Store) Remove(id string) error {
	t, ok := s.tickets[id]
	if !ok {
		return ErrUnknownTicket
	}
	s.buckets[t.Status] = removeID(s.buckets[t.Status], id)
	delete(s.tickets, id)
	return nil
}

// Snapshot captures the current state as a value. The copy is deep: tickets
// are cloned and bucket orderings are copied, so later store mutations leave
// the snapshot untouched.
func (s *Store) Snapshot() Snapshot {
	snap := Snapshot{
		tickets: make(map[string]*models.Ticket, len(s.tickets)),
		buckets: make(map[models.Status][]string, len(s.buckets)),
	}
	for id, t := range s.tickets {
		snap.tickets[id] = t.Clone()
	}
	for st, ids := range s.buckets {
		snap.buckets[st] = append([]string(nil), ids...)
	}
	return snap
}

// Restore replaces the live state wholesale with a prior snapshot. The
// snapshot itself stays valid and can be restored again.
func (s *Store) Restore(snap Snapshot) {
	s.reset()
	for id, t := range snap.tickets {
		s.tickets[id] = t.Clone()
	}
	for st, ids := range snap.buckets {
		s.buckets[st] = append([]string(nil), ids...)
	}
}

func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i:i], ids[i+1:]...)
		}
	}
	return ids
}
