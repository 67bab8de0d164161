// Package suggest debounces ticket-form text changes and fetches a
// non-blocking "who should work on this" hint from the server.
package suggest

import (
	"context"
	"sync"
	"time"

	"github.com/kanriapp/kanri/internal/models"
)

// DefaultWindow is the inactivity window before a suggestion request is
// issued.
const DefaultWindow = 500 * time.Millisecond

// Suggester is the network half the engine calls after the debounce window
// elapses. *api.Client satisfies it.
type Suggester interface {
	SuggestAssignee(ctx context.Context, title, description string, projectID int) (*models.MemberRef, error)
}

// Suggestion is delivered to the sink when a response for the latest
// request arrives. A nil Member clears the suggestion panel.
type Suggestion struct {
	Member     *models.MemberRef
	Generation uint64
}

// Engine watches a ticket form's (title, description) pair. Every change
// restarts a single delay timer; only after the window passes with no
// further change is one request issued, and only the response to the
// latest request may reach the sink. Responses to superseded requests are
// discarded on arrival ("last request wins"), not aborted at the transport
// level. Request failures are swallowed: the suggestion is advisory and
// never blocks ticket submission.
type Engine struct {
	client Suggester
	window time.Duration
	sink   func(Suggestion)

	mu         sync.Mutex
	timer      *time.Timer
	generation uint64
	projectID  int
	closed     bool
}

// NewEngine creates an engine delivering results to sink. The sink is
// called from the engine's own goroutines; a TUI wraps it in a program
// Send. A non-positive window falls back to DefaultWindow.
func NewEngine(client Suggester, window time.Duration, sink func(Suggestion)) *Engine {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Engine{client: client, window: window, sink: sink}
}

// SetProject scopes subsequent requests to a project (0 for all members).
func (e *Engine) SetProject(projectID int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.projectID = projectID
}

// TextChanged notes a change to the form text and restarts the delay
// timer. Each call supersedes all earlier ones.
func (e *Engine) TextChanged(title, description string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}

	e.generation++
	gen := e.generation
	projectID := e.projectID

	if e.timer != nil {
		e.timer.Stop()
	}
	e.timer = time.AfterFunc(e.window, func() {
		e.fire(gen, title, description, projectID)
	})
}

// fire issues the request for generation gen, unless a newer change
// already superseded it by the time the timer went off.
func (e *Engine) fire(gen uint64, title, description string, projectID int) {
	e.mu.Lock()
	if e.closed || gen != e.generation {
		e.mu.Unlock()
		return
	}
	e.mu.Unlock()

	member, err := e.client.SuggestAssignee(context.Background(), title, description, projectID)
	if err != nil {
		// Advisory only: show nothing rather than surfacing an error.
		member = nil
	}

	e.mu.Lock()
	stale := e.closed || gen != e.generation
	e.mu.Unlock()
	if stale {
		return
	}
	e.sink(Suggestion{Member: member, Generation: gen})
}

// Close stops the timer and drops any responses still in flight.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	if e.timer != nil {
		e.timer.Stop()
	}
}
