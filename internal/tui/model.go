// Package tui is the terminal board client: a bubbletea program rendering
// the four-column board, with keyboard-driven ticket moves reconciled
// against the kanrid API and rolled back when persistence fails.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kanriapp/kanri/internal/api"
	"github.com/kanriapp/kanri/internal/board"
	"github.com/kanriapp/kanri/internal/models"
)

// Mode is the input mode the board is in.
type Mode int

const (
	// ModeNormal navigates the board.
	ModeNormal Mode = iota
	// ModeMove carries a grabbed ticket between columns.
	ModeMove
	// ModeForm edits or creates a ticket.
	ModeForm
	// ModeDetail shows one ticket rendered as markdown.
	ModeDetail
	// ModeConfirmDelete waits for a y/n on a pending delete.
	ModeConfirmDelete
)

// Client is the slice of the API client the board needs. *api.Client
// satisfies it; tests substitute a fake.
type Client interface {
	ListTickets(ctx context.Context, projectID int) ([]*models.Ticket, error)
	CreateTicket(ctx context.Context, draft api.TicketDraft) (*models.Ticket, error)
	PersistStatusChange(ctx context.Context, t *models.Ticket) (*models.Ticket, error)
	DeleteTicket(ctx context.Context, id string) error
}

// SuggestionNotifier is the slice of the suggestion engine the board
// needs. *suggest.Engine satisfies it; tests substitute a recorder.
type SuggestionNotifier interface {
	SetProject(projectID int)
	TextChanged(title, description string)
}

// Model represents the application state for the TUI
type Model struct {
	client Client
	engine SuggestionNotifier

	store *board.Store
	drag  *board.DragSession

	projectID int
	mode      Mode
	col       int // index into models.Statuses()
	row       int
	width     int
	height    int

	loading      bool
	notification string

	form   ticketForm
	detail string

	// Highest suggestion generation applied so far; responses that
	// arrive out of order never replace a newer one.
	suggestGen uint64

	// Set while a delete is in flight so a failure can restore the board.
	pendingDelete *board.Snapshot
	confirmID     string
}

// NewModel creates the board model. The engine may be nil when suggestion
// support is disabled.
func NewModel(client Client, engine SuggestionNotifier, projectID int) Model {
	store := board.NewStore()
	if engine != nil {
		engine.SetProject(projectID)
	}
	return Model{
		client:    client,
		engine:    engine,
		store:     store,
		drag:      board.NewDragSession(store),
		projectID: projectID,
		loading:   true,
	}
}

// Init kicks off the initial board fetch.
// Required by tea.Model interface
func (m Model) Init() tea.Cmd {
	return m.loadTicketsCmd()
}

// selected returns the ticket under the cursor, or nil on an empty column.
func (m Model) selected() *models.Ticket {
	bucket := m.store.Bucket(models.Statuses()[m.col])
	if m.row < 0 || m.row >= len(bucket) {
		return nil
	}
	return bucket[m.row]
}

// clampRow keeps the cursor inside the current column after the board
// changes under it.
func (m *Model) clampRow() {
	n := len(m.store.Bucket(models.Statuses()[m.col]))
	if m.row >= n {
		m.row = n - 1
	}
	if m.row < 0 {
		m.row = 0
	}
}
