package tui

import (
	"errors"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kanriapp/kanri/internal/api"
)

// Update handles all messages and updates the model accordingly
// This implements the "Update" part of the Model-View-Update pattern
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case ModeMove:
			return m.handleMoveMode(msg)
		case ModeForm:
			return m.handleFormMode(msg)
		case ModeDetail:
			return m.handleDetailMode(msg)
		case ModeConfirmDelete:
			return m.handleConfirmDelete(msg)
		default:
			return m.handleNormalMode(msg)
		}

	case ticketsLoadedMsg:
		m.loading = false
		m.store.Load(msg.tickets)
		m.clampRow()
		return m, nil

	case loadFailedMsg:
		m.loading = false
		m.notification = "Could not load the board: " + msg.err.Error()
		return m, nil

	case persistedMsg:
		// Rebind the moved ticket to the server's canonical copy.
		if err := msg.commit.Confirm(msg.ticket); err != nil {
			slog.Error("Confirm after persist failed", "error", err)
		}
		return m, nil

	case persistFailedMsg:
		if err := msg.commit.Fail(); err != nil {
			slog.Error("Rollback failed", "error", err)
		}
		m.clampRow()
		m.notification = persistFailureMessage(msg.err)
		return m, nil

	case ticketSavedMsg:
		m.store.Upsert(msg.ticket)
		m.mode = ModeNormal
		m.closeForm()
		if msg.created {
			m.notification = "Created \"" + msg.ticket.Title + "\""
		}
		return m, nil

	case saveFailedMsg:
		// The form stays open so nothing typed is lost.
		m.notification = persistFailureMessage(msg.err)
		return m, nil

	case ticketDeletedMsg:
		m.pendingDelete = nil
		return m, nil

	case deleteFailedMsg:
		if m.pendingDelete != nil {
			m.store.Restore(*m.pendingDelete)
			m.pendingDelete = nil
		}
		m.clampRow()
		m.notification = persistFailureMessage(msg.err)
		return m, nil

	case SuggestionMsg:
		// The engine guards ordering on its side, but delivery through
		// Program.Send can still interleave; the generation decides.
		if msg.Generation < m.suggestGen {
			return m, nil
		}
		m.suggestGen = msg.Generation
		// Only the form cares; a stale mode switch just drops it.
		if m.mode == ModeForm {
			m.form.suggestion = msg.Member
		}
		return m, nil
	}

	return m, nil
}

// closeForm tears down form state and stops pending suggestion work.
func (m *Model) closeForm() {
	m.form = ticketForm{}
	if m.engine != nil {
		// A blank text change supersedes any in-flight request.
		m.engine.TextChanged("", "")
	}
}

// persistFailureMessage translates an error from the API into the line
// shown under the board.
func persistFailureMessage(err error) string {
	var rerr *api.ReconciliationError
	if errors.As(err, &rerr) {
		return rerr.UserMessage()
	}
	return "Something went wrong: " + err.Error()
}
