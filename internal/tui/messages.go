package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kanriapp/kanri/internal/board"
	"github.com/kanriapp/kanri/internal/models"
	"github.com/kanriapp/kanri/internal/suggest"
)

// Messages produced by network commands. Each command runs outside the
// update loop and reports back as exactly one message.
type (
	ticketsLoadedMsg struct{ tickets []*models.Ticket }
	loadFailedMsg    struct{ err error }

	persistedMsg struct {
		commit *board.Commit
		ticket *models.Ticket
	}
	persistFailedMsg struct {
		commit *board.Commit
		err    error
	}

	ticketSavedMsg struct {
		ticket  *models.Ticket
		created bool
	}
	saveFailedMsg struct{ err error }

	ticketDeletedMsg struct{ id string }
	deleteFailedMsg  struct {
		id  string
		err error
	}
)

// SuggestionMsg carries a debounced assignee suggestion into the update
// loop. The engine's sink wraps its result in this and hands it to
// Program.Send.
type SuggestionMsg suggest.Suggestion

func (m Model) loadTicketsCmd() tea.Cmd {
	client, projectID := m.client, m.projectID
	return func() tea.Msg {
		tickets, err := client.ListTickets(context.Background(), projectID)
		if err != nil {
			return loadFailedMsg{err}
		}
		return ticketsLoadedMsg{tickets}
	}
}

func (m Model) persistCmd(commit *board.Commit) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		updated, err := client.PersistStatusChange(context.Background(), commit.Ticket())
		if err != nil {
			return persistFailedMsg{commit, err}
		}
		return persistedMsg{commit, updated}
	}
}

func (m Model) deleteCmd(id string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		if err := client.DeleteTicket(context.Background(), id); err != nil {
			return deleteFailedMsg{id, err}
		}
		return ticketDeletedMsg{id}
	}
}
