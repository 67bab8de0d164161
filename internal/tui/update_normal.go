package tui

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kanriapp/kanri/internal/models"
)

func (m Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notification = ""

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "h", "left":
		if m.col > 0 {
			m.col--
			m.clampRow()
		}
	case "l", "right":
		if m.col < len(models.Statuses())-1 {
			m.col++
			m.clampRow()
		}
	case "j", "down":
		if m.row < len(m.store.Bucket(models.Statuses()[m.col]))-1 {
			m.row++
		}
	case "k", "up":
		if m.row > 0 {
			m.row--
		}

	case " ":
		// Grab the ticket under the cursor.
		t := m.selected()
		if t == nil {
			return m, nil
		}
		if err := m.drag.Start(t.ID); err != nil {
			slog.Error("Grab failed", "id", t.ID, "error", err)
			return m, nil
		}
		m.mode = ModeMove

	case "a":
		m.mode = ModeForm
		m.form = newTicketForm()
		m.form.status = models.Statuses()[m.col]

	case "e":
		t := m.selected()
		if t == nil {
			return m, nil
		}
		m.mode = ModeForm
		m.form = formFromTicket(t)

	case "enter":
		t := m.selected()
		if t == nil {
			return m, nil
		}
		m.mode = ModeDetail
		m.detail = renderTicketDetail(t)

	case "d":
		t := m.selected()
		if t == nil {
			return m, nil
		}
		m.mode = ModeConfirmDelete
		m.confirmID = t.ID

	case "r":
		m.loading = true
		return m, m.loadTicketsCmd()
	}

	return m, nil
}

func (m Model) handleDetailMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "enter":
		m.mode = ModeNormal
		m.detail = ""
	}
	return m, nil
}

// handleConfirmDelete applies the delete optimistically on "y": the
// ticket vanishes immediately and the pre-delete snapshot is kept so a
// server failure can put it back.
func (m Model) handleConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y":
		id := m.confirmID
		m.confirmID = ""
		m.mode = ModeNormal

		snap := m.store.Snapshot()
		if err := m.store.Remove(id); err != nil {
			slog.Error("Local delete failed", "id", id, "error", err)
			return m, nil
		}
		m.pendingDelete = &snap
		m.clampRow()
		return m, m.deleteCmd(id)

	case "n", "esc", "q":
		m.confirmID = ""
		m.mode = ModeNormal
	}
	return m, nil
}
