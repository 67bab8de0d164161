package tui

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kanriapp/kanri/internal/models"
)

// handleMoveMode drives the drag session: hjkl hovers the grabbed ticket
// around the board, enter drops it, esc puts everything back.
func (m Model) handleMoveMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	status, index, ok := m.store.IndexOf(m.drag.TicketID())
	if !ok {
		// The ticket vanished under us (should not happen); bail out.
		if err := m.drag.Cancel(); err != nil {
			slog.Error("Cancel after lost ticket failed", "error", err)
		}
		m.mode = ModeNormal
		return m, nil
	}
	col := statusIndex(status)

	switch msg.String() {
	case "h", "left":
		if col > 0 {
			m.hover(models.Statuses()[col-1], index)
		}
	case "l", "right":
		if col < len(models.Statuses())-1 {
			m.hover(models.Statuses()[col+1], index)
		}
	case "j", "down":
		m.hover(status, index+1)
	case "k", "up":
		if index > 0 {
			m.hover(status, index-1)
		}

	case "enter":
		commit, err := m.drag.Drop()
		if err != nil {
			slog.Error("Drop failed", "error", err)
			m.mode = ModeNormal
			return m, nil
		}
		m.mode = ModeNormal
		if commit == nil {
			// Within-column reorder: purely cosmetic, nothing to save.
			return m, nil
		}
		return m, m.persistCmd(commit)

	case "esc":
		if err := m.drag.Cancel(); err != nil {
			slog.Error("Cancel failed", "error", err)
		}
		m.mode = ModeNormal
		m.clampRow()
	}

	return m, nil
}

// hover moves the grabbed ticket and keeps the cursor on it.
func (m *Model) hover(status models.Status, index int) {
	if err := m.drag.Hover(status, index); err != nil {
		slog.Error("Hover failed", "error", err)
		return
	}
	s, i, ok := m.store.IndexOf(m.drag.TicketID())
	if ok {
		m.col = statusIndex(s)
		m.row = i
	}
}

func statusIndex(status models.Status) int {
	for i, s := range models.Statuses() {
		if s == status {
			return i
		}
	}
	return 0
}
