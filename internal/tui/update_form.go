package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kanriapp/kanri/internal/models"
)

// handleFormMode runs the ticket dialog. Keystrokes flow into the focused
// input; every text change notifies the suggestion engine, which debounces
// and answers later via SuggestionMsg.
func (m Model) handleFormMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeNormal
		m.closeForm()
		return m, nil

	case "tab", "shift+tab":
		m.form.toggleFocus()
		return m, nil

	case "ctrl+a":
		m.form.acceptSuggestion()
		return m, nil

	case "ctrl+p":
		m.form.priority++
		if m.form.priority > models.PriorityHighest {
			m.form.priority = models.PriorityLowest
		}
		return m, nil

	case "ctrl+s":
		if m.form.title() == "" {
			m.notification = "A ticket needs a title"
			return m, nil
		}
		return m, m.saveCmd(m.form)
	}

	prevTitle, prevDesc := m.form.title(), m.form.description()

	var cmd tea.Cmd
	if m.form.focusDesc {
		m.form.descInput, cmd = m.form.descInput.Update(msg)
	} else {
		m.form.titleInput, cmd = m.form.titleInput.Update(msg)
	}

	// Cursor movement and other non-editing keys land here too; only an
	// actual text change restarts the engine's debounce window.
	if m.engine != nil && (m.form.title() != prevTitle || m.form.description() != prevDesc) {
		m.engine.TextChanged(m.form.title(), m.form.description())
	}
	return m, cmd
}
