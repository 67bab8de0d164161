package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kanriapp/kanri/internal/models"
)

// statusLabels maps workflow statuses to column headings.
var statusLabels = map[models.Status]string{
	models.StatusBacklog:    "Backlog",
	models.StatusTodo:       "To Do",
	models.StatusInProgress: "In Progress",
	models.StatusDone:       "Done",
}

// View renders the current state of the application
// This implements the "View" part of the Model-View-Update pattern
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.loading {
		return TitleStyle.Render("kanri") + "\n\n  Loading board..."
	}

	switch m.mode {
	case ModeForm:
		return m.viewForm()
	case ModeDetail:
		return m.detail
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("kanri"))
	b.WriteString("\n")
	b.WriteString(m.viewBoard())
	b.WriteString("\n")

	if m.mode == ModeConfirmDelete {
		b.WriteString(NotificationStyle.Render("Delete this ticket? (y/n)"))
	} else if m.notification != "" {
		b.WriteString(NotificationStyle.Render(m.notification))
	} else {
		b.WriteString(HelpStyle.Render(m.helpLine()))
	}
	return b.String()
}

func (m Model) viewBoard() string {
	columns := make([]string, 0, len(models.Statuses()))
	for col, status := range models.Statuses() {
		columns = append(columns, m.viewColumn(col, status))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}

func (m Model) viewColumn(col int, status models.Status) string {
	bucket := m.store.Bucket(status)

	var b strings.Builder
	b.WriteString(ColumnTitleStyle.Render(fmt.Sprintf("%s (%d)", statusLabels[status], len(bucket))))
	b.WriteString("\n")

	for row, t := range bucket {
		style := CardStyle
		switch {
		case m.mode == ModeMove && t.ID == m.drag.TicketID():
			style = GrabbedCardStyle
		case m.mode != ModeMove && col == m.col && row == m.row:
			style = SelectedCardStyle
		}
		b.WriteString(style.Render(cardText(t)))
		b.WriteString("\n")
	}
	return ColumnStyle.Render(b.String())
}

func cardText(t *models.Ticket) string {
	line := t.Title
	meta := fmt.Sprintf("P%d", t.Priority)
	if t.AssignedTo != nil {
		meta += " · " + t.AssignedTo.Name
	}
	return line + "\n" + meta
}

func (m Model) helpLine() string {
	if m.mode == ModeMove {
		return "hjkl: move ticket · enter: drop · esc: put back"
	}
	return "hjkl: navigate · space: grab · a: add · e: edit · enter: view · d: delete · r: refresh · q: quit"
}
