package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/kanriapp/kanri/internal/models"
)

func (m Model) viewForm() string {
	f := &m.form

	header := "New Ticket"
	if f.editingID != "" {
		header = "Edit Ticket"
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render(header))
	b.WriteString("\n\n")
	b.WriteString(f.titleInput.View())
	b.WriteString("\n\n")
	b.WriteString(f.descInput.View())
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Status: %s   Priority: P%d", statusLabels[f.status], f.priority))
	b.WriteString("\n")

	switch {
	case f.assignee != nil:
		b.WriteString("Assignee: " + f.assignee.Name)
	case f.suggestion != nil:
		b.WriteString(SuggestionStyle.Render(
			fmt.Sprintf("Suggested: %s (ctrl+a to accept)", f.suggestion.Name)))
	default:
		b.WriteString("Assignee: none")
	}
	b.WriteString("\n\n")
	b.WriteString(HelpStyle.Render("tab: switch field · ctrl+p: priority · ctrl+s: save · esc: cancel"))

	box := FormBoxStyle.Width(max(40, m.width/2)).Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// renderTicketDetail renders one ticket as markdown for the detail view.
func renderTicketDetail(t *models.Ticket) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", t.Title)
	fmt.Fprintf(&b, "**Status:** %s · **Priority:** P%d\n\n", statusLabels[t.Status], t.Priority)
	if t.AssignedTo != nil {
		fmt.Fprintf(&b, "**Assignee:** %s\n\n", t.AssignedTo.Name)
	}
	if t.DueDate != nil {
		fmt.Fprintf(&b, "**Due:** %s\n\n", t.DueDate.Format("2006-01-02"))
	}
	if t.Description != "" {
		b.WriteString(t.Description)
		b.WriteString("\n")
	}

	out, err := glamour.Render(b.String(), "dark")
	if err != nil {
		return b.String()
	}
	return out
}
