package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kanriapp/kanri/internal/api"
	"github.com/kanriapp/kanri/internal/models"
)

// ticketForm holds the create/edit dialog state. The same form serves
// both; editingID is empty for a create.
type ticketForm struct {
	titleInput textinput.Model
	descInput  textarea.Model
	focusDesc  bool

	editingID string
	status    models.Status
	priority  int
	dueDate   *time.Time
	team      *models.TeamRef
	assignee  *models.MemberRef

	// Latest debounced suggestion; nil means no suggestion to show.
	suggestion *models.MemberRef
}

func newTicketForm() ticketForm {
	title := textinput.New()
	title.Placeholder = "Ticket title"
	title.CharLimit = models.MaxTitleLength
	title.Focus()

	desc := textarea.New()
	desc.Placeholder = "Description"
	desc.CharLimit = 2000

	return ticketForm{
		titleInput: title,
		descInput:  desc,
		status:     models.StatusTodo,
		priority:   models.DefaultPriority,
	}
}

func formFromTicket(t *models.Ticket) ticketForm {
	f := newTicketForm()
	f.editingID = t.ID
	f.titleInput.SetValue(t.Title)
	f.descInput.SetValue(t.Description)
	f.status = t.Status
	f.priority = t.Priority
	f.dueDate = t.DueDate
	if t.Team != nil {
		f.team = &models.TeamRef{ID: t.Team.ID, Name: t.Team.Name}
	}
	if t.AssignedTo != nil {
		f.assignee = &models.MemberRef{ID: t.AssignedTo.ID, Name: t.AssignedTo.Name}
	}
	return f
}

func (f *ticketForm) title() string       { return f.titleInput.Value() }
func (f *ticketForm) description() string { return f.descInput.Value() }

// toggleFocus moves focus between the title input and the description.
func (f *ticketForm) toggleFocus() {
	f.focusDesc = !f.focusDesc
	if f.focusDesc {
		f.titleInput.Blur()
		f.descInput.Focus()
	} else {
		f.descInput.Blur()
		f.titleInput.Focus()
	}
}

// acceptSuggestion promotes the suggested member to the form's assignee.
func (f *ticketForm) acceptSuggestion() {
	if f.suggestion != nil {
		f.assignee = f.suggestion
	}
}

// saveCmd persists the form: POST for a create, PUT for an edit.
func (m Model) saveCmd(f ticketForm) tea.Cmd {
	client, projectID := m.client, m.projectID
	return func() tea.Msg {
		ctx := context.Background()
		if f.editingID == "" {
			draft := api.TicketDraft{
				Title:       f.title(),
				Description: f.description(),
				Status:      f.status,
				Priority:    f.priority,
				DueDate:     f.dueDate,
				ProjectID:   projectID,
			}
			if f.assignee != nil {
				id := f.assignee.ID
				draft.AssignedToID = &id
			}
			created, err := client.CreateTicket(ctx, draft)
			if err != nil {
				return saveFailedMsg{err}
			}
			return ticketSavedMsg{created, true}
		}

		t := &models.Ticket{
			ID:          f.editingID,
			Title:       f.title(),
			Description: f.description(),
			Status:      f.status,
			Priority:    f.priority,
			DueDate:     f.dueDate,
			Team:        f.team,
			AssignedTo:  f.assignee,
		}
		updated, err := client.PersistStatusChange(ctx, t)
		if err != nil {
			return saveFailedMsg{err}
		}
		return ticketSavedMsg{updated, false}
	}
}
