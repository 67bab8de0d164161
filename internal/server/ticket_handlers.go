package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/kanriapp/kanri/internal/models"
	"github.com/kanriapp/kanri/internal/services/ticket"
)

// ticketPayload is the request body for ticket create and update. The
// client never sends identity or timestamps; the server owns those.
type ticketPayload struct {
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Status       models.Status `json:"status"`
	Priority     int           `json:"priority"`
	DueDate      *time.Time    `json:"dueDate"`
	ProjectID    int           `json:"projectId"`
	TeamID       int           `json:"teamId"`
	AssignedToID *int          `json:"assignedToId"`
}

type suggestPayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ProjectID   int    `json:"projectId"`
}

// queryProjectID parses the optional ?projectId= scope. Zero means all
// projects.
func queryProjectID(r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("projectId")
	if raw == "" {
		return 0, true
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id < 0 {
		return 0, false
	}
	return id, true
}

func (s *Server) listTickets(w http.ResponseWriter, r *http.Request) {
	projectID, ok := queryProjectID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid projectId")
		return
	}
	tickets, err := s.tickets.List(r.Context(), projectID)
	if err != nil {
		serviceError(w, err)
		return
	}
	if tickets == nil {
		tickets = []*models.Ticket{}
	}
	writeJSON(w, http.StatusOK, tickets)
}

func (s *Server) getTicket(w http.ResponseWriter, r *http.Request) {
	t, err := s.tickets.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) createTicket(w http.ResponseWriter, r *http.Request) {
	var p ticketPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	t, err := s.tickets.Create(r.Context(), ticket.CreateRequest{
		Title:        p.Title,
		Description:  p.Description,
		Status:       p.Status,
		Priority:     p.Priority,
		DueDate:      p.DueDate,
		ProjectID:    p.ProjectID,
		TeamID:       p.TeamID,
		AssignedToID: p.AssignedToID,
	})
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) updateTicket(w http.ResponseWriter, r *http.Request) {
	var p ticketPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	t, err := s.tickets.Update(r.Context(), mux.Vars(r)["id"], ticket.UpdateRequest{
		Title:        p.Title,
		Description:  p.Description,
		Status:       p.Status,
		Priority:     p.Priority,
		DueDate:      p.DueDate,
		TeamID:       p.TeamID,
		AssignedToID: p.AssignedToID,
	})
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) deleteTicket(w http.ResponseWriter, r *http.Request) {
	if err := s.tickets.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// suggestAssignee scores the candidate pool against the ticket text and
// returns the best match, or a null member when nothing scores.
func (s *Server) suggestAssignee(w http.ResponseWriter, r *http.Request) {
	var p suggestPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	m, err := s.scorer.Suggest(r.Context(), p.Title, p.Description, p.ProjectID)
	if err != nil {
		serviceError(w, err)
		return
	}
	var ref *models.MemberRef
	if m != nil {
		ref = m.Ref()
	}
	writeJSON(w, http.StatusOK, map[string]*models.MemberRef{"member": ref})
}
