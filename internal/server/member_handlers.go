package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/kanriapp/kanri/internal/models"
	"github.com/kanriapp/kanri/internal/services/member"
)

type memberPayload struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	JobPosition    string `json:"jobPosition"`
	JobDescription string `json:"jobDescription"`
	Skills         string `json:"skills"`
	TeamID         int    `json:"teamId"`
	ProjectID      int    `json:"projectId"`
}

func pathID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (s *Server) listMembers(w http.ResponseWriter, r *http.Request) {
	projectID, ok := queryProjectID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid projectId")
		return
	}
	members, err := s.members.List(r.Context(), projectID)
	if err != nil {
		serviceError(w, err)
		return
	}
	if members == nil {
		members = []*models.Member{}
	}
	writeJSON(w, http.StatusOK, members)
}

func (s *Server) createMember(w http.ResponseWriter, r *http.Request) {
	var p memberPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	m, err := s.members.Create(r.Context(), member.CreateRequest{
		Name:           p.Name,
		Email:          p.Email,
		JobPosition:    p.JobPosition,
		JobDescription: p.JobDescription,
		Skills:         p.Skills,
		TeamID:         p.TeamID,
		ProjectID:      p.ProjectID,
	})
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (s *Server) updateMember(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid member ID")
		return
	}
	var p memberPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	m, err := s.members.Update(r.Context(), id, member.UpdateRequest{
		Name:           p.Name,
		Email:          p.Email,
		JobPosition:    p.JobPosition,
		JobDescription: p.JobDescription,
		Skills:         p.Skills,
		TeamID:         p.TeamID,
		ProjectID:      p.ProjectID,
	})
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) deleteMember(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid member ID")
		return
	}
	if err := s.members.Delete(r.Context(), id); err != nil {
		serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
