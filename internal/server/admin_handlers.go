package server

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/kanriapp/kanri/internal/models"
)

// Project and team CRUD is thin enough that the handlers talk to the
// repository directly; the only business rule is a non-empty name.

type namePayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ProjectID   int    `json:"projectId"`
}

func (p *namePayload) trimmedName() (string, bool) {
	name := strings.TrimSpace(p.Name)
	return name, name != ""
}

// ============================================================================
// PROJECTS
// ============================================================================

func (s *Server) listProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.repo.GetAllProjects(r.Context())
	if err != nil {
		serviceError(w, err)
		return
	}
	if projects == nil {
		projects = []*models.Project{}
	}
	writeJSON(w, http.StatusOK, projects)
}

func (s *Server) createProject(w http.ResponseWriter, r *http.Request) {
	var p namePayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	name, ok := p.trimmedName()
	if !ok {
		writeError(w, http.StatusBadRequest, "name cannot be empty")
		return
	}
	project, err := s.repo.CreateProject(r.Context(), name, p.Description)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, project)
}

func (s *Server) updateProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid project ID")
		return
	}
	var p namePayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	name, ok := p.trimmedName()
	if !ok {
		writeError(w, http.StatusBadRequest, "name cannot be empty")
		return
	}
	if err := s.repo.UpdateProject(r.Context(), id, name, p.Description); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "project not found")
			return
		}
		serviceError(w, err)
		return
	}
	project, err := s.repo.GetProjectByID(r.Context(), id)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

func (s *Server) deleteProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid project ID")
		return
	}
	if err := s.repo.DeleteProject(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "project not found")
			return
		}
		serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ============================================================================
// TEAMS
// ============================================================================

func (s *Server) listTeams(w http.ResponseWriter, r *http.Request) {
	projectID, ok := queryProjectID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid projectId")
		return
	}
	teams, err := s.repo.GetTeams(r.Context(), projectID)
	if err != nil {
		serviceError(w, err)
		return
	}
	if teams == nil {
		teams = []*models.Team{}
	}
	for _, team := range teams {
		if err := s.fillTeamMembers(r, team); err != nil {
			serviceError(w, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, teams)
}

// fillTeamMembers populates the team's member list for responses. Team
// membership itself is edited through the member endpoints (teamId).
func (s *Server) fillTeamMembers(r *http.Request, team *models.Team) error {
	members, err := s.repo.MembersByTeam(r.Context(), team.ID)
	if err != nil {
		return err
	}
	team.Members = members
	return nil
}

func (s *Server) createTeam(w http.ResponseWriter, r *http.Request) {
	var p namePayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	name, ok := p.trimmedName()
	if !ok {
		writeError(w, http.StatusBadRequest, "name cannot be empty")
		return
	}
	if p.ProjectID > 0 {
		if _, err := s.repo.GetProjectByID(r.Context(), p.ProjectID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				writeError(w, http.StatusBadRequest, "project not found")
				return
			}
			serviceError(w, err)
			return
		}
	}
	team, err := s.repo.CreateTeam(r.Context(), name, p.Description, p.ProjectID)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, team)
}

func (s *Server) updateTeam(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid team ID")
		return
	}
	var p namePayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	name, ok := p.trimmedName()
	if !ok {
		writeError(w, http.StatusBadRequest, "name cannot be empty")
		return
	}
	if err := s.repo.UpdateTeam(r.Context(), id, name, p.Description); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "team not found")
			return
		}
		serviceError(w, err)
		return
	}
	team, err := s.repo.GetTeamByID(r.Context(), id)
	if err != nil {
		serviceError(w, err)
		return
	}
	if err := s.fillTeamMembers(r, team); err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, team)
}

func (s *Server) deleteTeam(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid team ID")
		return
	}
	if err := s.repo.DeleteTeam(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "team not found")
			return
		}
		serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
