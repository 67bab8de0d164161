package ticket

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kanriapp/kanri/internal/database"
	"github.com/kanriapp/kanri/internal/models"
)

// Service defines all ticket-related business operations
type Service interface {
	List(ctx context.Context, projectID int) ([]*models.Ticket, error)
	Get(ctx context.Context, id string) (*models.Ticket, error)
	Create(ctx context.Context, req CreateRequest) (*models.Ticket, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*models.Ticket, error)
	Delete(ctx context.Context, id string) error
}

// CreateRequest encapsulates all data needed to create a ticket.
// Zero values mean "not set": an empty status defaults to todo, a zero
// priority defaults to medium.
type CreateRequest struct {
	Title        string
	Description  string
	Status       models.Status
	Priority     int
	DueDate      *time.Time
	ProjectID    int
	TeamID       int
	AssignedToID *int
}

// UpdateRequest carries the full replacement state for a PUT. A nil
// AssignedToID clears the assignee.
type UpdateRequest struct {
	Title        string
	Description  string
	Status       models.Status
	Priority     int
	DueDate      *time.Time
	TeamID       int
	AssignedToID *int
}

// service implements Service interface
type service struct {
	repo database.DataStore
}

// NewService creates a new ticket service
func NewService(repo database.DataStore) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, projectID int) ([]*models.Ticket, error) {
	tickets, err := s.repo.GetTickets(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	return tickets, nil
}

func (s *service) Get(ctx context.Context, id string) (*models.Ticket, error) {
	t, err := s.repo.GetTicketByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTicketNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load ticket: %w", err)
	}
	return t, nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*models.Ticket, error) {
	if req.Status == "" {
		req.Status = models.StatusTodo
	}
	if req.Priority == 0 {
		req.Priority = models.DefaultPriority
	}
	if err := validateFields(req.Title, req.Status, req.Priority); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, req.ProjectID, req.TeamID, req.AssignedToID); err != nil {
		return nil, err
	}

	t := &models.Ticket{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		ProjectID:   req.ProjectID,
	}
	if req.TeamID > 0 {
		t.Team = &models.TeamRef{ID: req.TeamID}
	}
	if req.AssignedToID != nil {
		t.AssignedTo = &models.MemberRef{ID: *req.AssignedToID}
	}

	created, err := s.repo.CreateTicket(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("failed to create ticket: %w", err)
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*models.Ticket, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := validateFields(req.Title, req.Status, req.Priority); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, 0, req.TeamID, req.AssignedToID); err != nil {
		return nil, err
	}

	current.Title = strings.TrimSpace(req.Title)
	current.Description = req.Description
	current.Status = req.Status
	current.Priority = req.Priority
	current.DueDate = req.DueDate
	current.Team = nil
	if req.TeamID > 0 {
		current.Team = &models.TeamRef{ID: req.TeamID}
	}
	current.AssignedTo = nil
	if req.AssignedToID != nil {
		current.AssignedTo = &models.MemberRef{ID: *req.AssignedToID}
	}

	updated, err := s.repo.UpdateTicket(ctx, current)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTicketNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update ticket: %w", err)
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	err := s.repo.DeleteTicket(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrTicketNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete ticket: %w", err)
	}
	return nil
}

func validateFields(title string, status models.Status, priority int) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}
	if len(title) > models.MaxTitleLength {
		return ErrTitleTooLong
	}
	if !status.IsValid() {
		return ErrInvalidStatus
	}
	if !models.ValidPriority(priority) {
		return ErrInvalidPriority
	}
	return nil
}

// checkReferences verifies that the project, team and assignee a request
// points at actually exist. A zero/nil reference is fine.
func (s *service) checkReferences(ctx context.Context, projectID, teamID int, assignedToID *int) error {
	if projectID > 0 {
		if _, err := s.repo.GetProjectByID(ctx, projectID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrProjectNotFound
			}
			return fmt.Errorf("failed to check project: %w", err)
		}
	}
	if teamID > 0 {
		if _, err := s.repo.GetTeamByID(ctx, teamID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrTeamNotFound
			}
			return fmt.Errorf("failed to check team: %w", err)
		}
	}
	if assignedToID != nil {
		if _, err := s.repo.GetMemberByID(ctx, *assignedToID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrMemberNotFound
			}
			return fmt.Errorf("failed to check member: %w", err)
		}
	}
	return nil
}
