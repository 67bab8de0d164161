package member

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/kanriapp/kanri/internal/database"
	"github.com/kanriapp/kanri/internal/models"
)

// Service defines all member-related business operations
type Service interface {
	// Read operations
	List(ctx context.Context, projectID int) ([]*models.Member, error)
	Get(ctx context.Context, id int) (*models.Member, error)

	// Write operations
	Create(ctx context.Context, req CreateRequest) (*models.Member, error)
	Update(ctx context.Context, id int, req UpdateRequest) (*models.Member, error)
	Delete(ctx context.Context, id int) error
}

// CreateRequest encapsulates all data needed to create a member.
type CreateRequest struct {
	Name           string
	Email          string
	JobPosition    string
	JobDescription string
	Skills         string
	TeamID         int
	ProjectID      int
}

// UpdateRequest carries the full replacement state for a member.
type UpdateRequest struct {
	Name           string
	Email          string
	JobPosition    string
	JobDescription string
	Skills         string
	TeamID         int
	ProjectID      int
}

// service implements Service interface
type service struct {
	repo database.DataStore
}

// NewService creates a new member service
func NewService(repo database.DataStore) Service {
	return &service{repo: repo}
}

// List returns all members, optionally scoped to one project.
// A zero projectID returns everyone.
func (s *service) List(ctx context.Context, projectID int) ([]*models.Member, error) {
	var (
		members []*models.Member
		err     error
	)
	if projectID > 0 {
		members, err = s.repo.MembersByProject(ctx, projectID)
	} else {
		members, err = s.repo.Members(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}

func (s *service) Get(ctx context.Context, id int) (*models.Member, error) {
	m, err := s.repo.GetMemberByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMemberNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load member: %w", err)
	}
	return m, nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*models.Member, error) {
	if err := validateFields(req.Name, req.Email); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, req.ProjectID, req.TeamID); err != nil {
		return nil, err
	}
	if err := s.checkEmail(ctx, req.Email, 0); err != nil {
		return nil, err
	}

	m := &models.Member{
		Name:           strings.TrimSpace(req.Name),
		Email:          strings.TrimSpace(req.Email),
		JobPosition:    req.JobPosition,
		JobDescription: req.JobDescription,
		Skills:         req.Skills,
		TeamID:         req.TeamID,
		ProjectID:      req.ProjectID,
	}
	created, err := s.repo.CreateMember(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("failed to create member: %w", err)
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, id int, req UpdateRequest) (*models.Member, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := validateFields(req.Name, req.Email); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, req.ProjectID, req.TeamID); err != nil {
		return nil, err
	}
	if err := s.checkEmail(ctx, req.Email, id); err != nil {
		return nil, err
	}

	current.Name = strings.TrimSpace(req.Name)
	current.Email = strings.TrimSpace(req.Email)
	current.JobPosition = req.JobPosition
	current.JobDescription = req.JobDescription
	current.Skills = req.Skills
	current.TeamID = req.TeamID
	current.ProjectID = req.ProjectID

	updated, err := s.repo.UpdateMember(ctx, current)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMemberNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update member: %w", err)
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id int) error {
	err := s.repo.DeleteMember(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrMemberNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}
	return nil
}

func validateFields(name, email string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if len(name) > models.MaxTitleLength {
		return ErrNameTooLong
	}
	email = strings.TrimSpace(email)
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 {
		return ErrInvalidEmail
	}
	return nil
}

func (s *service) checkEmail(ctx context.Context, email string, excludeID int) error {
	taken, err := s.repo.EmailTaken(ctx, strings.TrimSpace(email), excludeID)
	if err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		return ErrEmailTaken
	}
	return nil
}

func (s *service) checkReferences(ctx context.Context, projectID, teamID int) error {
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
	return nil
}
