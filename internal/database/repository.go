package database

import (
	"context"
	"database/sql"

	"github.com/kanriapp/kanri/internal/models"
)

// Repository provides a unified interface to all data operations.
// It composes domain-specific repositories using struct embedding.
type Repository struct {
	*TicketRepo
	*MemberRepo
	*ProjectRepo
	*TeamRepo
}

// NewRepository creates a new Repository wrapping the given database
// connection.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		TicketRepo:  &TicketRepo{db: db},
		MemberRepo:  &MemberRepo{db: db},
		ProjectRepo: &ProjectRepo{db: db},
		TeamRepo:    &TeamRepo{db: db},
	}
}

// DataStore defines the unified interface for all data operations needed
// by the services and handlers. A single interface keeps service
// constructors uniform and mockable.
type DataStore interface {
	// Tickets
	CreateTicket(ctx context.Context, t *models.Ticket) (*models.Ticket, error)
	GetTicketByID(ctx context.Context, id string) (*models.Ticket, error)
	GetTickets(ctx context.Context, projectID int) ([]*models.Ticket, error)
	UpdateTicket(ctx context.Context, t *models.Ticket) (*models.Ticket, error)
	DeleteTicket(ctx context.Context, id string) error
	TicketsAssignedTo(ctx context.Context, memberID, projectID int) ([]*models.Ticket, error)

	// Members
	CreateMember(ctx context.Context, m *models.Member) (*models.Member, error)
	GetMemberByID(ctx context.Context, id int) (*models.Member, error)
	Members(ctx context.Context) ([]*models.Member, error)
	MembersByProject(ctx context.Context, projectID int) ([]*models.Member, error)
	MembersByTeam(ctx context.Context, teamID int) ([]*models.Member, error)
	UpdateMember(ctx context.Context, m *models.Member) (*models.Member, error)
	DeleteMember(ctx context.Context, id int) error
	EmailTaken(ctx context.Context, email string, excludeID int) (bool, error)

	// Projects
	CreateProject(ctx context.Context, name, description string) (*models.Project, error)
	GetProjectByID(ctx context.Context, id int) (*models.Project, error)
	GetAllProjects(ctx context.Context) ([]*models.Project, error)
	UpdateProject(ctx context.Context, id int, name, description string) error
	DeleteProject(ctx context.Context, id int) error

	// Teams
	CreateTeam(ctx context.Context, name, description string, projectID int) (*models.Team, error)
	GetTeamByID(ctx context.Context, id int) (*models.Team, error)
	GetTeams(ctx context.Context, projectID int) ([]*models.Team, error)
	UpdateTeam(ctx context.Context, id int, name, description string) error
	DeleteTeam(ctx context.Context, id int) error
}
