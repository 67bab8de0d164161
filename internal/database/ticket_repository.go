package database

import (
	"context"
	"database/sql"

	"github.com/kanriapp/kanri/internal/models"
)

// TicketRepo provides ticket persistence.
type TicketRepo struct {
	db *sql.DB
}

// ticketColumns is the select list shared by all ticket reads. Team and
// assignee names are joined in so the wire shape's lightweight refs can be
// built without extra queries.
const ticketColumns = `
	t.id, t.title, t.description, t.status, t.priority, t.due_date,
	t.team_id, tm.name, t.assigned_to, m.name,
	COALESCE(t.project_id, 0), t.created_at, t.updated_at`

const ticketJoins = `
	FROM tickets t
	LEFT JOIN teams tm ON tm.id = t.team_id
	LEFT JOIN members m ON m.id = t.assigned_to`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTicket(row rowScanner) (*models.Ticket, error) {
	var (
		t          models.Ticket
		dueDate    sql.NullTime
		teamID     sql.NullInt64
		teamName   sql.NullString
		memberID   sql.NullInt64
		memberName sql.NullString
	)
	err := row.Scan(
		&t.ID, &t.Title, &t.Description, &t.Status, &t.Priority, &dueDate,
		&teamID, &teamName, &memberID, &memberName,
		&t.ProjectID, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if dueDate.Valid {
		d := dueDate.Time
		t.DueDate = &d
	}
	if teamID.Valid {
		t.Team = &models.TeamRef{ID: int(teamID.Int64), Name: teamName.String}
	}
	if memberID.Valid {
		t.AssignedTo = &models.MemberRef{ID: int(memberID.Int64), Name: memberName.String}
	}
	return &t, nil
}

// CreateTicket inserts the ticket (id already assigned by the caller) and
// returns the stored row with server-assigned timestamps.
func (r *TicketRepo) CreateTicket(ctx context.Context, t *models.Ticket) (*models.Ticket, error) {
	var teamID, assignedTo, projectID any
	if t.Team != nil {
		teamID = t.Team.ID
	}
	if t.AssignedTo != nil {
		assignedTo = t.AssignedTo.ID
	}
	if t.ProjectID > 0 {
		projectID = t.ProjectID
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tickets (id, title, description, status, priority, due_date, team_id, assigned_to, project_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Title, t.Description, t.Status, t.Priority, t.DueDate, teamID, assignedTo, projectID,
	)
	if err != nil {
		return nil, err
	}
	return r.GetTicketByID(ctx, t.ID)
}

// GetTicketByID retrieves a single ticket.
func (r *TicketRepo) GetTicketByID(ctx context.Context, id string) (*models.Ticket, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+ticketColumns+ticketJoins+` WHERE t.id = ?`, id)
	return scanTicket(row)
}

// GetTickets retrieves all tickets, optionally scoped to a project
// (projectID 0 means all), ordered by creation time.
func (r *TicketRepo) GetTickets(ctx context.Context, projectID int) ([]*models.Ticket, error) {
	query := `SELECT ` + ticketColumns + ticketJoins
	args := []any{}
	if projectID > 0 {
		query += ` WHERE t.project_id = ?`
		args = append(args, projectID)
	}
	query += ` ORDER BY t.created_at, t.id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tickets []*models.Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}

// UpdateTicket replaces the ticket's mutable fields and bumps updated_at.
func (r *TicketRepo) UpdateTicket(ctx context.Context, t *models.Ticket) (*models.Ticket, error) {
	var teamID, assignedTo any
	if t.Team != nil {
		teamID = t.Team.ID
	}
	if t.AssignedTo != nil {
		assignedTo = t.AssignedTo.ID
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE tickets
		 SET title = ?, description = ?, status = ?, priority = ?, due_date = ?,
		     team_id = ?, assigned_to = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		t.Title, t.Description, t.Status, t.Priority, t.DueDate, teamID, assignedTo, t.ID,
	)
	if err != nil {
		return nil, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, sql.ErrNoRows
	}
	return r.GetTicketByID(ctx, t.ID)
}

// DeleteTicket removes the ticket. Returns sql.ErrNoRows when it does not
// exist.
func (r *TicketRepo) DeleteTicket(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tickets WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// TicketsAssignedTo returns tickets assigned to the member, scoped to the
// project when projectID > 0. Used by the assignment scorer's history and
// availability sub-scores.
func (r *TicketRepo) TicketsAssignedTo(ctx context.Context, memberID, projectID int) ([]*models.Ticket, error) {
	query := `SELECT ` + ticketColumns + ticketJoins + ` WHERE t.assigned_to = ?`
	args := []any{memberID}
	if projectID > 0 {
		query += ` AND t.project_id = ?`
		args = append(args, projectID)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tickets []*models.Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}
