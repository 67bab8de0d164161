package database

import (
	"context"
	"database/sql"

	"github.com/kanriapp/kanri/internal/models"
)

// MemberRepo provides member persistence.
type MemberRepo struct {
	db *sql.DB
}

const memberColumns = `
	id, name, email, job_position, job_description, skills,
	COALESCE(team_id, 0), COALESCE(project_id, 0), created_at`

func scanMember(row rowScanner) (*models.Member, error) {
	var m models.Member
	err := row.Scan(
		&m.ID, &m.Name, &m.Email, &m.JobPosition, &m.JobDescription,
		&m.Skills, &m.TeamID, &m.ProjectID, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// CreateMember inserts a member and returns the stored row.
func (r *MemberRepo) CreateMember(ctx context.Context, m *models.Member) (*models.Member, error) {
	var teamID, projectID any
	if m.TeamID > 0 {
		teamID = m.TeamID
	}
	if m.ProjectID > 0 {
		projectID = m.ProjectID
	}

	result, err := r.db.ExecContext(ctx,
		`INSERT INTO members (name, email, job_position, job_description, skills, team_id, project_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.Name, m.Email, m.JobPosition, m.JobDescription, m.Skills, teamID, projectID,
	)
	if err != nil {
		return nil, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetMemberByID(ctx, int(id))
}

// GetMemberByID retrieves a single member.
func (r *MemberRepo) GetMemberByID(ctx context.Context, id int) (*models.Member, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+memberColumns+` FROM members WHERE id = ?`, id)
	return scanMember(row)
}

// Members returns all members ordered by name.
func (r *MemberRepo) Members(ctx context.Context) ([]*models.Member, error) {
	return r.queryMembers(ctx,
		`SELECT `+memberColumns+` FROM members ORDER BY name`)
}

// MembersByProject returns the members of one project, ordered by name.
func (r *MemberRepo) MembersByProject(ctx context.Context, projectID int) ([]*models.Member, error) {
	return r.queryMembers(ctx,
		`SELECT `+memberColumns+` FROM members WHERE project_id = ? ORDER BY name`, projectID)
}

// MembersByTeam returns a team's members, ordered by name.
func (r *MemberRepo) MembersByTeam(ctx context.Context, teamID int) ([]*models.Member, error) {
	return r.queryMembers(ctx,
		`SELECT `+memberColumns+` FROM members WHERE team_id = ? ORDER BY name`, teamID)
}

func (r *MemberRepo) queryMembers(ctx context.Context, query string, args ...any) ([]*models.Member, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []*models.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// UpdateMember replaces the member's mutable fields.
func (r *MemberRepo) UpdateMember(ctx context.Context, m *models.Member) (*models.Member, error) {
	var teamID, projectID any
	if m.TeamID > 0 {
		teamID = m.TeamID
	}
	if m.ProjectID > 0 {
		projectID = m.ProjectID
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE members
		 SET name = ?, email = ?, job_position = ?, job_description = ?,
		     skills = ?, team_id = ?, project_id = ?
		 WHERE id = ?`,
		m.Name, m.Email, m.JobPosition, m.JobDescription, m.Skills, teamID, projectID, m.ID,
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
	return r.GetMemberByID(ctx, m.ID)
}

// DeleteMember removes the member. Tickets assigned to them fall back to
// unassigned via the schema's ON DELETE SET NULL.
func (r *MemberRepo) DeleteMember(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM members WHERE id = ?`, id)
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

// EmailTaken reports whether another member (excluding excludeID) already
// has the given email.
func (r *MemberRepo) EmailTaken(ctx context.Context, email string, excludeID int) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM members WHERE email = ? AND id != ?`,
		email, excludeID,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
