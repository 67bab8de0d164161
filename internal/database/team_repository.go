package database

import (
	"context"
	"database/sql"

	"github.com/kanriapp/kanri/internal/models"
)

// TeamRepo provides team persistence.
type TeamRepo struct {
	db *sql.DB
}

func scanTeam(row rowScanner) (*models.Team, error) {
	var t models.Team
	if err := row.Scan(&t.ID, &t.Name, &t.Description, &t.ProjectID, &t.CreatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

const teamColumns = `id, name, description, COALESCE(project_id, 0), created_at`

// CreateTeam inserts a team and returns the stored row.
func (r *TeamRepo) CreateTeam(ctx context.Context, name, description string, projectID int) (*models.Team, error) {
	var pid any
	if projectID > 0 {
		pid = projectID
	}
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO teams (name, description, project_id) VALUES (?, ?, ?)`,
		name, description, pid,
	)
	if err != nil {
		return nil, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetTeamByID(ctx, int(id))
}

// GetTeamByID retrieves a single team.
func (r *TeamRepo) GetTeamByID(ctx context.Context, id int) (*models.Team, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+teamColumns+` FROM teams WHERE id = ?`, id)
	return scanTeam(row)
}

// GetTeams returns teams, optionally scoped to a project, ordered by name.
func (r *TeamRepo) GetTeams(ctx context.Context, projectID int) ([]*models.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams`
	args := []any{}
	if projectID > 0 {
		query += ` WHERE project_id = ?`
		args = append(args, projectID)
	}
	query += ` ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []*models.Team
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

// UpdateTeam replaces the team's name and description.
func (r *TeamRepo) UpdateTeam(ctx context.Context, id int, name, description string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE teams SET name = ?, description = ? WHERE id = ?`,
		name, description, id,
	)
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

// DeleteTeam removes the team; member and ticket references fall back to
// NULL via the schema.
func (r *TeamRepo) DeleteTeam(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM teams WHERE id = ?`, id)
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
