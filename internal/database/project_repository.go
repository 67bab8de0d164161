package database

import (
	"context"
	"database/sql"

	"github.com/kanriapp/kanri/internal/models"
)

// ProjectRepo provides project persistence.
type ProjectRepo struct {
	db *sql.DB
}

func scanProject(row rowScanner) (*models.Project, error) {
	var p models.Project
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateProject inserts a project and returns the stored row.
func (r *ProjectRepo) CreateProject(ctx context.Context, name, description string) (*models.Project, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO projects (name, description) VALUES (?, ?)`,
		name, description,
	)
	if err != nil {
		return nil, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetProjectByID(ctx, int(id))
}

// GetProjectByID retrieves a single project.
func (r *ProjectRepo) GetProjectByID(ctx context.Context, id int) (*models.Project, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, description, created_at FROM projects WHERE id = ?`, id)
	return scanProject(row)
}

// GetAllProjects returns all projects ordered by name.
func (r *ProjectRepo) GetAllProjects(ctx context.Context) ([]*models.Project, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, description, created_at FROM projects ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []*models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// UpdateProject replaces the project's name and description.
func (r *ProjectRepo) UpdateProject(ctx context.Context, id int, name, description string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE projects SET name = ?, description = ? WHERE id = ?`,
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

// DeleteProject removes the project; teams, members and tickets in it
// cascade away.
func (r *ProjectRepo) DeleteProject(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
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
