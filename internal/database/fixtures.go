package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kanriapp/kanri/internal/models"
)

// Seed populates an empty database with a small demo dataset: one project,
// two teams and a handful of members with skills. It is a no-op when any
// project already exists.
func Seed(ctx context.Context, db *sql.DB) error {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	repo := NewRepository(db)

	project, err := repo.CreateProject(ctx, "Atlas", "Internal platform rebuild")
	if err != nil {
		return fmt.Errorf("seed project: %w", err)
	}

	backend, err := repo.CreateTeam(ctx, "Backend", "Services and storage", project.ID)
	if err != nil {
		return fmt.Errorf("seed team: %w", err)
	}
	frontend, err := repo.CreateTeam(ctx, "Frontend", "Board and forms", project.ID)
	if err != nil {
		return fmt.Errorf("seed team: %w", err)
	}

	members := []*models.Member{
		{
			Name: "Mira Okafor", Email: "mira@example.test",
			JobPosition: "Backend Engineer", Skills: "postgres,sql,go,migrations",
			TeamID: backend.ID, ProjectID: project.ID,
		},
		{
			Name: "Jonas Feld", Email: "jonas@example.test",
			JobPosition: "Frontend Engineer", Skills: "react,typescript,css",
			TeamID: frontend.ID, ProjectID: project.ID,
		},
		{
			Name: "Priya Nair", Email: "priya@example.test",
			JobPosition: "Site Reliability Engineer", Skills: "deploy,kubernetes,observability",
			TeamID: backend.ID, ProjectID: project.ID,
		},
	}
	for i, m := range members {
		if _, err := repo.CreateMember(ctx, m); err != nil {
			return fmt.Errorf("seed member %d: %w", i, err)
		}
	}

	return nil
}
