package member

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/kanriapp/kanri/internal/database"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

func setupService(t *testing.T) (Service, *database.Repository) {
	t.Helper()
	ctx := context.Background()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	// A second pooled connection would see a different in-memory database.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}
	if err := database.Migrate(ctx, db); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	repo := database.NewRepository(db)
	return NewService(repo), repo
}

// ============================================================================
// TESTS
// ============================================================================

func TestCreateMember(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	m, err := svc.Create(ctx, CreateRequest{
		Name:   "  Mira Okafor  ",
		Email:  "mira@example.com",
		Skills: "postgres, sql",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if m.ID == 0 {
		t.Error("Expected a member ID to be assigned")
	}
	if m.Name != "Mira Okafor" {
		t.Errorf("Expected trimmed name, got %q", m.Name)
	}
	if m.Skills != "postgres, sql" {
		t.Errorf("Skills not stored: %q", m.Skills)
	}
}

func TestCreateValidation(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		req     CreateRequest
		wantErr error
	}{
		{"empty name", CreateRequest{Name: "   ", Email: "a@b.io"}, ErrEmptyName},
		{"long name", CreateRequest{Name: strings.Repeat("a", 300), Email: "a@b.io"}, ErrNameTooLong},
		{"no at sign", CreateRequest{Name: "x", Email: "not-an-email"}, ErrInvalidEmail},
		{"at sign first", CreateRequest{Name: "x", Email: "@b.io"}, ErrInvalidEmail},
		{"at sign last", CreateRequest{Name: "x", Email: "a@"}, ErrInvalidEmail},
		{"missing project", CreateRequest{Name: "x", Email: "a@b.io", ProjectID: 42}, ErrProjectNotFound},
		{"missing team", CreateRequest{Name: "x", Email: "a@b.io", TeamID: 42}, ErrTeamNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestEmailUniqueness(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, CreateRequest{Name: "First", Email: "dup@example.com"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	_, err = svc.Create(ctx, CreateRequest{Name: "Second", Email: "dup@example.com"})
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("Expected ErrEmailTaken for duplicate, got %v", err)
	}

	// Updating a member with their own email must not trip the check.
	_, err = svc.Update(ctx, first.ID, UpdateRequest{Name: "First Renamed", Email: "dup@example.com"})
	if err != nil {
		t.Errorf("Update with own email failed: %v", err)
	}
}

func TestUpdateReplacesFields(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	m, err := svc.Create(ctx, CreateRequest{
		Name:        "Jonas Feld",
		Email:       "jonas@example.com",
		JobPosition: "frontend engineer",
		Skills:      "react, css",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	updated, err := svc.Update(ctx, m.ID, UpdateRequest{
		Name:  "Jonas Feld",
		Email: "jonas@example.com",
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.JobPosition != "" || updated.Skills != "" {
		t.Errorf("Update should replace all fields, got position=%q skills=%q",
			updated.JobPosition, updated.Skills)
	}
}

func TestGetAndDeleteNotFound(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	if _, err := svc.Get(ctx, 999); !errors.Is(err, ErrMemberNotFound) {
		t.Errorf("Get: got %v, want ErrMemberNotFound", err)
	}
	if err := svc.Delete(ctx, 999); !errors.Is(err, ErrMemberNotFound) {
		t.Errorf("Delete: got %v, want ErrMemberNotFound", err)
	}
}

func TestListScopedByProject(t *testing.T) {
	svc, repo := setupService(t)
	ctx := context.Background()

	p1, err := repo.CreateProject(ctx, "Atlas", "")
	if err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}
	p2, err := repo.CreateProject(ctx, "Borealis", "")
	if err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}

	for _, req := range []CreateRequest{
		{Name: "A", Email: "a@example.com", ProjectID: p1.ID},
		{Name: "B", Email: "b@example.com", ProjectID: p1.ID},
		{Name: "C", Email: "c@example.com", ProjectID: p2.ID},
	} {
		if _, err := svc.Create(ctx, req); err != nil {
			t.Fatalf("Create %s failed: %v", req.Name, err)
		}
	}

	scoped, err := svc.List(ctx, p1.ID)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(scoped) != 2 {
		t.Errorf("Expected 2 members in project, got %d", len(scoped))
	}

	all, err := svc.List(ctx, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Expected 3 members total, got %d", len(all))
	}
}
