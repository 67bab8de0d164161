package ticket

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/kanriapp/kanri/internal/database"
	"github.com/kanriapp/kanri/internal/models"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

func setupService(t *testing.T) (Service, *database.Repository) {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	db.SetMaxOpenConns(1)

	ctx := context.Background()
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
// CREATE
// ============================================================================

func TestCreateAssignsIDAndDefaults(t *testing.T) {
	svc, _ := setupService(t)

	created, err := svc.Create(context.Background(), CreateRequest{Title: "  First ticket  "})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" {
		t.Error("expected a generated id")
	}
	if created.Title != "First ticket" {
		t.Errorf("title = %q, want trimmed", created.Title)
	}
	if created.Status != models.StatusTodo {
		t.Errorf("status = %s, want default todo", created.Status)
	}
	if created.Priority != models.DefaultPriority {
		t.Errorf("priority = %d, want default", created.Priority)
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
		{"empty title", CreateRequest{Title: "   "}, ErrEmptyTitle},
		{"long title", CreateRequest{Title: strings.Repeat("a", 300)}, ErrTitleTooLong},
		{"bad status", CreateRequest{Title: "x", Status: "archived"}, ErrInvalidStatus},
		{"bad priority", CreateRequest{Title: "x", Priority: 9}, ErrInvalidPriority},
		{"missing project", CreateRequest{Title: "x", ProjectID: 42}, ErrProjectNotFound},
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

func TestCreateRejectsUnknownAssignee(t *testing.T) {
	svc, _ := setupService(t)
	missing := 99
	_, err := svc.Create(context.Background(), CreateRequest{Title: "x", AssignedToID: &missing})
	if !errors.Is(err, ErrMemberNotFound) {
		t.Errorf("got %v, want ErrMemberNotFound", err)
	}
}

// ============================================================================
// UPDATE / DELETE
// ============================================================================

func TestUpdateReplacesFieldsAndClearsAssignee(t *testing.T) {
	svc, repo := setupService(t)
	ctx := context.Background()

	member, err := repo.CreateMember(ctx, &models.Member{Name: "Mira", Email: "mira@example.test"})
	if err != nil {
		t.Fatalf("CreateMember: %v", err)
	}
	created, err := svc.Create(ctx, CreateRequest{Title: "Assigned", AssignedToID: &member.ID})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.AssignedTo == nil {
		t.Fatal("expected an assignee after create")
	}

	updated, err := svc.Update(ctx, created.ID, UpdateRequest{
		Title:    "Assigned",
		Status:   models.StatusInProgress,
		Priority: models.PriorityHigh,
		// AssignedToID nil clears the assignee.
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Status != models.StatusInProgress || updated.Priority != models.PriorityHigh {
		t.Errorf("updated = %+v", updated)
	}
	if updated.AssignedTo != nil {
		t.Errorf("assignee = %+v, want cleared", updated.AssignedTo)
	}
}

func TestUpdateUnknownTicket(t *testing.T) {
	svc, _ := setupService(t)
	_, err := svc.Update(context.Background(), "ghost", UpdateRequest{
		Title: "x", Status: models.StatusTodo, Priority: 3,
	})
	if !errors.Is(err, ErrTicketNotFound) {
		t.Errorf("got %v, want ErrTicketNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateRequest{Title: "doomed"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(ctx, created.ID); !errors.Is(err, ErrTicketNotFound) {
		t.Errorf("second delete: got %v, want ErrTicketNotFound", err)
	}
}
