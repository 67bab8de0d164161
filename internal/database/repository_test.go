package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/kanriapp/kanri/internal/models"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

// setupTestDB creates an in-memory database and runs migrations
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	// A second pooled connection would see a different in-memory database.
	db.SetMaxOpenConns(1)

	ctx := context.Background()
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}
	if err := runMigrations(ctx, db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return db
}

func testRepo(t *testing.T) *Repository {
	t.Helper()
	return NewRepository(setupTestDB(t))
}

func seedProject(t *testing.T, repo *Repository) *models.Project {
	t.Helper()
	p, err := repo.CreateProject(context.Background(), "Atlas", "platform rebuild")
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	return p
}

func seedMember(t *testing.T, repo *Repository, name, email string, projectID int) *models.Member {
	t.Helper()
	m, err := repo.CreateMember(context.Background(), &models.Member{
		Name: name, Email: email, ProjectID: projectID,
	})
	if err != nil {
		t.Fatalf("CreateMember(%s): %v", name, err)
	}
	return m
}

func newTicket(id, title string, projectID int) *models.Ticket {
	return &models.Ticket{
		ID:        id,
		Title:     title,
		Status:    models.StatusBacklog,
		Priority:  models.DefaultPriority,
		ProjectID: projectID,
	}
}

// ============================================================================
// TICKETS
// ============================================================================

func TestCreateTicketAssignsTimestamps(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	created, err := repo.CreateTicket(ctx, newTicket("t-1", "First", 0))
	if err != nil {
		t.Fatalf("CreateTicket: %v", err)
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("expected server-assigned timestamps")
	}
	if created.Status != models.StatusBacklog {
		t.Errorf("status = %s", created.Status)
	}
}

func TestTicketRoundTripWithReferences(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()
	project := seedProject(t, repo)
	member := seedMember(t, repo, "Mira", "mira@example.test", project.ID)
	team, err := repo.CreateTeam(ctx, "Backend", "", project.ID)
	if err != nil {
		t.Fatalf("CreateTeam: %v", err)
	}

	due := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	in := newTicket("t-ref", "With refs", project.ID)
	in.Team = &models.TeamRef{ID: team.ID}
	in.AssignedTo = &models.MemberRef{ID: member.ID}
	in.DueDate = &due

	created, err := repo.CreateTicket(ctx, in)
	if err != nil {
		t.Fatalf("CreateTicket: %v", err)
	}
	if created.Team == nil || created.Team.Name != "Backend" {
		t.Errorf("team ref = %+v", created.Team)
	}
	if created.AssignedTo == nil || created.AssignedTo.Name != "Mira" {
		t.Errorf("assignee ref = %+v", created.AssignedTo)
	}
	if created.DueDate == nil || !created.DueDate.Equal(due) {
		t.Errorf("due date = %v", created.DueDate)
	}
}

func TestGetTicketsScopedToProject(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()
	project := seedProject(t, repo)

	if _, err := repo.CreateTicket(ctx, newTicket("in-1", "scoped", project.ID)); err != nil {
		t.Fatalf("CreateTicket: %v", err)
	}
	if _, err := repo.CreateTicket(ctx, newTicket("out-1", "global", 0)); err != nil {
		t.Fatalf("CreateTicket: %v", err)
	}

	scoped, err := repo.GetTickets(ctx, project.ID)
	if err != nil {
		t.Fatalf("GetTickets: %v", err)
	}
	if len(scoped) != 1 || scoped[0].ID != "in-1" {
		t.Errorf("scoped tickets = %+v", scoped)
	}

	all, err := repo.GetTickets(ctx, 0)
	if err != nil {
		t.Fatalf("GetTickets(all): %v", err)
	}
	if len(all) != 2 {
		t.Errorf("all tickets = %d, want 2", len(all))
	}
}

func TestUpdateTicketBumpsUpdatedAt(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	created, err := repo.CreateTicket(ctx, newTicket("t-up", "Before", 0))
	if err != nil {
		t.Fatalf("CreateTicket: %v", err)
	}

	// CURRENT_TIMESTAMP has second resolution; force a visible change.
	if _, err := repo.TicketRepo.db.ExecContext(ctx,
		`UPDATE tickets SET updated_at = datetime('now', '-1 hour') WHERE id = ?`, created.ID); err != nil {
		t.Fatalf("backdate: %v", err)
	}
	stale, err := repo.GetTicketByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetTicketByID: %v", err)
	}

	stale.Title = "After"
	stale.Status = models.StatusInProgress
	updated, err := repo.UpdateTicket(ctx, stale)
	if err != nil {
		t.Fatalf("UpdateTicket: %v", err)
	}
	if updated.Title != "After" || updated.Status != models.StatusInProgress {
		t.Errorf("updated = %+v", updated)
	}
	if !updated.UpdatedAt.After(stale.UpdatedAt) {
		t.Errorf("updated_at not bumped: %v <= %v", updated.UpdatedAt, stale.UpdatedAt)
	}
}

func TestDeleteTicketNotFound(t *testing.T) {
	repo := testRepo(t)
	if err := repo.DeleteTicket(context.Background(), "ghost"); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestTicketsAssignedTo(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()
	project := seedProject(t, repo)
	member := seedMember(t, repo, "Mira", "mira@example.test", project.ID)

	mine := newTicket("mine", "assigned here", project.ID)
	mine.AssignedTo = &models.MemberRef{ID: member.ID}
	if _, err := repo.CreateTicket(ctx, mine); err != nil {
		t.Fatalf("CreateTicket: %v", err)
	}
	other := newTicket("other-project", "assigned elsewhere", 0)
	other.AssignedTo = &models.MemberRef{ID: member.ID}
	if _, err := repo.CreateTicket(ctx, other); err != nil {
		t.Fatalf("CreateTicket: %v", err)
	}

	scoped, err := repo.TicketsAssignedTo(ctx, member.ID, project.ID)
	if err != nil {
		t.Fatalf("TicketsAssignedTo: %v", err)
	}
	if len(scoped) != 1 || scoped[0].ID != "mine" {
		t.Errorf("scoped = %+v", scoped)
	}

	all, err := repo.TicketsAssignedTo(ctx, member.ID, 0)
	if err != nil {
		t.Fatalf("TicketsAssignedTo(all): %v", err)
	}
	if len(all) != 2 {
		t.Errorf("all = %d, want 2", len(all))
	}
}

// ============================================================================
// MEMBERS / PROJECTS / TEAMS
// ============================================================================

func TestMemberEmailUniqueness(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	first := seedMember(t, repo, "One", "dup@example.test", 0)

	taken, err := repo.EmailTaken(ctx, "dup@example.test", 0)
	if err != nil {
		t.Fatalf("EmailTaken: %v", err)
	}
	if !taken {
		t.Error("expected email to be reported taken")
	}
	taken, err = repo.EmailTaken(ctx, "dup@example.test", first.ID)
	if err != nil {
		t.Fatalf("EmailTaken: %v", err)
	}
	if taken {
		t.Error("a member's own email must not count as taken")
	}
}

func TestDeleteMemberUnassignsTickets(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()
	member := seedMember(t, repo, "Gone", "gone@example.test", 0)

	ticket := newTicket("orphan", "will lose assignee", 0)
	ticket.AssignedTo = &models.MemberRef{ID: member.ID}
	if _, err := repo.CreateTicket(ctx, ticket); err != nil {
		t.Fatalf("CreateTicket: %v", err)
	}

	if err := repo.DeleteMember(ctx, member.ID); err != nil {
		t.Fatalf("DeleteMember: %v", err)
	}
	got, err := repo.GetTicketByID(ctx, "orphan")
	if err != nil {
		t.Fatalf("GetTicketByID: %v", err)
	}
	if got.AssignedTo != nil {
		t.Errorf("assignee = %+v, want nil after member delete", got.AssignedTo)
	}
}

func TestDeleteProjectCascades(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()
	project := seedProject(t, repo)
	seedMember(t, repo, "Mira", "mira@example.test", project.ID)
	if _, err := repo.CreateTicket(ctx, newTicket("t-c", "cascade me", project.ID)); err != nil {
		t.Fatalf("CreateTicket: %v", err)
	}

	if err := repo.DeleteProject(ctx, project.ID); err != nil {
		t.Fatalf("DeleteProject: %v", err)
	}
	tickets, err := repo.GetTickets(ctx, 0)
	if err != nil {
		t.Fatalf("GetTickets: %v", err)
	}
	if len(tickets) != 0 {
		t.Errorf("tickets survived project delete: %+v", tickets)
	}
	members, err := repo.Members(ctx)
	if err != nil {
		t.Fatalf("Members: %v", err)
	}
	if len(members) != 0 {
		t.Errorf("members survived project delete: %+v", members)
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	if err := Seed(ctx, db); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if err := Seed(ctx, db); err != nil {
		t.Fatalf("second Seed: %v", err)
	}

	repo := NewRepository(db)
	projects, err := repo.GetAllProjects(ctx)
	if err != nil {
		t.Fatalf("GetAllProjects: %v", err)
	}
	if len(projects) != 1 {
		t.Errorf("projects = %d, want 1 (seed must not duplicate)", len(projects))
	}
	members, err := repo.Members(ctx)
	if err != nil {
		t.Fatalf("Members: %v", err)
	}
	if len(members) != 3 {
		t.Errorf("members = %d, want 3", len(members))
	}
}
