// Package server exposes the ticket API over HTTP: the board endpoints
// the TUI client reconciles against, the assignee suggestion endpoint,
// and plain CRUD for projects, teams and members.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/kanriapp/kanri/internal/assign"
	"github.com/kanriapp/kanri/internal/database"
	"github.com/kanriapp/kanri/internal/services/member"
	"github.com/kanriapp/kanri/internal/services/ticket"
)

// Server holds the HTTP surface and its collaborators.
type Server struct {
	repo    database.DataStore
	tickets ticket.Service
	members member.Service
	scorer  *assign.Scorer
	router  *mux.Router
}

// NewServer wires services and routes over the given data store.
func NewServer(repo database.DataStore) *Server {
	s := &Server{
		repo:    repo,
		tickets: ticket.NewService(repo),
		members: member.NewService(repo),
		scorer:  assign.NewScorer(repo),
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()

	// Board endpoints
	r.HandleFunc("/api/tickets", s.listTickets).Methods("GET")
	r.HandleFunc("/api/tickets", s.createTicket).Methods("POST")
	r.HandleFunc("/api/tickets/suggest-assignee", s.suggestAssignee).Methods("POST")
	r.HandleFunc("/api/tickets/{id}", s.getTicket).Methods("GET")
	r.HandleFunc("/api/tickets/{id}", s.updateTicket).Methods("PUT")
	r.HandleFunc("/api/tickets/{id}", s.deleteTicket).Methods("DELETE")

	// Admin CRUD
	r.HandleFunc("/api/projects", s.listProjects).Methods("GET")
	r.HandleFunc("/api/projects", s.createProject).Methods("POST")
	r.HandleFunc("/api/projects/{id}", s.updateProject).Methods("PUT")
	r.HandleFunc("/api/projects/{id}", s.deleteProject).Methods("DELETE")

	r.HandleFunc("/api/teams", s.listTeams).Methods("GET")
	r.HandleFunc("/api/teams", s.createTeam).Methods("POST")
	r.HandleFunc("/api/teams/{id}", s.updateTeam).Methods("PUT")
	r.HandleFunc("/api/teams/{id}", s.deleteTeam).Methods("DELETE")

	r.HandleFunc("/api/members", s.listMembers).Methods("GET")
	r.HandleFunc("/api/members", s.createMember).Methods("POST")
	r.HandleFunc("/api/members/{id}", s.updateMember).Methods("PUT")
	r.HandleFunc("/api/members/{id}", s.deleteMember).Methods("DELETE")

	return r
}

// Handler returns the router wrapped in CORS middleware, ready to serve.
func (s *Server) Handler() http.Handler {
	c := cors.New(cors.Options{
		// Credentialed requests need the specific origin echoed back;
		// browsers reject Access-Control-Allow-Origin: * with
		// credentials, so let the middleware reflect whatever origin
		// called.
		AllowOriginFunc:  func(origin string) bool { return true },
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})
	return c.Handler(s.router)
}

// ListenAndServe runs the server on addr until ctx is cancelled, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	slog.Info("Server listening", "addr", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
