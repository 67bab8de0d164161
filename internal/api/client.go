// Package api is the boundary between optimistic local board state and the
// authoritative remote store. The client translates store mutations into
// REST calls and hands authoritative responses back to the caller; it makes
// exactly one network call per commit and never retries on its own.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"time"

	"github.com/kanriapp/kanri/internal/models"
)

// DefaultTimeout bounds every request; a timeout is treated as a
// persistence failure like any other transport error.
const DefaultTimeout = 10 * time.Second

// Client talks to the kanrid REST API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the API rooted at baseURL
// (e.g. "http://localhost:8410"). A non-positive timeout falls back to
// DefaultTimeout. Requests carry cookies, matching the browser client's
// credentials-included fetches.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	jar, _ := cookiejar.New(nil)
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: timeout,
			Jar:     jar,
		},
	}
}

// TicketDraft carries the client-supplied fields for a ticket create.
// Identity and timestamps are server-assigned and absent here.
type TicketDraft struct {
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Status       models.Status `json:"status"`
	Priority     int           `json:"priority"`
	DueDate      *time.Time    `json:"dueDate,omitempty"`
	ProjectID    int           `json:"projectId,omitempty"`
	AssignedToID *int          `json:"assignedToId,omitempty"`
}

// ticketUpdate is the PUT body: the full current client-side ticket fields
// except identity and timestamps (the server recomputes updatedAt).
type ticketUpdate struct {
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Status       models.Status `json:"status"`
	Priority     int           `json:"priority"`
	DueDate      *time.Time    `json:"dueDate,omitempty"`
	TeamID       int           `json:"teamId,omitempty"`
	AssignedToID *int          `json:"assignedToId"`
}

// suggestRequest is the POST body for the assignee suggestion endpoint.
type suggestRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ProjectID   int    `json:"projectId,omitempty"`
}

type suggestResponse struct {
	Member *models.MemberRef `json:"member"`
}

// ListTickets fetches the board, optionally scoped to a project
// (projectID 0 means all projects).
func (c *Client) ListTickets(ctx context.Context, projectID int) ([]*models.Ticket, error) {
	u := c.baseURL + "/api/tickets"
	if projectID > 0 {
		u += "?projectId=" + url.QueryEscape(strconv.Itoa(projectID))
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list tickets: unexpected status %d", resp.StatusCode)
	}
	var tickets []*models.Ticket
	if err := json.NewDecoder(resp.Body).Decode(&tickets); err != nil {
		return nil, fmt.Errorf("list tickets: decode: %w", err)
	}
	return tickets, nil
}

// CreateTicket creates a ticket and returns the server's canonical copy
// (with id and timestamps assigned). Create failures never touched the
// store, so there is nothing for the caller to roll back.
func (c *Client) CreateTicket(ctx context.Context, draft TicketDraft) (*models.Ticket, error) {
	resp, err := c.send(ctx, http.MethodPost, "/api/tickets", draft)
	if err != nil {
		return nil, &ReconciliationError{Kind: FailureTransport, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		return nil, c.failure("", resp)
	}
	return decodeTicket(resp.Body)
}

// PersistStatusChange sends the ticket's full current client-side fields
// to the server after a drop changed its status. On success it returns the
// server's canonical ticket; on any non-success outcome it returns a
// ReconciliationError carrying the ticket id so the caller can roll back.
func (c *Client) PersistStatusChange(ctx context.Context, t *models.Ticket) (*models.Ticket, error) {
	body := ticketUpdate{
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		DueDate:     t.DueDate,
	}
	// The PUT replaces the ticket wholesale, so references the move did
	// not touch still have to ride along or the server drops them.
	if t.Team != nil {
		body.TeamID = t.Team.ID
	}
	if t.AssignedTo != nil {
		id := t.AssignedTo.ID
		body.AssignedToID = &id
	}

	resp, err := c.send(ctx, http.MethodPut, "/api/tickets/"+url.PathEscape(t.ID), body)
	if err != nil {
		return nil, &ReconciliationError{TicketID: t.ID, Kind: FailureTransport, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, c.failure(t.ID, resp)
	}
	return decodeTicket(resp.Body)
}

// DeleteTicket deletes the ticket server-side. The caller applies the
// delete optimistically with the same snapshot/rollback discipline as
// moves.
func (c *Client) DeleteTicket(ctx context.Context, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/api/tickets/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return &ReconciliationError{TicketID: id, Kind: FailureTransport, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		return c.failure(id, resp)
	}
	return nil
}

// SuggestAssignee asks the server who should work on a ticket with the
// given text. A nil member with nil error means "no suggestion".
func (c *Client) SuggestAssignee(ctx context.Context, title, description string, projectID int) (*models.MemberRef, error) {
	resp, err := c.send(ctx, http.MethodPost, "/api/tickets/suggest-assignee", suggestRequest{
		Title:       title,
		Description: description,
		ProjectID:   projectID,
	})
	if err != nil {
		return nil, fmt.Errorf("suggest assignee: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("suggest assignee: unexpected status %d", resp.StatusCode)
	}
	var out suggestResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("suggest assignee: decode: %w", err)
	}
	return out.Member, nil
}

func (c *Client) send(ctx context.Context, method, path string, body any) (*http.Response, error) {
	buf, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(buf))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.http.Do(req)
}

// failure maps a non-success HTTP response onto the error taxonomy.
// Validation failures (4xx) and transport failures (5xx and below the
// HTTP layer) are treated identically for rollback purposes; the kind
// only changes the message shown to the user.
func (c *Client) failure(ticketID string, resp *http.Response) *ReconciliationError {
	kind := FailureTransport
	switch {
	case resp.StatusCode == http.StatusNotFound:
		kind = FailureNotFound
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		kind = FailureValidation
	}
	return &ReconciliationError{
		TicketID:   ticketID,
		Kind:       kind,
		StatusCode: resp.StatusCode,
		Err:        fmt.Errorf("server said: %s", readErrorBody(resp.Body)),
	}
}

func decodeTicket(r io.Reader) (*models.Ticket, error) {
	var t models.Ticket
	if err := json.NewDecoder(r).Decode(&t); err != nil {
		return nil, fmt.Errorf("decode ticket: %w", err)
	}
	return &t, nil
}

// readErrorBody pulls the server's error message out of a failure body,
// tolerating both {"error": "..."} payloads and plain text.
func readErrorBody(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(data) == 0 {
		return "no details"
	}
	var payload struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(data, &payload) == nil && payload.Error != "" {
		return payload.Error
	}
	return string(data)
}
