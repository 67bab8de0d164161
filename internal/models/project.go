package models

import "time"

// Project groups teams, members and tickets.
type Project struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Team is an administrative grouping of members within a project.
type Team struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ProjectID   int       `json:"projectId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`

	// Members is populated on team reads; writes go through the
	// member endpoints.
	Members []*Member `json:"members,omitempty"`
}
