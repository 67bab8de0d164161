package models

import "time"

// Member represents a person that tickets can be assigned to.
// The Skills field is a free-text comma-separated list of keywords;
// the assignment scorer tokenizes it together with the job fields.
type Member struct {
	ID             int       `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	JobPosition    string    `json:"jobPosition,omitempty"`
	JobDescription string    `json:"jobDescription,omitempty"`
	Skills         string    `json:"skills,omitempty"`
	TeamID         int       `json:"teamId,omitempty"`
	ProjectID      int       `json:"projectId,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Ref returns the lightweight reference used on tickets and in
// suggestion responses.
func (m *Member) Ref() *MemberRef {
	return &MemberRef{ID: m.ID, Name: m.Name}
}
