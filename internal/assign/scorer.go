// Package assign ranks candidate members for a ticket from its free-text
// title and description, using a blended skill/history/availability
// heuristic.
package assign

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/kanriapp/kanri/internal/models"
)

// Sub-score weights. They sum to 1, so the combined score stays in [0,1].
const (
	skillWeight        = 0.6
	historyWeight      = 0.3
	availabilityWeight = 0.1
)

// historyCap is the match count at which the history sub-score saturates.
const historyCap = 5

// availabilityCap is the open-ticket count past which a candidate is
// considered equally unavailable.
const availabilityCap = 10

// stopWords are dropped from the query token set before scoring.
var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "or": {}, "a": {}, "an": {}, "for": {}, "to": {},
	"of": {}, "in": {}, "on": {}, "with": {}, "by": {}, "is": {}, "are": {},
	"this": {}, "that": {},
}

// Repository is the read-only data the scorer needs: the candidate pool and
// each candidate's assigned tickets.
type Repository interface {
	Members(ctx context.Context) ([]*models.Member, error)
	MembersByProject(ctx context.Context, projectID int) ([]*models.Member, error)
	// TicketsAssignedTo returns tickets assigned to the member, scoped to
	// the project when projectID > 0.
	TicketsAssignedTo(ctx context.Context, memberID, projectID int) ([]*models.Ticket, error)
}

// Scorer ranks members for a ticket. It holds no state beyond its
// repository and is safe for concurrent use.
type Scorer struct {
	repo Repository
}

// NewScorer creates a scorer over the given repository.
func NewScorer(repo Repository) *Scorer {
	return &Scorer{repo: repo}
}

// Suggest returns the best candidate for a ticket with the given title and
// description, or nil when there is nothing to suggest. The candidate pool
// is the project's members when projectID > 0, all members otherwise.
//
// Ties go to the first candidate in pool iteration order. That order is
// whatever the repository returns and is not a guaranteed contract.
func (s *Scorer) Suggest(ctx context.Context, title, description string, projectID int) (*models.Member, error) {
	tokens := Tokenize(title + " " + description)
	if len(tokens) == 0 {
		return nil, nil
	}

	var candidates []*models.Member
	var err error
	if projectID > 0 {
		candidates, err = s.repo.MembersByProject(ctx, projectID)
	} else {
		candidates, err = s.repo.Members(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("load candidates: %w", err)
	}

	var best *models.Member
	bestScore := -1.0
	for _, m := range candidates {
		skill := overlapScore(tokens, skillTokens(m))

		history, err := s.historyScore(ctx, m, tokens, projectID)
		if err != nil {
			return nil, err
		}
		availability, err := s.availabilityScore(ctx, m)
		if err != nil {
			return nil, err
		}

		score := skillWeight*skill + historyWeight*history + availabilityWeight*availability
		if score > bestScore {
			bestScore = score
			best = m
		}
	}
	return best, nil
}

// Tokenize lower-cases the text, strips non-letter/non-digit runes, splits
// on whitespace and drops stop words.
func Tokenize(text string) []string {
	lowered := strings.ToLower(text)
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, lowered)

	var tokens []string
	for _, part := range strings.Fields(cleaned) {
		if _, stop := stopWords[part]; stop {
			continue
		}
		tokens = append(tokens, part)
	}
	return tokens
}

// skillTokens builds the candidate's skill vocabulary: the comma-separated
// skills entries plus whitespace tokens of the job position and job
// description, all lower-cased.
func skillTokens(m *models.Member) map[string]struct{} {
	set := make(map[string]struct{})
	for _, entry := range strings.Split(m.Skills, ",") {
		entry = strings.ToLower(strings.TrimSpace(entry))
		if entry != "" {
			set[entry] = struct{}{}
		}
	}
	for _, field := range []string{m.JobPosition, m.JobDescription} {
		for _, word := range strings.Fields(field) {
			set[strings.ToLower(word)] = struct{}{}
		}
	}
	return set
}

// overlapScore is the fraction of query tokens present in the candidate's
// skill vocabulary; 0 when either side is empty.
func overlapScore(queryTokens []string, skills map[string]struct{}) float64 {
	if len(queryTokens) == 0 || len(skills) == 0 {
		return 0
	}
	hits := 0
	for _, tok := range queryTokens {
		if _, ok := skills[tok]; ok {
			hits++
		}
	}
	return float64(hits) / float64(len(queryTokens))
}

// historyScore counts the candidate's assigned tickets whose title contains
// any query token as a substring, capped and normalized to [0,1].
func (s *Scorer) historyScore(ctx context.Context, m *models.Member, tokens []string, projectID int) (float64, error) {
	tickets, err := s.repo.TicketsAssignedTo(ctx, m.ID, projectID)
	if err != nil {
		return 0, fmt.Errorf("load history for member %d: %w", m.ID, err)
	}
	count := 0
	for _, t := range tickets {
		title := strings.ToLower(t.Title)
		for _, tok := range tokens {
			if strings.Contains(title, tok) {
				count++
				break
			}
		}
	}
	if count > historyCap {
		count = historyCap
	}
	return float64(count) / historyCap, nil
}

// availabilityScore is inversely proportional to the candidate's current
// assigned load across all projects, saturating past availabilityCap.
func (s *Scorer) availabilityScore(ctx context.Context, m *models.Member) (float64, error) {
	tickets, err := s.repo.TicketsAssignedTo(ctx, m.ID, 0)
	if err != nil {
		return 0, fmt.Errorf("load assignments for member %d: %w", m.ID, err)
	}
	n := len(tickets)
	if n > availabilityCap {
		n = availabilityCap
	}
	return 1.0 / float64(1+n), nil
}
