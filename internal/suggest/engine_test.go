package suggest

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/kanriapp/kanri/internal/models"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

// fakeSuggester records calls and answers with a member named after the
// request title. Titles containing "slow" are delayed to simulate a
// response overtaken by a newer request.
type fakeSuggester struct {
	mu    sync.Mutex
	calls []string
	err   error
	delay time.Duration
}

func (f *fakeSuggester) SuggestAssignee(ctx context.Context, title, description string, projectID int) (*models.MemberRef, error) {
	f.mu.Lock()
	f.calls = append(f.calls, title)
	f.mu.Unlock()
	if f.delay > 0 && strings.Contains(title, "slow") {
		time.Sleep(f.delay)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &models.MemberRef{ID: 1, Name: title}, nil
}

func (f *fakeSuggester) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeSuggester) lastCall() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return ""
	}
	return f.calls[len(f.calls)-1]
}

// collector gathers delivered suggestions.
type collector struct {
	mu   sync.Mutex
	got  []Suggestion
	wake chan struct{}
}

func newCollector() *collector {
	return &collector{wake: make(chan struct{}, 16)}
}

func (c *collector) sink(s Suggestion) {
	c.mu.Lock()
	c.got = append(c.got, s)
	c.mu.Unlock()
	c.wake <- struct{}{}
}

func (c *collector) waitForOne(t *testing.T) Suggestion {
	t.Helper()
	select {
	case <-c.wake:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a suggestion")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.got[len(c.got)-1]
}

func (c *collector) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.got)
}

// ============================================================================
// DEBOUNCE
// ============================================================================

func TestDebounceCollapsesRapidEditsIntoOneRequest(t *testing.T) {
	fake := &fakeSuggester{}
	col := newCollector()
	e := NewEngine(fake, 40*time.Millisecond, col.sink)
	defer e.Close()

	// Five changes inside the window, then silence.
	for _, title := range []string{"p", "po", "pos", "post", "postgres migration"} {
		e.TextChanged(title, "")
		time.Sleep(2 * time.Millisecond)
	}

	got := col.waitForOne(t)
	if got.Member == nil || got.Member.Name != "postgres migration" {
		t.Errorf("delivered %+v, want suggestion for the final text", got.Member)
	}
	if n := fake.callCount(); n != 1 {
		t.Errorf("issued %d requests, want exactly 1", n)
	}
	if fake.lastCall() != "postgres migration" {
		t.Errorf("request text = %q, want the final value", fake.lastCall())
	}
}

func TestQuietWindowBetweenEditsIssuesTwoRequests(t *testing.T) {
	fake := &fakeSuggester{}
	col := newCollector()
	e := NewEngine(fake, 20*time.Millisecond, col.sink)
	defer e.Close()

	e.TextChanged("first", "")
	col.waitForOne(t)
	e.TextChanged("second", "")
	col.waitForOne(t)

	if n := fake.callCount(); n != 2 {
		t.Errorf("issued %d requests, want 2", n)
	}
}

// ============================================================================
// LAST REQUEST WINS
// ============================================================================

func TestStaleResponseIsDiscarded(t *testing.T) {
	fake := &fakeSuggester{delay: 120 * time.Millisecond}
	col := newCollector()
	e := NewEngine(fake, 10*time.Millisecond, col.sink)
	defer e.Close()

	e.TextChanged("slow query", "")
	// Let the slow request get issued before superseding it.
	time.Sleep(40 * time.Millisecond)
	e.TextChanged("fast fix", "")

	got := col.waitForOne(t)
	if got.Member == nil || got.Member.Name != "fast fix" {
		t.Fatalf("delivered %+v, want the newer request's result", got.Member)
	}

	// Give the slow response time to arrive; it must be dropped.
	time.Sleep(200 * time.Millisecond)
	if n := col.count(); n != 1 {
		t.Errorf("%d deliveries, want 1 (stale response must be discarded)", n)
	}
}

func TestFailureIsSwallowed(t *testing.T) {
	fake := &fakeSuggester{err: errors.New("connection refused")}
	col := newCollector()
	e := NewEngine(fake, 10*time.Millisecond, col.sink)
	defer e.Close()

	e.TextChanged("anything", "")

	got := col.waitForOne(t)
	if got.Member != nil {
		t.Errorf("failure delivered a member: %+v", got.Member)
	}
}

func TestCloseDropsInFlightResponses(t *testing.T) {
	fake := &fakeSuggester{delay: 60 * time.Millisecond}
	col := newCollector()
	e := NewEngine(fake, 5*time.Millisecond, col.sink)

	e.TextChanged("slow shutdown", "")
	time.Sleep(20 * time.Millisecond) // request now in flight
	e.Close()

	time.Sleep(100 * time.Millisecond)
	if n := col.count(); n != 0 {
		t.Errorf("%d deliveries after Close, want 0", n)
	}
}
