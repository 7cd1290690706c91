// Package session tracks what a single operator is looking at: the
// active view, the selected ticket, and per-list filter and page
// state. It carries no history; switching views is idempotent.
package session

import (
	"sync"

	"github.com/prodhub/workbench/internal/models"
)

// ViewState identifies one of the top-level views.
type ViewState string

const (
	ViewPortal    ViewState = "PORTAL"
	ViewDashboard ViewState = "DASHBOARD"
	ViewRoadmap   ViewState = "ROADMAP"
	ViewTickets   ViewState = "TICKETS"
	ViewProducts  ViewState = "PRODUCTS"
	ViewDocuments ViewState = "DOCUMENTS"
	ViewOutbound  ViewState = "OUTBOUND"
	ViewSettings  ViewState = "SETTINGS"
)

// User is the operator the session belongs to.
type User struct {
	ID     string
	Name   string
	Role   string
	Avatar string
}

// ListState is the filter and page state of one list view. Page is
// 1-based. Changing any filter resets Page to 1.
type ListState struct {
	Query   string
	Status  string
	Page    int
	Filters map[string]string
}

// Session is the mutable per-operator state. It is safe for
// concurrent use.
type Session struct {
	mu sync.RWMutex

	user     User
	view     ViewState
	selected *models.Ticket

	lists map[ViewState]*ListState
}

// New starts a session on the portal view.
func New(user User) *Session {
	return &Session{
		user:  user,
		view:  ViewPortal,
		lists: make(map[ViewState]*ListState),
	}
}

// User returns the session's operator.
func (s *Session) User() User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// View returns the active view.
func (s *Session) View() ViewState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

// SetView switches the active view. Switching to the current view is
// a no-op; there is no navigation history to unwind.
func (s *Session) SetView(v ViewState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = v
}

// Selected returns the currently selected ticket, or nil.
func (s *Session) Selected() *models.Ticket {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected
}

// Select marks a ticket as the detail selection. Passing nil clears it.
func (s *Session) Select(t *models.Ticket) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = t
}

// RefreshSelection updates the selection when the ticket just written
// is the one on screen, so the detail view never shows stale data.
// Tickets with other ids leave the selection alone.
func (s *Session) RefreshSelection(t *models.Ticket) {
	if t == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected != nil && s.selected.ID == t.ID {
		s.selected = t
	}
}

// ClearSelectionIfDeleted drops the selection when its ticket is gone.
func (s *Session) ClearSelectionIfDeleted(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected != nil && s.selected.ID == id {
		s.selected = nil
	}
}

// List returns the list state for a view, creating it on first use.
func (s *Session) List(v ViewState) ListState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.listLocked(v)
}

func (s *Session) listLocked(v ViewState) *ListState {
	ls, ok := s.lists[v]
	if !ok {
		ls = &ListState{Page: 1, Filters: make(map[string]string)}
		s.lists[v] = ls
	}
	return ls
}

// SetQuery updates the search query for a view and resets its page.
func (s *Session) SetQuery(v ViewState, query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ls := s.listLocked(v)
	if ls.Query == query {
		return
	}
	ls.Query = query
	ls.Page = 1
}

// SetStatus updates the status filter for a view and resets its page.
func (s *Session) SetStatus(v ViewState, status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ls := s.listLocked(v)
	if ls.Status == status {
		return
	}
	ls.Status = status
	ls.Page = 1
}

// SetFilter updates a named filter axis for a view and resets its page.
func (s *Session) SetFilter(v ViewState, key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ls := s.listLocked(v)
	if ls.Filters[key] == value {
		return
	}
	ls.Filters[key] = value
	ls.Page = 1
}

// SetPage moves a view to the given page. Pages below 1 clamp to 1;
// clamping against the total is the paginator's job.
func (s *Session) SetPage(v ViewState, page int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if page < 1 {
		page = 1
	}
	s.listLocked(v).Page = page
}
