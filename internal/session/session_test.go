package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/prodhub/workbench/internal/models"
)

func newSession() *Session {
	return New(User{ID: "u1", Name: "Alex Chen", Role: "Product Director"})
}

func TestSetView_Idempotent(t *testing.T) {
	s := newSession()
	assert.Equal(t, ViewPortal, s.View())

	s.SetView(ViewTickets)
	assert.Equal(t, ViewTickets, s.View())

	s.SetView(ViewTickets)
	assert.Equal(t, ViewTickets, s.View())
}

func TestRefreshSelection(t *testing.T) {
	s := newSession()
	orig := &models.Ticket{ID: "T-1", Title: "Slow login"}
	s.Select(orig)

	// Writing a different ticket leaves the selection alone.
	s.RefreshSelection(&models.Ticket{ID: "T-2", Title: "Other"})
	assert.Equal(t, "Slow login", s.Selected().Title)

	// Writing the selected id swaps the selection to the fresh record.
	updated := &models.Ticket{ID: "T-1", Title: "Slow login", Status: models.TicketStatusResolved}
	s.RefreshSelection(updated)
	assert.Equal(t, models.TicketStatusResolved, s.Selected().Status)

	s.ClearSelectionIfDeleted("T-9")
	assert.NotNil(t, s.Selected())
	s.ClearSelectionIfDeleted("T-1")
	assert.Nil(t, s.Selected())
}

func TestFilterChange_ResetsPage(t *testing.T) {
	s := newSession()

	s.SetPage(ViewTickets, 4)
	assert.Equal(t, 4, s.List(ViewTickets).Page)

	s.SetQuery(ViewTickets, "login")
	assert.Equal(t, 1, s.List(ViewTickets).Page)

	s.SetPage(ViewTickets, 3)
	s.SetStatus(ViewTickets, "OPEN")
	assert.Equal(t, 1, s.List(ViewTickets).Page)

	s.SetPage(ViewTickets, 2)
	s.SetFilter(ViewTickets, "priority", "HIGH")
	assert.Equal(t, 1, s.List(ViewTickets).Page)

	// Re-applying the same filter value is not a change.
	s.SetPage(ViewTickets, 5)
	s.SetQuery(ViewTickets, "login")
	s.SetStatus(ViewTickets, "OPEN")
	s.SetFilter(ViewTickets, "priority", "HIGH")
	assert.Equal(t, 5, s.List(ViewTickets).Page)
}

func TestListState_PerView(t *testing.T) {
	s := newSession()

	s.SetQuery(ViewTickets, "crash")
	s.SetQuery(ViewDocuments, "guide")
	s.SetPage(ViewDocuments, 2)

	assert.Equal(t, "crash", s.List(ViewTickets).Query)
	assert.Equal(t, 1, s.List(ViewTickets).Page)
	assert.Equal(t, "guide", s.List(ViewDocuments).Query)
	assert.Equal(t, 2, s.List(ViewDocuments).Page)
}

func TestSetPage_ClampsBelowOne(t *testing.T) {
	s := newSession()
	s.SetPage(ViewOutbound, -3)
	assert.Equal(t, 1, s.List(ViewOutbound).Page)
}
