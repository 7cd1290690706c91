package cmd

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prodhub/workbench/internal/models"
	"github.com/prodhub/workbench/internal/store"
	"github.com/prodhub/workbench/internal/timeline"
)

// testStore wires an in-memory store and a buffered UI into the
// package-level dependencies, undone on cleanup.
func testStore(t *testing.T, seed *store.Seed) (store.Store, *bytes.Buffer) {
	t.Helper()
	testEnv(t)

	s := store.NewMemoryStore(seed)
	dataStore = s
	t.Cleanup(func() { dataStore = nil })

	var buf bytes.Buffer
	ui.Out = &buf
	ui.ErrOut = &buf

	return s, &buf
}

func resetTicketFlags() {
	ticketTitle = ""
	ticketDesc = ""
	ticketPriority = ""
	ticketType = ""
	ticketCustomer = ""
	ticketProduct = ""
	ticketStatus = ""
	ticketAssignee = ""
	ticketSolution = ""
	ticketQuery = ""
	ticketPage = 1
	ticketAll = false
}

func TestTicketAddRun_CreatesTicket(t *testing.T) {
	s, _ := testStore(t, nil)
	resetTicketFlags()
	ticketTitle = "Login broken on mobile"
	ticketPriority = "HIGH"
	ticketCustomer = "Acme Corp"

	err := ticketAddRun()
	require.NoError(t, err)

	tickets, err := s.ListTickets(context.Background())
	require.NoError(t, err)
	require.Len(t, tickets, 1)
	assert.Equal(t, "Login broken on mobile", tickets[0].Title)
	assert.Equal(t, models.TicketPriorityHigh, tickets[0].Priority)
	assert.Equal(t, models.TicketStatusOpen, tickets[0].Status)
}

func TestTicketAddRun_DryRunWritesNothing(t *testing.T) {
	s, _ := testStore(t, nil)
	resetTicketFlags()
	ticketTitle = "Would-be ticket"
	dryRun = true
	ui.DryRun = true
	defer func() { dryRun = false }()

	require.NoError(t, ticketAddRun())

	tickets, err := s.ListTickets(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tickets)
}

func TestTicketListRun_FiltersByStatus(t *testing.T) {
	s, buf := testStore(t, nil)
	resetTicketFlags()
	ctx := context.Background()

	require.NoError(t, s.UpsertTicket(ctx, &models.Ticket{Title: "Open fault"}))
	require.NoError(t, s.UpsertTicket(ctx, &models.Ticket{Title: "Closed fault", Status: models.TicketStatusClosed}))

	ticketStatus = "CLOSED"
	require.NoError(t, ticketListRun())

	out := buf.String()
	assert.Contains(t, out, "Closed fault")
	assert.NotContains(t, out, "Open fault")
}

func TestTicketUpdateRun_NoFlagsIsNoOp(t *testing.T) {
	s, buf := testStore(t, nil)
	resetTicketFlags()
	ctx := context.Background()

	tk := &models.Ticket{Title: "Stays the same"}
	require.NoError(t, s.UpsertTicket(ctx, tk))

	require.NoError(t, ticketUpdateRun(tk.ID))
	assert.Contains(t, buf.String(), "Nothing to update")
}

func TestTicketUpdateRun_SetsStatus(t *testing.T) {
	s, _ := testStore(t, nil)
	resetTicketFlags()
	ctx := context.Background()

	tk := &models.Ticket{Title: "Needs work"}
	require.NoError(t, s.UpsertTicket(ctx, tk))

	ticketStatus = "IN_PROGRESS"
	ticketAssignee = "David Li"
	require.NoError(t, ticketUpdateRun(tk.ID))

	got, err := s.GetTicket(ctx, tk.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TicketStatusInProgress, got.Status)
	assert.Equal(t, "David Li", got.Assignee)
}

func TestTicketDeleteRun_MissingIDIsNoOp(t *testing.T) {
	testStore(t, nil)
	resetTicketFlags()
	assumeYes = true
	defer func() { assumeYes = false }()

	assert.NoError(t, ticketDeleteRun("nope"))
}

func TestTicketAnalyzeRun_NotConfigured(t *testing.T) {
	testStore(t, store.DefaultSeed())
	resetTicketFlags()

	err := ticketAnalyzeRun("T-1024")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "assist is not configured")
}

func TestRoadmapRun_RendersSeededVersions(t *testing.T) {
	_, buf := testStore(t, store.DefaultSeed())
	roadmapArchived = false

	require.NoError(t, roadmapRun(time.Now()))

	out := buf.String()
	assert.Contains(t, out, "Roadmap")
	assert.Contains(t, out, "=")
}

func TestGanttLane_StaysInBounds(t *testing.T) {
	lane := ganttLane(timeline.Bar{LeftPercent: 95, WidthPercent: 10})
	assert.Len(t, lane, ganttWidth)

	lane = ganttLane(timeline.Bar{LeftPercent: 0, WidthPercent: 0.1})
	assert.Len(t, lane, ganttWidth)
	assert.Contains(t, lane, "=")
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "abc", shortID("abc"))
	assert.Equal(t, "012345678901", shortID("0123456789012345"))
}
