package health

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prodhub/workbench/internal/models"
	"github.com/prodhub/workbench/internal/timeline"
)

func testWindow(t *testing.T) timeline.Window {
	t.Helper()
	// Fixed window: 2024-10-01 through 2025-02-28.
	now := time.Date(2024, time.November, 15, 0, 0, 0, 0, time.UTC)
	return timeline.DefaultWindow(now)
}

func TestSummarize_TicketCounts(t *testing.T) {
	in := Input{
		Tickets: []*models.Ticket{
			{ID: "a", Status: models.TicketStatusOpen, Priority: models.TicketPriorityCritical},
			{ID: "b", Status: models.TicketStatusOpen, Priority: models.TicketPriorityLow},
			{ID: "c", Status: models.TicketStatusInProgress, Priority: models.TicketPriorityHigh},
			{ID: "d", Status: models.TicketStatusResolved, Priority: models.TicketPriorityCritical},
			{ID: "e", Status: models.TicketStatusClosed, Priority: models.TicketPriorityMedium},
		},
	}

	s := Summarize(in, testWindow(t))

	assert.Equal(t, 2, s.TicketsByStatus[models.TicketStatusOpen])
	assert.Equal(t, 1, s.TicketsByStatus[models.TicketStatusInProgress])
	assert.Equal(t, 2, s.TicketsByPriority[models.TicketPriorityCritical])
	assert.Equal(t, 3, s.OpenTickets)

	// Only open critical tickets make the attention list.
	require.Len(t, s.CriticalOpen, 1)
	assert.Equal(t, "a", s.CriticalOpen[0].ID)
}

func TestSummarize_Versions(t *testing.T) {
	in := Input{
		Versions: []*models.ProductVersion{
			{ID: "v1", Status: models.VersionStatusDeveloping, Progress: 70, StartDate: "2024-10-10", EndDate: "2024-12-20"},
			{ID: "v2", Status: models.VersionStatusDeveloping, Progress: 20, StartDate: "2024-10-01", EndDate: "2024-11-10"},
			{ID: "v3", Status: models.VersionStatusPlanning, IsDelayed: true, StartDate: "2024-11-01", EndDate: "2025-01-15"},
			{ID: "v4", Status: models.VersionStatusDeveloping, IsDelayed: true, StartDate: "2023-01-01", EndDate: "2023-03-01"},
			{ID: "v5", Status: models.VersionStatusArchived, IsArchived: true, IsDelayed: true, StartDate: "2024-11-01", EndDate: "2024-12-01"},
		},
	}

	s := Summarize(in, testWindow(t))

	assert.Equal(t, 3, s.ActiveVersions, "archived v5 not counted, planning v3 not active")

	// v4 is delayed but outside the window; v5 is archived.
	require.Len(t, s.DelayedVersions, 1)
	assert.Equal(t, "v3", s.DelayedVersions[0].ID)

	require.Len(t, s.AtRiskVersions, 1)
	assert.Equal(t, "v2", s.AtRiskVersions[0].ID)
}

func TestSummarize_DocumentsAndOutbound(t *testing.T) {
	in := Input{
		Documents: []*models.Document{
			{ID: "d1", Category: models.DocumentCategoryMarket},
			{ID: "d2", Category: models.DocumentCategoryMarket},
			{ID: "d3", Category: models.DocumentCategoryOps},
		},
		Outbound: []*models.OutboundRequest{
			{ID: "o1", Status: models.OutboundStatusPending},
			{ID: "o2", Status: models.OutboundStatusApproved},
			{ID: "o3", Status: models.OutboundStatusPending},
			{ID: "o4", Status: models.OutboundStatusRejected},
		},
	}

	s := Summarize(in, testWindow(t))

	assert.Equal(t, 2, s.DocumentsByCategory[models.DocumentCategoryMarket])
	assert.Equal(t, 1, s.DocumentsByCategory[models.DocumentCategoryOps])
	assert.Equal(t, 0, s.DocumentsByCategory[models.DocumentCategoryRnD])
	assert.Equal(t, 2, s.PendingOutbound)
}

func TestSummarize_ClampsProductHealth(t *testing.T) {
	in := Input{
		Products: []*models.Product{
			{ID: "p1", Name: "A", Health: 150},
			{ID: "p2", Name: "B", Health: -5},
			{ID: "p3", Name: "C", Health: 85},
		},
	}

	s := Summarize(in, testWindow(t))

	require.Len(t, s.Products, 3)
	assert.Equal(t, 100, s.Products[0].Health)
	assert.Equal(t, 0, s.Products[1].Health)
	assert.Equal(t, 85, s.Products[2].Health)
}
