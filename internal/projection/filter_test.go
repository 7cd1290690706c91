package projection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prodhub/workbench/internal/models"
)

func testVersions() []*models.ProductVersion {
	return []*models.ProductVersion{
		{ID: "v1", ProductName: "Core Platform", Version: "v2.4.0"},
		{ID: "v2", ProductName: "Data Gateway", Version: "v1.1.0"},
		{ID: "v3", ProductName: "Core Platform", Version: "v2.5.0", IsArchived: true},
		{ID: "v4", ProductName: "Edge Agent", Version: "v0.9.0"},
	}
}

func TestFilterVersions_HidesArchivedByDefault(t *testing.T) {
	out := FilterVersions(testVersions(), "", false)
	require.Len(t, out, 3)
	for _, v := range out {
		assert.False(t, v.IsArchived)
	}

	out = FilterVersions(testVersions(), "", true)
	assert.Len(t, out, 4)
}

func TestFilterVersions_QueryMatchesNameOrLabel(t *testing.T) {
	out := FilterVersions(testVersions(), "core", false)
	require.Len(t, out, 1)
	assert.Equal(t, "v1", out[0].ID)

	out = FilterVersions(testVersions(), "V1.1", false)
	require.Len(t, out, 1)
	assert.Equal(t, "v2", out[0].ID)
}

func TestFilterVersions_PreservesOrderAndIsIdempotent(t *testing.T) {
	versions := testVersions()
	first := FilterVersions(versions, "v", true)
	second := FilterVersions(versions, "v", true)

	assert.Equal(t, first, second)
	require.Len(t, first, 4)
	assert.Equal(t, "v1", first[0].ID)
	assert.Equal(t, "v4", first[3].ID)
}

func TestFilterTickets_Axes(t *testing.T) {
	tickets := []*models.Ticket{
		{ID: "T-1", Title: "Login fails", Status: models.TicketStatusOpen, Priority: models.TicketPriorityHigh, CustomerName: "Acme"},
		{ID: "T-2", Title: "Export slow", Status: models.TicketStatusClosed, Priority: models.TicketPriorityLow, CustomerName: "Globex"},
		{ID: "T-3", Title: "Login loop", Status: models.TicketStatusOpen, Priority: models.TicketPriorityLow, CustomerName: "Acme"},
	}

	out := FilterTickets(tickets, TicketFilter{Query: "login"})
	assert.Len(t, out, 2)

	out = FilterTickets(tickets, TicketFilter{Query: "login", Status: "OPEN", Priority: "HIGH"})
	require.Len(t, out, 1)
	assert.Equal(t, "T-1", out[0].ID)

	// The All sentinel skips an axis.
	out = FilterTickets(tickets, TicketFilter{Status: All, Priority: All})
	assert.Len(t, out, 3)

	// Customer name is a searched field.
	out = FilterTickets(tickets, TicketFilter{Query: "globex"})
	require.Len(t, out, 1)
	assert.Equal(t, "T-2", out[0].ID)
}

func TestFilterDocuments(t *testing.T) {
	docs := []*models.Document{
		{ID: "d1", Title: "Install Guide", Category: models.DocumentCategoryDelivery, VersionID: "v1"},
		{ID: "d2", Title: "API Reference", Category: models.DocumentCategoryRnD, VersionID: "v1"},
		{ID: "d3", Title: "Install Checklist", Category: models.DocumentCategoryOps, VersionID: "v2"},
	}

	out := FilterDocuments(docs, "install", All, All)
	assert.Len(t, out, 2)

	out = FilterDocuments(docs, "install", "v1", All)
	require.Len(t, out, 1)
	assert.Equal(t, "d1", out[0].ID)

	out = FilterDocuments(docs, "", All, string(models.DocumentCategoryRnD))
	require.Len(t, out, 1)
	assert.Equal(t, "d2", out[0].ID)
}

func TestFilterOutbound(t *testing.T) {
	reqs := []*models.OutboundRequest{
		{ID: "OB-1", ProjectSide: "North Site", Applicant: "wei", ProductName: "Core Platform", Status: models.OutboundStatusPending},
		{ID: "OB-2", ProjectSide: "South Site", Applicant: "li", ProductName: "Data Gateway", Status: models.OutboundStatusApproved},
	}

	out := FilterOutbound(reqs, "north", "")
	require.Len(t, out, 1)
	assert.Equal(t, "OB-1", out[0].ID)

	out = FilterOutbound(reqs, "", string(models.OutboundStatusApproved))
	require.Len(t, out, 1)
	assert.Equal(t, "OB-2", out[0].ID)

	// Denormalized product text is searchable.
	out = FilterOutbound(reqs, "gateway", All)
	require.Len(t, out, 1)
	assert.Equal(t, "OB-2", out[0].ID)
}

func navFixtures() []*models.NavGroup {
	return []*models.NavGroup{
		{
			ID:    "g1",
			Title: "Build Tools",
			Items: []models.NavResource{
				{ID: "r1", Name: "CI Server", Description: "Pipeline runs"},
				{ID: "r2", Name: "Artifact Registry", Description: "Container images"},
			},
		},
		{
			ID:    "g2",
			Title: "Knowledge Base",
			Items: []models.NavResource{
				{ID: "r3", Name: "Wiki", Description: "Team handbook and pipeline docs"},
				{ID: "r4", Name: "Design System", Description: "Component library"},
			},
		},
	}
}

func TestSearchNavGroups_TitleMatchKeepsWholeGroup(t *testing.T) {
	out := SearchNavGroups(navFixtures(), "build")
	require.Len(t, out, 1)
	assert.Equal(t, "g1", out[0].ID)
	assert.Len(t, out[0].Items, 2, "title match retains every item")
}

func TestSearchNavGroups_ItemMatchNarrowsGroup(t *testing.T) {
	// "pipeline" hits an item in each group but neither group title.
	out := SearchNavGroups(navFixtures(), "pipeline")
	require.Len(t, out, 2)

	require.Len(t, out[0].Items, 1)
	assert.Equal(t, "r1", out[0].Items[0].ID)
	require.Len(t, out[1].Items, 1)
	assert.Equal(t, "r3", out[1].Items[0].ID)
}

func TestSearchNavGroups_DropsGroupsWithNoMatches(t *testing.T) {
	out := SearchNavGroups(navFixtures(), "component")
	require.Len(t, out, 1)
	assert.Equal(t, "g2", out[0].ID)
	require.Len(t, out[0].Items, 1)
	assert.Equal(t, "r4", out[0].Items[0].ID)
}

func TestSearchNavGroups_DoesNotMutateInput(t *testing.T) {
	groups := navFixtures()
	_ = SearchNavGroups(groups, "pipeline")

	assert.Len(t, groups[0].Items, 2)
	assert.Len(t, groups[1].Items, 2)
}

func TestSearchNavGroups_EmptyQueryReturnsAll(t *testing.T) {
	groups := navFixtures()
	out := SearchNavGroups(groups, "")
	assert.Equal(t, groups, out)
}
