package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prodhub/workbench/internal/models"
	"github.com/prodhub/workbench/internal/store"
)

func newTestServer() *Server {
	return NewServer(store.NewMemoryStore(store.DefaultSeed()), nil)
}

// callToolReq builds a mcpgo.CallToolRequest with the given name and arguments.
func callToolReq(name string, args map[string]any) mcpgo.CallToolRequest {
	return mcpgo.CallToolRequest{
		Params: mcpgo.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

// resultText extracts the concatenated text from a CallToolResult.
func resultText(t *testing.T, result *mcpgo.CallToolResult) string {
	t.Helper()
	var b strings.Builder
	for _, c := range result.Content {
		tc, ok := c.(mcpgo.TextContent)
		if ok {
			b.WriteString(tc.Text)
		}
	}
	return b.String()
}

func TestHandleListTickets(t *testing.T) {
	srv := newTestServer()
	ctx := context.Background()

	result, err := srv.handleListTickets(ctx, callToolReq("workbench_list_tickets", nil))
	require.NoError(t, err)
	require.False(t, result.IsError)

	var out []map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &out))
	assert.NotEmpty(t, out)
}

func TestHandleListTickets_StatusFilter(t *testing.T) {
	srv := newTestServer()
	ctx := context.Background()

	result, err := srv.handleListTickets(ctx,
		callToolReq("workbench_list_tickets", map[string]any{"status": "IN_PROGRESS"}))
	require.NoError(t, err)

	var out []map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &out))
	for _, row := range out {
		assert.Equal(t, "IN_PROGRESS", row["status"])
	}
}

func TestHandleCreateTicket(t *testing.T) {
	srv := newTestServer()
	ctx := context.Background()

	result, err := srv.handleCreateTicket(ctx, callToolReq("workbench_create_ticket", map[string]any{
		"title":    "Report export hangs",
		"customer": "Globex",
		"priority": "HIGH",
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	var out map[string]string
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &out))
	assert.NotEmpty(t, out["id"])
	assert.Equal(t, "OPEN", out["status"])
	assert.Equal(t, "HIGH", out["priority"])
}

func TestHandleCreateTicket_MissingTitle(t *testing.T) {
	srv := newTestServer()
	result, err := srv.handleCreateTicket(context.Background(),
		callToolReq("workbench_create_ticket", nil))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestHandleUpdateTicket(t *testing.T) {
	srv := newTestServer()
	ctx := context.Background()

	result, err := srv.handleUpdateTicket(ctx, callToolReq("workbench_update_ticket", map[string]any{
		"id":     "T-1024",
		"status": "RESOLVED",
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	got, err := srv.store.GetTicket(ctx, "T-1024")
	require.NoError(t, err)
	assert.Equal(t, models.TicketStatusResolved, got.Status)
}

func TestHandleUpdateTicket_NotFound(t *testing.T) {
	srv := newTestServer()
	result, err := srv.handleUpdateTicket(context.Background(),
		callToolReq("workbench_update_ticket", map[string]any{"id": "nope"}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "not found")
}

func TestHandleAnalyzeTicket_NotConfigured(t *testing.T) {
	srv := newTestServer()
	result, err := srv.handleAnalyzeTicket(context.Background(),
		callToolReq("workbench_analyze_ticket", map[string]any{"id": "T-1024"}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "not configured")
}

func TestHandleListVersions_HidesArchived(t *testing.T) {
	srv := newTestServer()
	ctx := context.Background()

	result, err := srv.handleListVersions(ctx, callToolReq("workbench_list_versions", nil))
	require.NoError(t, err)

	var out []map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &out))
	for _, row := range out {
		assert.NotEqual(t, "ARCHIVED", row["status"])
	}

	result, err = srv.handleListVersions(ctx,
		callToolReq("workbench_list_versions", map[string]any{"include_archived": true}))
	require.NoError(t, err)

	var all []map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &all))
	assert.Greater(t, len(all), len(out))
}

func TestHandleRoadmap(t *testing.T) {
	srv := newTestServer()

	result, err := srv.handleRoadmap(context.Background(), callToolReq("workbench_roadmap", nil))
	require.NoError(t, err)
	require.False(t, result.IsError)

	var out struct {
		Start string `json:"start"`
		End   string `json:"end"`
		Bars  []struct {
			Left  float64 `json:"left_percent"`
			Width float64 `json:"width_percent"`
		} `json:"bars"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &out))
	assert.NotEmpty(t, out.Start)
	require.NotEmpty(t, out.Bars)
	for _, b := range out.Bars {
		assert.GreaterOrEqual(t, b.Left, 0.0)
		assert.LessOrEqual(t, b.Left+b.Width, 100.0)
	}
}

func TestHandleDashboard(t *testing.T) {
	srv := newTestServer()

	result, err := srv.handleDashboard(context.Background(), callToolReq("workbench_dashboard", nil))
	require.NoError(t, err)
	require.False(t, result.IsError)

	var out struct {
		OpenTickets     int
		PendingOutbound int
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &out))
	assert.NotZero(t, out.OpenTickets)
	assert.NotZero(t, out.PendingOutbound)
}

func TestMCPIntegration_ListTools(t *testing.T) {
	srv := newTestServer()
	mcpSrv := srv.MCPServer()
	assert.NotNil(t, mcpSrv)
}
