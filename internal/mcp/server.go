package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/prodhub/workbench/internal/assist"
	"github.com/prodhub/workbench/internal/health"
	"github.com/prodhub/workbench/internal/models"
	"github.com/prodhub/workbench/internal/projection"
	"github.com/prodhub/workbench/internal/store"
	"github.com/prodhub/workbench/internal/timeline"
)

// Server wraps the workbench data layer and exposes it as MCP tools.
type Server struct {
	store  store.Store
	assist *assist.Client
}

// NewServer creates the MCP server wrapper.
// The assist client may be nil if no API key is configured.
func NewServer(s store.Store, ac *assist.Client) *Server {
	return &Server{
		store:  s,
		assist: ac,
	}
}

// MCPServer returns a configured mcp-go server with all tools registered.
func (s *Server) MCPServer() *server.MCPServer {
	srv := server.NewMCPServer("workbench", "1.0.0", server.WithToolCapabilities(true))

	srv.AddTool(s.listTicketsTool())
	srv.AddTool(s.createTicketTool())
	srv.AddTool(s.updateTicketTool())
	srv.AddTool(s.analyzeTicketTool())
	srv.AddTool(s.listVersionsTool())
	srv.AddTool(s.roadmapTool())
	srv.AddTool(s.dashboardTool())

	return srv
}

// ServeStdio starts the stdio transport, blocking until ctx is cancelled.
func (s *Server) ServeStdio(ctx context.Context) error {
	srv := s.MCPServer()
	stdioServer := server.NewStdioServer(srv)
	return stdioServer.Listen(ctx, os.Stdin, os.Stdout)
}

// ---------------------------------------------------------------------------
// Tool definitions and handlers
// ---------------------------------------------------------------------------

// workbench_list_tickets
func (s *Server) listTicketsTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("workbench_list_tickets",
		mcp.WithDescription("List support tickets. Returns a JSON array with id, title, status, priority, customer, and product."),
		mcp.WithString("query", mcp.Description("Case-insensitive search over title, customer name, and id")),
		mcp.WithString("status", mcp.Description("Filter by status: OPEN, IN_PROGRESS, RESOLVED, CLOSED")),
		mcp.WithString("priority", mcp.Description("Filter by priority: LOW, MEDIUM, HIGH, CRITICAL")),
	)
	return tool, s.handleListTickets
}

func (s *Server) handleListTickets(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tickets, err := s.store.ListTickets(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list tickets: %v", err)), nil
	}

	tickets = projection.FilterTickets(tickets, projection.TicketFilter{
		Query:    request.GetString("query", ""),
		Status:   request.GetString("status", ""),
		Priority: request.GetString("priority", ""),
	})

	type ticketOut struct {
		ID       string `json:"id"`
		Title    string `json:"title"`
		Status   string `json:"status"`
		Priority string `json:"priority"`
		Customer string `json:"customer"`
		Product  string `json:"product"`
		Analyzed bool   `json:"analyzed"`
	}

	out := make([]ticketOut, len(tickets))
	for i, t := range tickets {
		out[i] = ticketOut{
			ID:       t.ID,
			Title:    t.Title,
			Status:   string(t.Status),
			Priority: string(t.Priority),
			Customer: t.CustomerName,
			Product:  t.ProductID,
			Analyzed: t.AIAnalysis != nil,
		}
	}

	data, err := json.Marshal(out)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal tickets: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// workbench_create_ticket
func (s *Server) createTicketTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("workbench_create_ticket",
		mcp.WithDescription("Create a support ticket. Status defaults to OPEN and priority to MEDIUM."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Ticket title")),
		mcp.WithString("description", mcp.Description("Ticket description")),
		mcp.WithString("priority", mcp.Description("LOW, MEDIUM, HIGH, or CRITICAL")),
		mcp.WithString("type", mcp.Description("Fault type, e.g. Bug, Performance, Feature Request")),
		mcp.WithString("customer", mcp.Description("Customer name")),
		mcp.WithString("product", mcp.Description("Product id")),
	)
	return tool, s.handleCreateTicket
}

func (s *Server) handleCreateTicket(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := request.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: title"), nil
	}

	t := &models.Ticket{
		Title:        title,
		Description:  request.GetString("description", ""),
		Priority:     models.TicketPriority(request.GetString("priority", "")),
		Type:         request.GetString("type", ""),
		CustomerName: request.GetString("customer", ""),
		ProductID:    request.GetString("product", ""),
	}

	if err := s.store.UpsertTicket(ctx, t); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to create ticket: %v", err)), nil
	}

	data, _ := json.Marshal(map[string]string{
		"id":       t.ID,
		"title":    t.Title,
		"status":   string(t.Status),
		"priority": string(t.Priority),
	})
	return mcp.NewToolResultText(string(data)), nil
}

// workbench_update_ticket
func (s *Server) updateTicketTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("workbench_update_ticket",
		mcp.WithDescription("Update fields of an existing ticket. Only provided fields change."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Ticket id")),
		mcp.WithString("status", mcp.Description("OPEN, IN_PROGRESS, RESOLVED, or CLOSED")),
		mcp.WithString("priority", mcp.Description("LOW, MEDIUM, HIGH, or CRITICAL")),
		mcp.WithString("assignee", mcp.Description("Assignee")),
		mcp.WithString("solution", mcp.Description("Resolution notes")),
	)
	return tool, s.handleUpdateTicket
}

func (s *Server) handleUpdateTicket(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: id"), nil
	}

	t, err := s.store.GetTicket(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ticket not found: %s", id)), nil
	}

	if v := request.GetString("status", ""); v != "" {
		t.Status = models.TicketStatus(v)
	}
	if v := request.GetString("priority", ""); v != "" {
		t.Priority = models.TicketPriority(v)
	}
	if v := request.GetString("assignee", ""); v != "" {
		t.Assignee = v
	}
	if v := request.GetString("solution", ""); v != "" {
		t.Solution = v
	}

	if err := s.store.UpsertTicket(ctx, t); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to update ticket: %v", err)), nil
	}

	data, _ := json.Marshal(map[string]string{
		"id":     t.ID,
		"status": string(t.Status),
	})
	return mcp.NewToolResultText(string(data)), nil
}

// workbench_analyze_ticket
func (s *Server) analyzeTicketTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("workbench_analyze_ticket",
		mcp.WithDescription("Run the AI assessment for a ticket and attach the result: suggested priority, summary, root cause hypothesis, sentiment, and a draft response."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Ticket id")),
	)
	return tool, s.handleAnalyzeTicket
}

func (s *Server) handleAnalyzeTicket(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: id"), nil
	}

	if s.assist == nil {
		return mcp.NewToolResultError("assist is not configured: set an API key first"), nil
	}

	t, err := s.store.GetTicket(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ticket not found: %s", id)), nil
	}

	analysis, err := s.assist.Analyze(ctx, t)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	assist.Apply(t, analysis)
	if err := s.store.UpsertTicket(ctx, t); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to save analysis: %v", err)), nil
	}

	data, err := json.Marshal(analysis)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal analysis: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// workbench_list_versions
func (s *Server) listVersionsTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("workbench_list_versions",
		mcp.WithDescription("List product versions with status, progress, and plan dates. Archived versions are hidden unless include_archived is true."),
		mcp.WithString("query", mcp.Description("Case-insensitive search over product name and version label")),
		mcp.WithBoolean("include_archived", mcp.Description("Include archived versions")),
	)
	return tool, s.handleListVersions
}

func (s *Server) handleListVersions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	versions, err := s.store.ListVersions(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list versions: %v", err)), nil
	}

	versions = projection.FilterVersions(versions,
		request.GetString("query", ""),
		request.GetBool("include_archived", false))

	type versionOut struct {
		ID       string `json:"id"`
		Product  string `json:"product"`
		Version  string `json:"version"`
		Status   string `json:"status"`
		Progress int    `json:"progress"`
		Start    string `json:"start"`
		End      string `json:"end"`
		Delayed  bool   `json:"delayed"`
	}

	out := make([]versionOut, len(versions))
	for i, v := range versions {
		out[i] = versionOut{
			ID:       v.ID,
			Product:  v.ProductName,
			Version:  v.Version,
			Status:   string(v.Status),
			Progress: v.Progress,
			Start:    v.StartDate,
			End:      v.EndDate,
			Delayed:  v.IsDelayed,
		}
	}

	data, err := json.Marshal(out)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal versions: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// workbench_roadmap
func (s *Server) roadmapTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("workbench_roadmap",
		mcp.WithDescription("Return the roadmap window (previous month through three months ahead) and the version bars visible inside it, as percentages of the window width."),
	)
	return tool, s.handleRoadmap
}

func (s *Server) handleRoadmap(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	versions, err := s.store.ListVersions(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list versions: %v", err)), nil
	}

	window := timeline.DefaultWindow(time.Now())

	type barOut struct {
		ID      string  `json:"id"`
		Product string  `json:"product"`
		Version string  `json:"version"`
		Left    float64 `json:"left_percent"`
		Width   float64 `json:"width_percent"`
	}

	var bars []barOut
	for _, v := range versions {
		if v.IsArchived {
			continue
		}
		bar, ok := timeline.BarPosition(window, v.StartDate, v.EndDate)
		if !ok {
			continue
		}
		bars = append(bars, barOut{
			ID:      v.ID,
			Product: v.ProductName,
			Version: v.Version,
			Left:    bar.LeftPercent,
			Width:   bar.WidthPercent,
		})
	}

	result := map[string]any{
		"start": window.Start.Format(timeline.DateFormat),
		"end":   window.End.Format(timeline.DateFormat),
		"bars":  bars,
	}
	data, err := json.Marshal(result)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal roadmap: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// workbench_dashboard
func (s *Server) dashboardTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("workbench_dashboard",
		mcp.WithDescription("Return the dashboard summary: ticket counts by status and priority, open critical tickets, delayed versions, pending outbound requests, and product health."),
	)
	return tool, s.handleDashboard
}

func (s *Server) handleDashboard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tickets, err := s.store.ListTickets(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list tickets: %v", err)), nil
	}
	versions, err := s.store.ListVersions(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list versions: %v", err)), nil
	}
	docs, err := s.store.ListDocuments(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list documents: %v", err)), nil
	}
	outbound, err := s.store.ListOutbound(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list outbound requests: %v", err)), nil
	}
	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list products: %v", err)), nil
	}

	summary := health.Summarize(health.Input{
		Tickets:   tickets,
		Versions:  versions,
		Documents: docs,
		Outbound:  outbound,
		Products:  products,
	}, timeline.DefaultWindow(time.Now()))

	data, err := json.Marshal(summary)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal summary: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
