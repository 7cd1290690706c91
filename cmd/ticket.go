package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/prodhub/workbench/internal/assist"
	"github.com/prodhub/workbench/internal/models"
	"github.com/prodhub/workbench/internal/output"
	"github.com/prodhub/workbench/internal/projection"
)

var (
	ticketTitle    string
	ticketDesc     string
	ticketPriority string
	ticketType     string
	ticketCustomer string
	ticketProduct  string
	ticketStatus   string
	ticketAssignee string
	ticketSolution string
	ticketQuery    string
	ticketPage     int
	ticketAll      bool
)

var ticketCmd = &cobra.Command{
	Use:   "ticket",
	Short: "Manage support tickets",
	Long:  "Track fault and support tickets across products.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return ticketListRun()
	},
}

var ticketAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new ticket",
	RunE: func(cmd *cobra.Command, args []string) error {
		return ticketAddRun()
	},
}

var ticketListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tickets",
	Long:    "List tickets, filtered by search text, status, and priority. Results are paged.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return ticketListRun()
	},
}

var ticketShowCmd = &cobra.Command{
	Use:   "show <ticket-id>",
	Short: "Show ticket details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return ticketShowRun(args[0])
	},
}

var ticketUpdateCmd = &cobra.Command{
	Use:   "update <ticket-id>",
	Short: "Update a ticket",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return ticketUpdateRun(args[0])
	},
}

var ticketDeleteCmd = &cobra.Command{
	Use:     "delete <ticket-id>",
	Aliases: []string{"rm"},
	Short:   "Delete a ticket",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return ticketDeleteRun(args[0])
	},
}

var ticketAnalyzeCmd = &cobra.Command{
	Use:   "analyze <ticket-id>",
	Short: "Run AI analysis on a ticket",
	Long: `Run AI analysis on a ticket and attach the result.

Requires anthropic.api_key to be configured. The analysis suggests a
priority and fault type, summarizes the report, hypothesizes a root
cause, reads reporter sentiment, and drafts a customer response.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return ticketAnalyzeRun(args[0])
	},
}

func init() {
	ticketAddCmd.Flags().StringVar(&ticketTitle, "title", "", "Ticket title (required)")
	ticketAddCmd.Flags().StringVar(&ticketDesc, "desc", "", "Ticket description")
	ticketAddCmd.Flags().StringVar(&ticketPriority, "priority", "MEDIUM", "Priority: LOW, MEDIUM, HIGH, CRITICAL")
	ticketAddCmd.Flags().StringVar(&ticketType, "type", "", "Fault type classification")
	ticketAddCmd.Flags().StringVar(&ticketCustomer, "customer", "", "Customer name")
	ticketAddCmd.Flags().StringVar(&ticketProduct, "product", "", "Product ID")
	_ = ticketAddCmd.MarkFlagRequired("title")

	ticketListCmd.Flags().StringVar(&ticketQuery, "query", "", "Search title, description, and customer")
	ticketListCmd.Flags().StringVar(&ticketStatus, "status", "", "Filter by status: OPEN, IN_PROGRESS, RESOLVED, CLOSED")
	ticketListCmd.Flags().StringVar(&ticketPriority, "priority", "", "Filter by priority")
	ticketListCmd.Flags().IntVar(&ticketPage, "page", 1, "Page of results to show")
	ticketListCmd.Flags().BoolVar(&ticketAll, "all", false, "Show all matches without paging")

	ticketUpdateCmd.Flags().StringVar(&ticketStatus, "status", "", "New status")
	ticketUpdateCmd.Flags().StringVar(&ticketPriority, "priority", "", "New priority")
	ticketUpdateCmd.Flags().StringVar(&ticketTitle, "title", "", "New title")
	ticketUpdateCmd.Flags().StringVar(&ticketDesc, "desc", "", "New description")
	ticketUpdateCmd.Flags().StringVar(&ticketAssignee, "assignee", "", "New assignee")
	ticketUpdateCmd.Flags().StringVar(&ticketSolution, "solution", "", "Resolution notes")

	ticketCmd.AddCommand(ticketAddCmd)
	ticketCmd.AddCommand(ticketListCmd)
	ticketCmd.AddCommand(ticketShowCmd)
	ticketCmd.AddCommand(ticketUpdateCmd)
	ticketCmd.AddCommand(ticketDeleteCmd)
	ticketCmd.AddCommand(ticketAnalyzeCmd)
	rootCmd.AddCommand(ticketCmd)
}

func ticketAddRun() error {
	s, err := getStore()
	if err != nil {
		return err
	}
	ctx := context.Background()

	t := &models.Ticket{
		Title:        ticketTitle,
		Description:  ticketDesc,
		Priority:     models.TicketPriority(ticketPriority),
		Type:         ticketType,
		CustomerName: ticketCustomer,
		ProductID:    ticketProduct,
	}

	if dryRun {
		ui.DryRunMsg("Would add ticket: %s [%s]", ticketTitle, ticketPriority)
		return nil
	}

	if err := s.UpsertTicket(ctx, t); err != nil {
		return fmt.Errorf("create ticket: %w", err)
	}

	ui.Success("Created ticket %s: %s", output.Cyan(shortID(t.ID)), t.Title)
	return nil
}

func ticketListRun() error {
	s, err := getStore()
	if err != nil {
		return err
	}
	ctx := context.Background()

	tickets, err := s.ListTickets(ctx)
	if err != nil {
		return err
	}

	filtered := projection.FilterTickets(tickets, projection.TicketFilter{
		Query:    ticketQuery,
		Status:   ticketStatus,
		Priority: ticketPriority,
	})

	if len(filtered) == 0 {
		ui.Info("No tickets found.")
		return nil
	}

	page := projection.Paginate(len(filtered), ticketPage, projection.PageSize)
	rows := filtered[page.Start:page.End]
	if ticketAll {
		rows = filtered
	}

	table := ui.Table([]string{"ID", "Title", "Status", "Priority", "Type", "Customer", "Assignee"})
	for _, t := range rows {
		_ = table.Append([]string{
			shortID(t.ID),
			t.Title,
			output.TicketStatusColor(string(t.Status)),
			output.PriorityColor(string(t.Priority)),
			t.Type,
			t.CustomerName,
			t.Assignee,
		})
	}
	_ = table.Render()

	if !ticketAll && page.TotalPages > 1 {
		ui.Info("Page %d of %d (%d tickets)", page.Number, page.TotalPages, page.Total)
	}
	return nil
}

func ticketShowRun(id string) error {
	s, err := getStore()
	if err != nil {
		return err
	}
	ctx := context.Background()

	t, err := s.GetTicket(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintf(ui.Out, "%s  %s\n", output.Cyan(shortID(t.ID)), t.Title)
	fmt.Fprintf(ui.Out, "  Status:     %s\n", output.TicketStatusColor(string(t.Status)))
	fmt.Fprintf(ui.Out, "  Priority:   %s\n", output.PriorityColor(string(t.Priority)))
	if t.Type != "" {
		fmt.Fprintf(ui.Out, "  Type:       %s\n", t.Type)
	}
	if t.CustomerName != "" {
		fmt.Fprintf(ui.Out, "  Customer:   %s\n", t.CustomerName)
	}
	if t.Description != "" {
		fmt.Fprintf(ui.Out, "  Desc:       %s\n", t.Description)
	}
	if t.ProductID != "" {
		fmt.Fprintf(ui.Out, "  Product:    %s (%s)\n", t.ProductID, t.ProductVersion)
	}
	if t.Assignee != "" {
		fmt.Fprintf(ui.Out, "  Assignee:   %s\n", t.Assignee)
	}
	if t.Solution != "" {
		fmt.Fprintf(ui.Out, "  Solution:   %s\n", t.Solution)
	}
	if len(t.Tags) > 0 {
		fmt.Fprintf(ui.Out, "  Tags:       %s\n", strings.Join(t.Tags, ", "))
	}
	fmt.Fprintf(ui.Out, "  Created:    %s\n", t.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(ui.Out, "  Full ID:    %s\n", t.ID)

	if t.AIAnalysis != nil {
		a := t.AIAnalysis
		fmt.Fprintln(ui.Out)
		fmt.Fprintf(ui.Out, "  AI Analysis\n")
		fmt.Fprintf(ui.Out, "    Summary:    %s\n", a.Summary)
		fmt.Fprintf(ui.Out, "    Priority:   %s\n", output.PriorityColor(string(a.SuggestedPriority)))
		fmt.Fprintf(ui.Out, "    Type:       %s\n", a.SuggestedType)
		fmt.Fprintf(ui.Out, "    Root cause: %s\n", a.RootCauseHypothesis)
		fmt.Fprintf(ui.Out, "    Sentiment:  %s\n", a.Sentiment)
	}

	return nil
}

func ticketUpdateRun(id string) error {
	s, err := getStore()
	if err != nil {
		return err
	}
	ctx := context.Background()

	t, err := s.GetTicket(ctx, id)
	if err != nil {
		return err
	}

	changed := false
	if ticketStatus != "" {
		t.Status = models.TicketStatus(ticketStatus)
		changed = true
	}
	if ticketPriority != "" {
		t.Priority = models.TicketPriority(ticketPriority)
		changed = true
	}
	if ticketTitle != "" {
		t.Title = ticketTitle
		changed = true
	}
	if ticketDesc != "" {
		t.Description = ticketDesc
		changed = true
	}
	if ticketAssignee != "" {
		t.Assignee = ticketAssignee
		changed = true
	}
	if ticketSolution != "" {
		t.Solution = ticketSolution
		changed = true
	}

	if !changed {
		ui.Info("Nothing to update. Use --status, --priority, --title, --desc, --assignee, or --solution.")
		return nil
	}

	if dryRun {
		ui.DryRunMsg("Would update ticket %s", shortID(t.ID))
		return nil
	}

	if err := s.UpsertTicket(ctx, t); err != nil {
		return fmt.Errorf("update ticket: %w", err)
	}

	ui.Success("Updated ticket %s", output.Cyan(shortID(t.ID)))
	return nil
}

func ticketDeleteRun(id string) error {
	s, err := getStore()
	if err != nil {
		return err
	}
	ctx := context.Background()

	if dryRun {
		ui.DryRunMsg("Would delete ticket %s", shortID(id))
		return nil
	}
	if !confirm("Delete ticket %s?", shortID(id)) {
		ui.Info("Aborted.")
		return nil
	}

	if err := s.DeleteTicket(ctx, id); err != nil {
		return fmt.Errorf("delete ticket: %w", err)
	}

	ui.Success("Deleted ticket %s", shortID(id))
	return nil
}

func ticketAnalyzeRun(id string) error {
	ac := getAssist()
	if ac == nil {
		return fmt.Errorf("assist is not configured: set anthropic.api_key first")
	}

	s, err := getStore()
	if err != nil {
		return err
	}
	ctx := context.Background()

	t, err := s.GetTicket(ctx, id)
	if err != nil {
		return err
	}

	if dryRun {
		ui.DryRunMsg("Would analyze ticket %s: %s", shortID(t.ID), t.Title)
		return nil
	}

	ui.VerboseLog("Analyzing ticket %s", t.ID)
	analysis, err := ac.Analyze(ctx, t)
	if err != nil {
		return fmt.Errorf("analyze ticket: %w", err)
	}

	assist.Apply(t, analysis)
	if err := s.UpsertTicket(ctx, t); err != nil {
		return fmt.Errorf("save analysis: %w", err)
	}

	ui.Success("Analyzed ticket %s", output.Cyan(shortID(t.ID)))
	fmt.Fprintf(ui.Out, "  Summary:    %s\n", analysis.Summary)
	fmt.Fprintf(ui.Out, "  Priority:   %s\n", output.PriorityColor(string(analysis.SuggestedPriority)))
	fmt.Fprintf(ui.Out, "  Type:       %s\n", analysis.SuggestedType)
	fmt.Fprintf(ui.Out, "  Root cause: %s\n", analysis.RootCauseHypothesis)
	fmt.Fprintf(ui.Out, "  Sentiment:  %s\n", analysis.Sentiment)
	fmt.Fprintf(ui.Out, "  Draft reply:\n    %s\n", analysis.DraftResponse)
	return nil
}
