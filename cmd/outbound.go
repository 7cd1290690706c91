package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/prodhub/workbench/internal/models"
	"github.com/prodhub/workbench/internal/output"
	"github.com/prodhub/workbench/internal/projection"
	"github.com/prodhub/workbench/internal/timeline"
)

var (
	outboundProduct      string
	outboundVersion      string
	outboundApplicant    string
	outboundProjectSide  string
	outboundRequirements string
	outboundOperator     string
	outboundQuery        string
	outboundStatus       string
)

var outboundCmd = &cobra.Command{
	Use:   "outbound",
	Short: "Manage outbound delivery requests",
	Long:  "Track requests to ship product versions to project sites, newest first.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return outboundListRun()
	},
}

var outboundAddCmd = &cobra.Command{
	Use:   "add",
	Short: "File an outbound request",
	Long: `File an outbound request for a product version.

The product and version display names are copied onto the request when
it is created. They keep that text even if the product or version is
later renamed or deleted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return outboundAddRun()
	},
}

var outboundListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List outbound requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		return outboundListRun()
	},
}

var outboundShowCmd = &cobra.Command{
	Use:   "show <request-id>",
	Short: "Show request details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return outboundShowRun(args[0])
	},
}

var outboundApproveCmd = &cobra.Command{
	Use:   "approve <request-id>",
	Short: "Approve an outbound request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return outboundDecideRun(args[0], models.OutboundStatusApproved)
	},
}

var outboundRejectCmd = &cobra.Command{
	Use:   "reject <request-id>",
	Short: "Reject an outbound request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return outboundDecideRun(args[0], models.OutboundStatusRejected)
	},
}

var outboundDeleteCmd = &cobra.Command{
	Use:     "delete <request-id>",
	Aliases: []string{"rm"},
	Short:   "Delete an outbound request",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return outboundDeleteRun(args[0])
	},
}

func init() {
	outboundAddCmd.Flags().StringVar(&outboundProduct, "product", "", "Product ID (required)")
	outboundAddCmd.Flags().StringVar(&outboundVersion, "version", "", "Version ID (required)")
	outboundAddCmd.Flags().StringVar(&outboundApplicant, "applicant", "", "Requesting person (required)")
	outboundAddCmd.Flags().StringVar(&outboundProjectSide, "project-side", "", "Destination project site (required)")
	outboundAddCmd.Flags().StringVar(&outboundRequirements, "requirements", "", "Delivery requirements")
	_ = outboundAddCmd.MarkFlagRequired("product")
	_ = outboundAddCmd.MarkFlagRequired("version")
	_ = outboundAddCmd.MarkFlagRequired("applicant")
	_ = outboundAddCmd.MarkFlagRequired("project-side")

	outboundListCmd.Flags().StringVar(&outboundQuery, "query", "", "Search product, applicant, and project side")
	outboundListCmd.Flags().StringVar(&outboundStatus, "status", "", "Filter by status: PENDING, APPROVED, REJECTED")

	outboundApproveCmd.Flags().StringVar(&outboundOperator, "operator", "", "Person recording the decision")
	outboundRejectCmd.Flags().StringVar(&outboundOperator, "operator", "", "Person recording the decision")

	outboundCmd.AddCommand(outboundAddCmd)
	outboundCmd.AddCommand(outboundListCmd)
	outboundCmd.AddCommand(outboundShowCmd)
	outboundCmd.AddCommand(outboundApproveCmd)
	outboundCmd.AddCommand(outboundRejectCmd)
	outboundCmd.AddCommand(outboundDeleteCmd)
	rootCmd.AddCommand(outboundCmd)
}

func outboundAddRun() error {
	s, err := getStore()
	if err != nil {
		return err
	}
	ctx := context.Background()

	req := &models.OutboundRequest{
		ApplicationDate: time.Now().Format(timeline.DateFormat),
		ProductID:       outboundProduct,
		VersionID:       outboundVersion,
		Applicant:       outboundApplicant,
		ProjectSide:     outboundProjectSide,
		Requirements:    outboundRequirements,
	}

	// Cache display names at write time.
	if p, err := s.GetProduct(ctx, req.ProductID); err == nil {
		req.ProductName = p.Name
	}
	if v, err := s.GetVersion(ctx, req.VersionID); err == nil {
		req.Version = v.Version
	}

	if dryRun {
		ui.DryRunMsg("Would file outbound request for %s %s to %s", req.ProductName, req.Version, req.ProjectSide)
		return nil
	}

	if err := s.UpsertOutbound(ctx, req); err != nil {
		return fmt.Errorf("create outbound request: %w", err)
	}

	ui.Success("Filed outbound request %s", output.Cyan(shortID(req.ID)))
	return nil
}

func outboundListRun() error {
	s, err := getStore()
	if err != nil {
		return err
	}
	ctx := context.Background()

	reqs, err := s.ListOutbound(ctx)
	if err != nil {
		return err
	}

	filtered := projection.FilterOutbound(reqs, outboundQuery, outboundStatus)
	if len(filtered) == 0 {
		ui.Info("No outbound requests found.")
		return nil
	}

	table := ui.Table([]string{"ID", "Date", "Product", "Version", "Applicant", "Project", "Status", "Operator"})
	for _, r := range filtered {
		_ = table.Append([]string{
			shortID(r.ID),
			r.ApplicationDate,
			r.ProductName,
			r.Version,
			r.Applicant,
			r.ProjectSide,
			output.OutboundStatusColor(string(r.Status)),
			r.Operator,
		})
	}
	_ = table.Render()
	return nil
}

func outboundShowRun(id string) error {
	s, err := getStore()
	if err != nil {
		return err
	}
	ctx := context.Background()

	r, err := s.GetOutbound(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintf(ui.Out, "%s  %s %s\n", output.Cyan(shortID(r.ID)), r.ProductName, r.Version)
	fmt.Fprintf(ui.Out, "  Status:     %s\n", output.OutboundStatusColor(string(r.Status)))
	fmt.Fprintf(ui.Out, "  Filed:      %s by %s\n", r.ApplicationDate, r.Applicant)
	fmt.Fprintf(ui.Out, "  Project:    %s\n", r.ProjectSide)
	if r.Requirements != "" {
		fmt.Fprintf(ui.Out, "  Needs:      %s\n", r.Requirements)
	}
	if r.ArtifactURL != "" {
		fmt.Fprintf(ui.Out, "  Artifact:   %s\n", r.ArtifactURL)
	}
	if r.DocumentURL != "" {
		fmt.Fprintf(ui.Out, "  Document:   %s\n", r.DocumentURL)
	}
	if r.Operator != "" {
		fmt.Fprintf(ui.Out, "  Decided:    %s by %s\n", r.OperationTime, r.Operator)
	}
	fmt.Fprintf(ui.Out, "  Full ID:    %s\n", r.ID)
	return nil
}

func outboundDecideRun(id string, status models.OutboundStatus) error {
	s, err := getStore()
	if err != nil {
		return err
	}
	ctx := context.Background()

	r, err := s.GetOutbound(ctx, id)
	if err != nil {
		return err
	}

	if dryRun {
		ui.DryRunMsg("Would mark outbound request %s as %s", shortID(r.ID), status)
		return nil
	}

	r.Status = status
	if outboundOperator != "" {
		r.Operator = outboundOperator
	}
	r.OperationTime = time.Now().Format(timeline.DateFormat)

	if err := s.UpsertOutbound(ctx, r); err != nil {
		return fmt.Errorf("update outbound request: %w", err)
	}

	ui.Success("Marked outbound request %s as %s", output.Cyan(shortID(r.ID)), output.OutboundStatusColor(string(status)))
	return nil
}

func outboundDeleteRun(id string) error {
	s, err := getStore()
	if err != nil {
		return err
	}
	ctx := context.Background()

	if dryRun {
		ui.DryRunMsg("Would delete outbound request %s", shortID(id))
		return nil
	}
	if !confirm("Delete outbound request %s?", shortID(id)) {
		ui.Info("Aborted.")
		return nil
	}

	if err := s.DeleteOutbound(ctx, id); err != nil {
		return fmt.Errorf("delete outbound request: %w", err)
	}

	ui.Success("Deleted outbound request %s", shortID(id))
	return nil
}
