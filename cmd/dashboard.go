package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/prodhub/workbench/internal/health"
	"github.com/prodhub/workbench/internal/models"
	"github.com/prodhub/workbench/internal/output"
	"github.com/prodhub/workbench/internal/timeline"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the operations dashboard",
	Long:  "Show ticket, version, document, and outbound aggregates plus product health.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return dashboardRun()
	},
}

var releasesCmd = &cobra.Command{
	Use:   "releases",
	Short: "Show the release changelog",
	RunE: func(cmd *cobra.Command, args []string) error {
		return releasesRun()
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(releasesCmd)
}

func dashboardRun() error {
	s, err := getStore()
	if err != nil {
		return err
	}
	ctx := context.Background()

	in := health.Input{}
	if in.Tickets, err = s.ListTickets(ctx); err != nil {
		return err
	}
	if in.Versions, err = s.ListVersions(ctx); err != nil {
		return err
	}
	if in.Documents, err = s.ListDocuments(ctx); err != nil {
		return err
	}
	if in.Outbound, err = s.ListOutbound(ctx); err != nil {
		return err
	}
	if in.Products, err = s.ListProducts(ctx); err != nil {
		return err
	}

	sum := health.Summarize(in, timeline.DefaultWindow(time.Now()))

	fmt.Fprintf(ui.Out, "Tickets    open %d", sum.OpenTickets)
	for _, st := range []models.TicketStatus{
		models.TicketStatusOpen,
		models.TicketStatusInProgress,
		models.TicketStatusResolved,
		models.TicketStatusClosed,
	} {
		if n := sum.TicketsByStatus[st]; n > 0 {
			fmt.Fprintf(ui.Out, "  %s %d", output.TicketStatusColor(string(st)), n)
		}
	}
	fmt.Fprintln(ui.Out)

	fmt.Fprintf(ui.Out, "Versions   active %d  delayed %d  at risk %d\n",
		sum.ActiveVersions, len(sum.DelayedVersions), len(sum.AtRiskVersions))
	fmt.Fprintf(ui.Out, "Documents ")
	for _, cat := range models.DocumentCategories {
		fmt.Fprintf(ui.Out, "  %s %d", cat, sum.DocumentsByCategory[cat])
	}
	fmt.Fprintln(ui.Out)
	fmt.Fprintf(ui.Out, "Outbound   pending %d\n", sum.PendingOutbound)

	if len(sum.CriticalOpen) > 0 {
		fmt.Fprintln(ui.Out)
		ui.Warning("%d critical open tickets", len(sum.CriticalOpen))
		for _, t := range sum.CriticalOpen {
			fmt.Fprintf(ui.Out, "  %s  %s\n", shortID(t.ID), t.Title)
		}
	}

	if len(sum.DelayedVersions) > 0 {
		fmt.Fprintln(ui.Out)
		ui.Warning("%d delayed versions", len(sum.DelayedVersions))
		for _, v := range sum.DelayedVersions {
			note := v.ExceptionNote
			if note == "" {
				note = "no exception note"
			}
			fmt.Fprintf(ui.Out, "  %s %s  %s\n", v.ProductName, v.Version, note)
		}
	}

	if len(sum.Products) > 0 {
		fmt.Fprintln(ui.Out)
		table := ui.Table([]string{"Product", "Owner", "Health", "Tickets"})
		for _, ph := range sum.Products {
			_ = table.Append([]string{
				output.Cyan(ph.Product.Name),
				ph.Product.Owner,
				output.HealthColor(ph.Health),
				fmt.Sprintf("%d", ph.Product.ActiveTickets),
			})
		}
		_ = table.Render()
	}

	return nil
}

func releasesRun() error {
	s, err := getStore()
	if err != nil {
		return err
	}
	ctx := context.Background()

	releases, err := s.ListReleases(ctx)
	if err != nil {
		return err
	}

	if len(releases) == 0 {
		ui.Info("No releases recorded.")
		return nil
	}

	for i, r := range releases {
		if i > 0 {
			fmt.Fprintln(ui.Out)
		}
		fmt.Fprintf(ui.Out, "%s  %s  [%s]  %s\n", output.Cyan(r.Version), r.Date, r.Type, r.Title)
		if r.Description != "" {
			fmt.Fprintf(ui.Out, "  %s\n", r.Description)
		}
		for _, item := range r.Items {
			fmt.Fprintf(ui.Out, "  - %s\n", item)
		}
	}
	return nil
}
