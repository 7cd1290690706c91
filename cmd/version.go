package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/prodhub/workbench/internal/models"
	"github.com/prodhub/workbench/internal/output"
	"github.com/prodhub/workbench/internal/projection"
)

var (
	versionProduct  string
	versionLabel    string
	versionName     string
	versionType     string
	versionStatus   string
	versionProgress int
	versionStart    string
	versionEnd      string
	versionDelayed  bool
	versionNote     string
	versionQuery    string
	versionArchived bool
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Manage product versions",
	Long:  "Track planned and shipped product versions through their lifecycle.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return versionListRun()
	},
}

var versionAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a product version",
	RunE: func(cmd *cobra.Command, args []string) error {
		return versionAddRun()
	},
}

var versionListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List product versions",
	Long:    "List product versions. Archived versions are hidden unless --archived is set.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return versionListRun()
	},
}

var versionShowCmd = &cobra.Command{
	Use:   "show <version-id>",
	Short: "Show version details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return versionShowRun(args[0])
	},
}

var versionUpdateCmd = &cobra.Command{
	Use:   "update <version-id>",
	Short: "Update a product version",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return versionUpdateRun(args[0])
	},
}

var versionArchiveCmd = &cobra.Command{
	Use:   "archive <version-id>",
	Short: "Archive a product version",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return versionArchiveRun(args[0])
	},
}

var versionRoadmapCmd = &cobra.Command{
	Use:   "roadmap",
	Short: "Show the version roadmap",
	RunE: func(cmd *cobra.Command, args []string) error {
		return roadmapRun(time.Now())
	},
}

var versionDeleteCmd = &cobra.Command{
	Use:     "delete <version-id>",
	Aliases: []string{"rm"},
	Short:   "Delete a product version",
	Long: `Delete a product version.

Documents and outbound requests that reference the version are left
untouched and keep the display text they cached.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return versionDeleteRun(args[0])
	},
}

func init() {
	versionAddCmd.Flags().StringVar(&versionProduct, "product", "", "Product name")
	versionAddCmd.Flags().StringVar(&versionLabel, "version", "", "Version label, e.g. v2.4.0 (required)")
	versionAddCmd.Flags().StringVar(&versionName, "name", "", "Human-readable version name")
	versionAddCmd.Flags().StringVar(&versionType, "type", "STANDARD", "Type: STANDARD, CUSTOMIZED, HOTFIX")
	versionAddCmd.Flags().StringVar(&versionStart, "start", "", "Start date (YYYY-MM-DD)")
	versionAddCmd.Flags().StringVar(&versionEnd, "end", "", "End date (YYYY-MM-DD)")
	_ = versionAddCmd.MarkFlagRequired("version")

	versionListCmd.Flags().StringVar(&versionQuery, "query", "", "Search product, label, and name")
	versionListCmd.Flags().BoolVar(&versionArchived, "archived", false, "Include archived versions")

	versionUpdateCmd.Flags().StringVar(&versionStatus, "status", "", "New status: PLANNING, DEVELOPING, UAT_READY, UAT_VERIFYING, RELEASED, DELIVERED, ARCHIVED")
	versionUpdateCmd.Flags().IntVar(&versionProgress, "progress", -1, "Progress percent (0-100)")
	versionUpdateCmd.Flags().StringVar(&versionStart, "start", "", "New start date")
	versionUpdateCmd.Flags().StringVar(&versionEnd, "end", "", "New end date")
	versionUpdateCmd.Flags().BoolVar(&versionDelayed, "delayed", false, "Mark the version as delayed")
	versionUpdateCmd.Flags().StringVar(&versionNote, "note", "", "Exception note explaining a delay")

	versionCmd.AddCommand(versionAddCmd)
	versionCmd.AddCommand(versionListCmd)
	versionCmd.AddCommand(versionShowCmd)
	versionCmd.AddCommand(versionUpdateCmd)
	versionCmd.AddCommand(versionArchiveCmd)
	versionCmd.AddCommand(versionRoadmapCmd)
	versionCmd.AddCommand(versionDeleteCmd)
	rootCmd.AddCommand(versionCmd)
}

func versionAddRun() error {
	s, err := getStore()
	if err != nil {
		return err
	}
	ctx := context.Background()

	v := &models.ProductVersion{
		ProductName: versionProduct,
		Version:     versionLabel,
		Name:        versionName,
		Type:        models.VersionType(versionType),
		StartDate:   versionStart,
		EndDate:     versionEnd,
	}

	if dryRun {
		ui.DryRunMsg("Would add version: %s %s", versionProduct, versionLabel)
		return nil
	}

	if err := s.UpsertVersion(ctx, v); err != nil {
		return fmt.Errorf("create version: %w", err)
	}

	ui.Success("Created version %s: %s %s", output.Cyan(shortID(v.ID)), v.ProductName, v.Version)
	return nil
}

func versionListRun() error {
	s, err := getStore()
	if err != nil {
		return err
	}
	ctx := context.Background()

	versions, err := s.ListVersions(ctx)
	if err != nil {
		return err
	}

	filtered := projection.FilterVersions(versions, versionQuery, versionArchived)
	if len(filtered) == 0 {
		ui.Info("No versions found.")
		return nil
	}

	table := ui.Table([]string{"ID", "Product", "Version", "Status", "Progress", "Start", "End", "Flags"})
	for _, v := range filtered {
		_ = table.Append([]string{
			shortID(v.ID),
			v.ProductName,
			v.Version,
			output.VersionStatusColor(string(v.Status)),
			strconv.Itoa(v.Progress) + "%",
			v.StartDate,
			v.EndDate,
			versionFlags(v),
		})
	}
	_ = table.Render()
	return nil
}

func versionFlags(v *models.ProductVersion) string {
	var flags []string
	if v.IsDelayed {
		flags = append(flags, output.Red("delayed"))
	}
	if v.IsReadyForDelivery {
		flags = append(flags, output.Green("ready"))
	}
	if v.IsArchived {
		flags = append(flags, "archived")
	}
	return strings.Join(flags, ",")
}

func versionShowRun(id string) error {
	s, err := getStore()
	if err != nil {
		return err
	}
	ctx := context.Background()

	v, err := s.GetVersion(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintf(ui.Out, "%s  %s %s\n", output.Cyan(shortID(v.ID)), v.ProductName, v.Version)
	if v.Name != "" {
		fmt.Fprintf(ui.Out, "  Name:       %s\n", v.Name)
	}
	fmt.Fprintf(ui.Out, "  Type:       %s\n", v.Type)
	fmt.Fprintf(ui.Out, "  Status:     %s\n", output.VersionStatusColor(string(v.Status)))
	fmt.Fprintf(ui.Out, "  Progress:   %d%%\n", v.Progress)
	if v.StartDate != "" || v.EndDate != "" {
		fmt.Fprintf(ui.Out, "  Schedule:   %s to %s\n", v.StartDate, v.EndDate)
	}
	if v.PlannedUATDate != "" {
		fmt.Fprintf(ui.Out, "  UAT:        planned %s, actual %s\n", v.PlannedUATDate, v.ActualUATDate)
	}
	if v.DeliveryDate != "" {
		fmt.Fprintf(ui.Out, "  Delivery:   %s\n", v.DeliveryDate)
	}
	if len(v.Customers) > 0 {
		fmt.Fprintf(ui.Out, "  Customers:  %s\n", strings.Join(v.Customers, ", "))
	}
	if v.Features != "" {
		fmt.Fprintf(ui.Out, "  Features:   %s\n", v.Features)
	}
	if v.ProductManager != "" {
		fmt.Fprintf(ui.Out, "  PM:         %s\n", v.ProductManager)
	}
	if v.IsDelayed {
		fmt.Fprintf(ui.Out, "  Delayed:    %s\n", output.Red(v.ExceptionNote))
	}
	fmt.Fprintf(ui.Out, "  Full ID:    %s\n", v.ID)
	return nil
}

func versionUpdateRun(id string) error {
	s, err := getStore()
	if err != nil {
		return err
	}
	ctx := context.Background()

	v, err := s.GetVersion(ctx, id)
	if err != nil {
		return err
	}

	changed := false
	if versionStatus != "" {
		v.Status = models.VersionStatus(versionStatus)
		changed = true
	}
	if versionProgress >= 0 {
		v.Progress = versionProgress
		changed = true
	}
	if versionStart != "" {
		v.StartDate = versionStart
		changed = true
	}
	if versionEnd != "" {
		v.EndDate = versionEnd
		changed = true
	}
	if versionDelayed {
		v.IsDelayed = true
		changed = true
	}
	if versionNote != "" {
		v.ExceptionNote = versionNote
		changed = true
	}

	if !changed {
		ui.Info("Nothing to update. Use --status, --progress, --start, --end, --delayed, or --note.")
		return nil
	}

	if dryRun {
		ui.DryRunMsg("Would update version %s", shortID(v.ID))
		return nil
	}

	if err := s.UpsertVersion(ctx, v); err != nil {
		return fmt.Errorf("update version: %w", err)
	}

	ui.Success("Updated version %s", output.Cyan(shortID(v.ID)))
	return nil
}

func versionArchiveRun(id string) error {
	s, err := getStore()
	if err != nil {
		return err
	}
	ctx := context.Background()

	v, err := s.GetVersion(ctx, id)
	if err != nil {
		return err
	}

	if dryRun {
		ui.DryRunMsg("Would archive version %s %s", v.ProductName, v.Version)
		return nil
	}

	v.IsArchived = true
	v.Status = models.VersionStatusArchived
	if err := s.UpsertVersion(ctx, v); err != nil {
		return fmt.Errorf("archive version: %w", err)
	}

	ui.Success("Archived version %s %s", v.ProductName, v.Version)
	return nil
}

func versionDeleteRun(id string) error {
	s, err := getStore()
	if err != nil {
		return err
	}
	ctx := context.Background()

	if dryRun {
		ui.DryRunMsg("Would delete version %s", shortID(id))
		return nil
	}
	if !confirm("Delete version %s?", shortID(id)) {
		ui.Info("Aborted.")
		return nil
	}

	if err := s.DeleteVersion(ctx, id); err != nil {
		return fmt.Errorf("delete version: %w", err)
	}

	ui.Success("Deleted version %s", shortID(id))
	return nil
}
