package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prodhub/workbench/internal/models"
	"github.com/prodhub/workbench/internal/output"
	"github.com/prodhub/workbench/internal/projection"
)

var (
	navTitle    string
	navSearch   string
	navLinkName string
	navLinkDesc string
	navLinkURL  string
	navLinkIcon string
)

var navCmd = &cobra.Command{
	Use:   "nav",
	Short: "Manage the navigation portal",
	Long:  "Manage grouped quick links shared by the team.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return navListRun()
	},
}

var navListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List navigation groups and links",
	Long: `List navigation groups and their links.

With --search, groups are narrowed to links whose name or description
match, and groups with no matching links are hidden.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return navListRun()
	},
}

var navAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a navigation group",
	RunE: func(cmd *cobra.Command, args []string) error {
		return navAddRun()
	},
}

var navUpdateCmd = &cobra.Command{
	Use:   "update <group-id>",
	Short: "Rename a navigation group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return navUpdateRun(args[0])
	},
}

var navDeleteCmd = &cobra.Command{
	Use:     "delete <group-id>",
	Aliases: []string{"rm"},
	Short:   "Delete a navigation group",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return navDeleteRun(args[0])
	},
}

var navLinkCmd = &cobra.Command{
	Use:   "link <group-id>",
	Short: "Add a link to a group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return navLinkRun(args[0])
	},
}

var navUnlinkCmd = &cobra.Command{
	Use:   "unlink <group-id> <link-id>",
	Short: "Remove a link from a group",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return navUnlinkRun(args[0], args[1])
	},
}

func init() {
	navListCmd.Flags().StringVar(&navSearch, "search", "", "Search link names and descriptions")

	navAddCmd.Flags().StringVar(&navTitle, "title", "", "Group title (required)")
	_ = navAddCmd.MarkFlagRequired("title")

	navUpdateCmd.Flags().StringVar(&navTitle, "title", "", "New group title (required)")
	_ = navUpdateCmd.MarkFlagRequired("title")

	navLinkCmd.Flags().StringVar(&navLinkName, "name", "", "Link name (required)")
	navLinkCmd.Flags().StringVar(&navLinkDesc, "desc", "", "Link description")
	navLinkCmd.Flags().StringVar(&navLinkURL, "url", "", "Link URL (required)")
	navLinkCmd.Flags().StringVar(&navLinkIcon, "icon", "", "Icon key")
	_ = navLinkCmd.MarkFlagRequired("name")
	_ = navLinkCmd.MarkFlagRequired("url")

	navCmd.AddCommand(navListCmd)
	navCmd.AddCommand(navAddCmd)
	navCmd.AddCommand(navUpdateCmd)
	navCmd.AddCommand(navDeleteCmd)
	navCmd.AddCommand(navLinkCmd)
	navCmd.AddCommand(navUnlinkCmd)
	rootCmd.AddCommand(navCmd)
}

func navListRun() error {
	s, err := getStore()
	if err != nil {
		return err
	}
	ctx := context.Background()

	groups, err := s.ListNavGroups(ctx)
	if err != nil {
		return err
	}

	filtered := projection.SearchNavGroups(groups, navSearch)
	if len(filtered) == 0 {
		ui.Info("No navigation groups found.")
		return nil
	}

	for i, g := range filtered {
		if i > 0 {
			fmt.Fprintln(ui.Out)
		}
		fmt.Fprintf(ui.Out, "%s  %s\n", output.Cyan(shortID(g.ID)), g.Title)
		for _, item := range g.Items {
			fmt.Fprintf(ui.Out, "  %-14s %-24s %s\n", shortID(item.ID), item.Name, item.URL)
		}
	}
	return nil
}

func navAddRun() error {
	s, err := getStore()
	if err != nil {
		return err
	}
	ctx := context.Background()

	g := &models.NavGroup{Title: navTitle}

	if dryRun {
		ui.DryRunMsg("Would add navigation group: %s", navTitle)
		return nil
	}

	if err := s.UpsertNavGroup(ctx, g); err != nil {
		return fmt.Errorf("create nav group: %w", err)
	}

	ui.Success("Created navigation group %s: %s", output.Cyan(shortID(g.ID)), g.Title)
	return nil
}

func navUpdateRun(id string) error {
	s, err := getStore()
	if err != nil {
		return err
	}
	ctx := context.Background()

	g, err := s.GetNavGroup(ctx, id)
	if err != nil {
		return err
	}

	if dryRun {
		ui.DryRunMsg("Would rename navigation group %s to %s", shortID(g.ID), navTitle)
		return nil
	}

	g.Title = navTitle
	if err := s.UpsertNavGroup(ctx, g); err != nil {
		return fmt.Errorf("update nav group: %w", err)
	}

	ui.Success("Renamed navigation group %s to %s", shortID(g.ID), g.Title)
	return nil
}

func navDeleteRun(id string) error {
	s, err := getStore()
	if err != nil {
		return err
	}
	ctx := context.Background()

	if dryRun {
		ui.DryRunMsg("Would delete navigation group %s", shortID(id))
		return nil
	}
	if !confirm("Delete navigation group %s?", shortID(id)) {
		ui.Info("Aborted.")
		return nil
	}

	if err := s.DeleteNavGroup(ctx, id); err != nil {
		return fmt.Errorf("delete nav group: %w", err)
	}

	ui.Success("Deleted navigation group %s", shortID(id))
	return nil
}

func navLinkRun(groupID string) error {
	s, err := getStore()
	if err != nil {
		return err
	}
	ctx := context.Background()

	r := &models.NavResource{
		Name:        navLinkName,
		Description: navLinkDesc,
		URL:         navLinkURL,
		Icon:        navLinkIcon,
	}

	if dryRun {
		ui.DryRunMsg("Would add link %s to group %s", navLinkName, shortID(groupID))
		return nil
	}

	if err := s.UpsertNavResource(ctx, groupID, r); err != nil {
		return fmt.Errorf("add nav link: %w", err)
	}

	ui.Success("Added link %s to group %s", output.Cyan(r.Name), shortID(groupID))
	return nil
}

func navUnlinkRun(groupID, linkID string) error {
	s, err := getStore()
	if err != nil {
		return err
	}
	ctx := context.Background()

	if dryRun {
		ui.DryRunMsg("Would remove link %s from group %s", shortID(linkID), shortID(groupID))
		return nil
	}

	if err := s.DeleteNavResource(ctx, groupID, linkID); err != nil {
		return fmt.Errorf("remove nav link: %w", err)
	}

	ui.Success("Removed link %s from group %s", shortID(linkID), shortID(groupID))
	return nil
}
