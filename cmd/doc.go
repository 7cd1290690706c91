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
	docTitle    string
	docCategory string
	docVersion  string
	docURL      string
	docAuthor   string
	docQuery    string
)

var docCmd = &cobra.Command{
	Use:   "doc",
	Short: "Manage version documents",
	Long:  "Track external documents associated with product versions.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return docListRun()
	},
}

var docAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a document",
	RunE: func(cmd *cobra.Command, args []string) error {
		return docAddRun()
	},
}

var docListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		return docListRun()
	},
}

var docSetURLCmd = &cobra.Command{
	Use:   "set-url <doc-id>",
	Short: "Set a document's link",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return docSetURLRun(args[0])
	},
}

var docDeleteCmd = &cobra.Command{
	Use:     "delete <doc-id>",
	Aliases: []string{"rm"},
	Short:   "Delete a document",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return docDeleteRun(args[0])
	},
}

func init() {
	docAddCmd.Flags().StringVar(&docTitle, "title", "", "Document title (required)")
	docAddCmd.Flags().StringVar(&docCategory, "category", "DELIVERY", "Category: MARKET, DELIVERY, OPS, RND")
	docAddCmd.Flags().StringVar(&docVersion, "version", "", "Version ID the document belongs to")
	docAddCmd.Flags().StringVar(&docURL, "url", "", "Document link")
	docAddCmd.Flags().StringVar(&docAuthor, "author", "", "Document author")
	_ = docAddCmd.MarkFlagRequired("title")

	docListCmd.Flags().StringVar(&docQuery, "query", "", "Search title and author")
	docListCmd.Flags().StringVar(&docVersion, "version", "", "Filter by version ID")
	docListCmd.Flags().StringVar(&docCategory, "category", "", "Filter by category")

	docSetURLCmd.Flags().StringVar(&docURL, "url", "", "New document link (required)")
	_ = docSetURLCmd.MarkFlagRequired("url")

	docCmd.AddCommand(docAddCmd)
	docCmd.AddCommand(docListCmd)
	docCmd.AddCommand(docSetURLCmd)
	docCmd.AddCommand(docDeleteCmd)
	rootCmd.AddCommand(docCmd)
}

func docAddRun() error {
	s, err := getStore()
	if err != nil {
		return err
	}
	ctx := context.Background()

	d := &models.Document{
		Title:     docTitle,
		Category:  models.DocumentCategory(docCategory),
		VersionID: docVersion,
		URL:       docURL,
		Author:    docAuthor,
	}

	if dryRun {
		ui.DryRunMsg("Would add document: %s [%s]", docTitle, docCategory)
		return nil
	}

	if err := s.UpsertDocument(ctx, d); err != nil {
		return fmt.Errorf("create document: %w", err)
	}

	ui.Success("Created document %s: %s", output.Cyan(shortID(d.ID)), d.Title)
	return nil
}

func docListRun() error {
	s, err := getStore()
	if err != nil {
		return err
	}
	ctx := context.Background()

	docs, err := s.ListDocuments(ctx)
	if err != nil {
		return err
	}

	filtered := projection.FilterDocuments(docs, docQuery, docVersion, docCategory)
	if len(filtered) == 0 {
		ui.Info("No documents found.")
		return nil
	}

	table := ui.Table([]string{"ID", "Title", "Category", "Version", "Author", "Updated", "URL"})
	for _, d := range filtered {
		_ = table.Append([]string{
			shortID(d.ID),
			d.Title,
			string(d.Category),
			shortID(d.VersionID),
			d.Author,
			d.UpdatedAt,
			d.URL,
		})
	}
	_ = table.Render()
	return nil
}

func docSetURLRun(id string) error {
	s, err := getStore()
	if err != nil {
		return err
	}
	ctx := context.Background()

	d, err := s.GetDocument(ctx, id)
	if err != nil {
		return err
	}

	if dryRun {
		ui.DryRunMsg("Would set document %s URL to %s", shortID(d.ID), docURL)
		return nil
	}

	d.URL = docURL
	if err := s.UpsertDocument(ctx, d); err != nil {
		return fmt.Errorf("update document: %w", err)
	}

	ui.Success("Updated document %s", output.Cyan(shortID(d.ID)))
	return nil
}

func docDeleteRun(id string) error {
	s, err := getStore()
	if err != nil {
		return err
	}
	ctx := context.Background()

	if dryRun {
		ui.DryRunMsg("Would delete document %s", shortID(id))
		return nil
	}
	if !confirm("Delete document %s?", shortID(id)) {
		ui.Info("Aborted.")
		return nil
	}

	if err := s.DeleteDocument(ctx, id); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}

	ui.Success("Deleted document %s", shortID(id))
	return nil
}
