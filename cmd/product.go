package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/prodhub/workbench/internal/models"
	"github.com/prodhub/workbench/internal/output"
)

var (
	productName   string
	productDesc   string
	productOwner  string
	productHealth int
)

var productCmd = &cobra.Command{
	Use:   "product",
	Short: "Manage the product catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		return productListRun()
	},
}

var productListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List products",
	RunE: func(cmd *cobra.Command, args []string) error {
		return productListRun()
	},
}

var productAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a product",
	RunE: func(cmd *cobra.Command, args []string) error {
		return productAddRun()
	},
}

var productUpdateCmd = &cobra.Command{
	Use:   "update <product-id>",
	Short: "Update a product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return productUpdateRun(args[0])
	},
}

var productDeleteCmd = &cobra.Command{
	Use:     "delete <product-id>",
	Aliases: []string{"rm"},
	Short:   "Delete a product",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return productDeleteRun(args[0])
	},
}

func init() {
	productAddCmd.Flags().StringVar(&productName, "name", "", "Product name (required)")
	productAddCmd.Flags().StringVar(&productDesc, "desc", "", "Product description")
	productAddCmd.Flags().StringVar(&productOwner, "owner", "", "Product owner")
	productAddCmd.Flags().IntVar(&productHealth, "health", 100, "Health score (0-100)")
	_ = productAddCmd.MarkFlagRequired("name")

	productUpdateCmd.Flags().StringVar(&productName, "name", "", "New name")
	productUpdateCmd.Flags().StringVar(&productDesc, "desc", "", "New description")
	productUpdateCmd.Flags().StringVar(&productOwner, "owner", "", "New owner")
	productUpdateCmd.Flags().IntVar(&productHealth, "health", -1, "New health score (0-100)")

	productCmd.AddCommand(productListCmd)
	productCmd.AddCommand(productAddCmd)
	productCmd.AddCommand(productUpdateCmd)
	productCmd.AddCommand(productDeleteCmd)
	rootCmd.AddCommand(productCmd)
}

func productListRun() error {
	s, err := getStore()
	if err != nil {
		return err
	}
	ctx := context.Background()

	products, err := s.ListProducts(ctx)
	if err != nil {
		return err
	}

	if len(products) == 0 {
		ui.Info("No products found.")
		return nil
	}

	table := ui.Table([]string{"ID", "Name", "Owner", "Health", "Tickets", "Description"})
	for _, p := range products {
		_ = table.Append([]string{
			shortID(p.ID),
			output.Cyan(p.Name),
			p.Owner,
			output.HealthColor(p.Health),
			strconv.Itoa(p.ActiveTickets),
			p.Description,
		})
	}
	_ = table.Render()
	return nil
}

func productAddRun() error {
	s, err := getStore()
	if err != nil {
		return err
	}
	ctx := context.Background()

	p := &models.Product{
		Name:        productName,
		Description: productDesc,
		Owner:       productOwner,
		Health:      productHealth,
	}

	if dryRun {
		ui.DryRunMsg("Would add product: %s", productName)
		return nil
	}

	if err := s.UpsertProduct(ctx, p); err != nil {
		return fmt.Errorf("create product: %w", err)
	}

	ui.Success("Created product %s: %s", output.Cyan(shortID(p.ID)), p.Name)
	return nil
}

func productUpdateRun(id string) error {
	s, err := getStore()
	if err != nil {
		return err
	}
	ctx := context.Background()

	p, err := s.GetProduct(ctx, id)
	if err != nil {
		return err
	}

	changed := false
	if productName != "" {
		p.Name = productName
		changed = true
	}
	if productDesc != "" {
		p.Description = productDesc
		changed = true
	}
	if productOwner != "" {
		p.Owner = productOwner
		changed = true
	}
	if productHealth >= 0 {
		p.Health = productHealth
		changed = true
	}

	if !changed {
		ui.Info("Nothing to update. Use --name, --desc, --owner, or --health.")
		return nil
	}

	if dryRun {
		ui.DryRunMsg("Would update product %s", shortID(p.ID))
		return nil
	}

	if err := s.UpsertProduct(ctx, p); err != nil {
		return fmt.Errorf("update product: %w", err)
	}

	ui.Success("Updated product %s", output.Cyan(shortID(p.ID)))
	return nil
}

func productDeleteRun(id string) error {
	s, err := getStore()
	if err != nil {
		return err
	}
	ctx := context.Background()

	if dryRun {
		ui.DryRunMsg("Would delete product %s", shortID(id))
		return nil
	}
	if !confirm("Delete product %s?", shortID(id)) {
		ui.Info("Aborted.")
		return nil
	}

	if err := s.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	ui.Success("Deleted product %s", shortID(id))
	return nil
}
