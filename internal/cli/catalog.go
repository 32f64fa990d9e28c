package cli

import (
	"github.com/spf13/cobra"

	"gitlab.com/nubelio/licences/storefront-client/internal/bootstrap"
	"gitlab.com/nubelio/licences/storefront-client/internal/domain"
)

func newCategoriesCmd(app *bootstrap.App, p *printer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Browse catalog categories",
	}

	var q domain.CategoryQuery
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := app.Catalog().ListCategories(cmd.Context(), q)
			if err != nil {
				return err
			}
			if len(resp.Data) == 0 {
				p.Warning("Aucune catégorie.")
				return nil
			}
			p.CategoryTable(resp.Data)
			if resp.Pagination.PageCount > 1 {
				p.Info("Page %d/%d (%d au total)", resp.Pagination.Page, resp.Pagination.PageCount, resp.Pagination.Total)
			}
			return nil
		},
	}
	listCmd.Flags().BoolVar(&q.IncludeInactive, "include-inactive", false, "include inactive categories")
	listCmd.Flags().IntVar(&q.Page, "page", 0, "page number")
	listCmd.Flags().IntVar(&q.Limit, "limit", 0, "page size")
	listCmd.Flags().StringVar(&q.Sort, "sort", "", "sort field (name, order)")
	listCmd.Flags().StringVar(&q.Order, "order", "", "sort direction (asc, desc)")

	getCmd := &cobra.Command{
		Use:   "get <id-or-slug>",
		Short: "Show one category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			byslug, _ := cmd.Flags().GetBool("slug")
			var (
				cat *domain.Category
				err error
			)
			if byslug {
				cat, err = app.Catalog().GetCategoryBySlug(cmd.Context(), args[0])
			} else {
				cat, err = app.Catalog().GetCategory(cmd.Context(), args[0])
			}
			if err != nil {
				return err
			}
			p.Header(cat.Name)
			p.Info("ID: %s", cat.ID)
			p.Info("Slug: %s", cat.Slug)
			if cat.Description != "" {
				p.Info("%s", cat.Description)
			}
			if len(cat.Products) > 0 {
				p.Header("Produits")
				p.ProductTable(cat.Products)
			}
			return nil
		},
	}
	getCmd.Flags().Bool("slug", false, "treat the argument as a slug")

	cmd.AddCommand(listCmd, getCmd)
	return cmd
}

func newProductsCmd(app *bootstrap.App, p *printer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Browse catalog products",
	}

	var q domain.ProductQuery
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List products",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := app.Catalog().ListProducts(cmd.Context(), q)
			if err != nil {
				return err
			}
			if len(resp.Data) == 0 {
				p.Warning("Aucun produit.")
				return nil
			}
			p.ProductTable(resp.Data)
			if resp.Pagination.PageCount > 1 {
				p.Info("Page %d/%d (%d au total)", resp.Pagination.Page, resp.Pagination.PageCount, resp.Pagination.Total)
			}
			return nil
		},
	}
	listCmd.Flags().BoolVar(&q.IncludeInactive, "include-inactive", false, "include inactive products")
	listCmd.Flags().StringVar(&q.CategoryID, "category", "", "filter by category ID")
	listCmd.Flags().IntVar(&q.Page, "page", 0, "page number")
	listCmd.Flags().IntVar(&q.Limit, "limit", 0, "page size")
	listCmd.Flags().StringVar(&q.Sort, "sort", "", "sort field (price, name, createdAt, stockQuantity)")
	listCmd.Flags().StringVar(&q.Order, "order", "", "sort direction (asc, desc)")
	listCmd.Flags().StringVar(&q.Search, "search", "", "free text search")
	listCmd.Flags().Float64Var(&q.MinPrice, "min-price", 0, "minimum price")
	listCmd.Flags().Float64Var(&q.MaxPrice, "max-price", 0, "maximum price")
	listCmd.Flags().StringVar(&q.Tags, "tags", "", "comma separated tags")
	listCmd.Flags().IntVar(&q.MinStock, "min-stock", 0, "minimum stock")
	listCmd.Flags().IntVar(&q.MaxStock, "max-stock", 0, "maximum stock")

	getCmd := &cobra.Command{
		Use:   "get <id-or-slug>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			byslug, _ := cmd.Flags().GetBool("slug")
			var (
				prod *domain.Product
				err  error
			)
			if byslug {
				prod, err = app.Catalog().GetProductBySlug(cmd.Context(), args[0])
			} else {
				prod, err = app.Catalog().GetProduct(cmd.Context(), args[0])
			}
			if err != nil {
				return err
			}
			p.Header(prod.Name)
			p.Info("ID: %s", prod.ID)
			p.Info("Prix: %s", formatPrice(prod.Price))
			if prod.ComparePrice > prod.Price {
				p.Info("Prix barré: %s", formatPrice(prod.ComparePrice))
			}
			p.Info("Stock: %d", prod.StockQuantity)
			if prod.ShortDesc != "" {
				p.Info("%s", prod.ShortDesc)
			}
			return nil
		},
	}
	getCmd.Flags().Bool("slug", false, "treat the argument as a slug")

	cmd.AddCommand(listCmd, getCmd)
	return cmd
}
