package cli

import (
	"github.com/spf13/cobra"

	"gitlab.com/nubelio/licences/storefront-client/internal/bootstrap"
	"gitlab.com/nubelio/licences/storefront-client/internal/domain"
)

func newCartCmd(app *bootstrap.App, p *printer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage the session cart",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the current cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := app.Cart().Refresh(cmd.Context())
			if err != nil {
				return err
			}
			printCart(app, p, resp)
			return nil
		},
	}

	var quantity int
	addCmd := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := app.Cart().Add(cmd.Context(), args[0], quantity)
			if err != nil {
				return err
			}
			p.Success("Produit ajouté au panier.")
			printCart(app, p, resp)
			return nil
		},
	}
	addCmd.Flags().IntVar(&quantity, "quantity", 1, "number of units")

	var newQuantity int
	updateCmd := &cobra.Command{
		Use:   "update <product-id>",
		Short: "Change the quantity of a cart line (0 removes it)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := app.Cart().SetQuantity(cmd.Context(), args[0], newQuantity)
			if err != nil {
				return err
			}
			p.Success("Panier mis à jour.")
			printCart(app, p, resp)
			return nil
		},
	}
	updateCmd.Flags().IntVar(&newQuantity, "quantity", 1, "new quantity, 0 or less removes the line")

	removeCmd := &cobra.Command{
		Use:   "remove <product-id>",
		Short: "Remove a product from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := app.Cart().Remove(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			p.Success("Produit retiré du panier.")
			printCart(app, p, resp)
			return nil
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.Cart().Clear(cmd.Context()); err != nil {
				return err
			}
			p.Success("Panier vidé.")
			return nil
		},
	}

	cmd.AddCommand(showCmd, addCmd, updateCmd, removeCmd, clearCmd)
	return cmd
}

func printCart(app *bootstrap.App, p *printer, resp *domain.CartResponse) {
	if len(resp.Cart.Items) == 0 {
		p.Warning("Votre panier est vide.")
		return
	}
	p.CartTable(resp)
	p.Info("Total: %d article(s), %s", app.Cart().TotalItems(), formatPrice(app.Cart().TotalPrice()))
}
