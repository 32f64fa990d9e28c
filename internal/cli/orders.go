package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"gitlab.com/nubelio/licences/storefront-client/internal/bootstrap"
	"gitlab.com/nubelio/licences/storefront-client/internal/domain"
)

func newOrderCmd(app *bootstrap.App, p *printer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Place and track orders",
	}

	var (
		name       string
		email      string
		phone      string
		payment    string
		enterprise bool
	)
	checkoutCmd := &cobra.Command{
		Use:   "checkout",
		Short: "Place an order from the current cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			metadata := map[string]any{}
			if payment != "" {
				metadata["paymentMethod"] = payment
			}
			if enterprise {
				metadata["enterprise"] = true
			}
			order, err := app.Orders().Checkout(cmd.Context(), domain.CreateOrderRequest{
				CustomerName:  name,
				CustomerEmail: email,
				CustomerPhone: phone,
				Metadata:      metadata,
			})
			if err != nil {
				return err
			}
			p.Success("Commande %s enregistrée (%s).", order.OrderNumber, formatPrice(order.TotalAmount))
			if order.WhatsappURL != "" {
				p.Info("Finalisez sur WhatsApp: %s", order.WhatsappURL)
			}
			return nil
		},
	}
	checkoutCmd.Flags().StringVar(&name, "name", "", "customer name")
	checkoutCmd.Flags().StringVar(&email, "email", "", "customer email (optional)")
	checkoutCmd.Flags().StringVar(&phone, "phone", "", "customer phone")
	checkoutCmd.Flags().StringVar(&payment, "payment", "", "payment method hint")
	checkoutCmd.Flags().BoolVar(&enterprise, "enterprise", false, "mark as an enterprise purchase")

	var status string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := app.Orders().List(cmd.Context(), domain.OrderQuery{Status: domain.OrderStatus(status)})
			if err != nil {
				return err
			}
			if len(resp.Orders) == 0 {
				p.Warning("Aucune commande.")
				return nil
			}
			p.OrderTable(resp.Orders)
			return nil
		},
	}
	listCmd.Flags().StringVar(&status, "status", "", "filter by status (PENDING, CONFIRMED, PROCESSING, COMPLETED, CANCELLED)")

	getCmd := &cobra.Command{
		Use:   "get <id-or-number>",
		Short: "Show one order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			byNumber, _ := cmd.Flags().GetBool("number")
			var (
				order *domain.Order
				err   error
			)
			if byNumber {
				order, err = app.Orders().GetByNumber(cmd.Context(), args[0])
			} else {
				order, err = app.Orders().Get(cmd.Context(), args[0])
			}
			if err != nil {
				return err
			}
			printOrder(p, order)
			return nil
		},
	}
	getCmd.Flags().Bool("number", false, "treat the argument as an order number")

	var newStatus string
	statusCmd := &cobra.Command{
		Use:   "status <id>",
		Short: "Move an order to a new status (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			order, err := app.Orders().UpdateStatus(cmd.Context(), args[0], domain.OrderStatus(newStatus))
			if err != nil {
				return err
			}
			p.Success("Commande %s passée au statut %s.", order.OrderNumber, order.Status)
			return nil
		},
	}
	statusCmd.Flags().StringVar(&newStatus, "to", "", "target status")
	_ = statusCmd.MarkFlagRequired("to")

	cancelCmd := &cobra.Command{
		Use:   "cancel <id>",
		Short: "Cancel an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			order, err := app.Orders().Cancel(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			p.Success("Commande %s annulée.", order.OrderNumber)
			return nil
		},
	}

	cmd.AddCommand(checkoutCmd, listCmd, getCmd, statusCmd, cancelCmd)
	return cmd
}

func printOrder(p *printer, order *domain.Order) {
	p.Header("Commande " + order.OrderNumber)
	p.Info("Client: %s (%s)", order.CustomerName, order.CustomerPhone)
	p.Info("Statut: %s", order.Status)
	p.Info("Total: %s", formatPrice(order.TotalAmount))
	if len(order.Items) > 0 {
		table := p.newTable([]string{"PRODUCT", "QTY", "UNIT PRICE"})
		for _, item := range order.Items {
			table.Append([]string{item.ProductName, strconv.Itoa(item.Quantity), formatPrice(item.Price)})
		}
		table.Render()
	}
	if order.WhatsappURL != "" {
		p.Info("WhatsApp: %s", order.WhatsappURL)
	}
}
