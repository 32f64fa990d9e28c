// Package cli contains the cobra command tree of the storefront client.
package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"gitlab.com/nubelio/licences/storefront-client/internal/bootstrap"
)

var version = "dev"

// SetVersion sets the version string reported by the CLI.
func SetVersion(v string) {
	version = v
}

// Execute wires the application, runs the command line, and returns the
// process exit code.
func Execute() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	app, cleanup, err := bootstrap.InitializeApp(ctx)
	if err != nil {
		newPrinter().Failure(err)
		return 1
	}
	defer cleanup()

	app.Start(ctx)

	p := newPrinter()
	root := newRootCmd(app, p)
	if err := root.ExecuteContext(ctx); err != nil {
		p.Failure(err)
		return 1
	}
	return 0
}

func newRootCmd(app *bootstrap.App, p *printer) *cobra.Command {
	root := &cobra.Command{
		Use:   "licences-storefront",
		Short: "Storefront client for the licences API",
		Long: `licences-storefront is the command line front end of the licences
digital storefront. It browses the catalog, manages the session cart,
and places orders against the remote API.

Example usage:
  licences-storefront login --email you@example.com
  licences-storefront products list --search antivirus
  licences-storefront cart add <product-id> --quantity 2
  licences-storefront order checkout --name "Jane" --phone "+33600000000"`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newLoginCmd(app, p),
		newRegisterCmd(app, p),
		newLogoutCmd(app, p),
		newWhoamiCmd(app, p),
		newCategoriesCmd(app, p),
		newProductsCmd(app, p),
		newCartCmd(app, p),
		newOrderCmd(app, p),
		newHealthCmd(app, p),
	)
	return root
}
