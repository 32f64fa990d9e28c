package cli

import (
	"time"

	"github.com/spf13/cobra"

	"gitlab.com/nubelio/licences/storefront-client/internal/bootstrap"
)

func newHealthCmd(app *bootstrap.App, p *printer) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check the licences API reachability",
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			resp, err := app.Health().Check(cmd.Context())
			if err != nil {
				return err
			}
			p.Success("API joignable: %s (en %s)", resp.Status, time.Since(start).Round(time.Millisecond))
			return nil
		},
	}
}
