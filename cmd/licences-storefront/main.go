// Package main is the entry point for the licences storefront CLI.
package main

import (
	"os"

	"gitlab.com/nubelio/licences/storefront-client/internal/cli"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	cli.SetVersion(version)
	os.Exit(cli.Execute())
}
