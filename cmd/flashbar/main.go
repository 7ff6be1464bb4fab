package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┌─┐┬  ┌─┐┌─┐┬ ┬┌┐ ┌─┐┬─┐
  ├┤ │  ├─┤└─┐├─┤├┴┐├─┤├┬┘
  └  ┴─┘┴ ┴└─┘┴ ┴└─┘┴ ┴┴└─
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "flashbar",
		Short: "Server-driven status messages for the browser",
		Long: `Flashbar hosts a live status-message bar: the element tree lives
on the server, a thin JavaScript client mirrors it in the browser,
and show/hide/dismiss flow over a WebSocket as DOM patches.

Commands:
  serve    host the message bar page
  publish  upload the client bundle to an S3 bucket
  version  print version information`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		publishCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

func printBanner() {
	fmt.Print(banner)
}
