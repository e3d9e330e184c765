// Command dashctl drives a running chart dashboard service from the terminal.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

const defaultServer = "http://localhost:8980"

// options holds the persistent flags shared by every subcommand
type options struct {
	server  string
	timeout time.Duration
	json    bool
}

func (o *options) client() *Client {
	return NewClient(o.server, o.timeout)
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "dashctl",
		Short: "Control a chart dashboard service",
		Long: `dashctl talks to the dashboard HTTP API. It can inspect and change the
active filters, switch the rendering backend, toggle the theme, fetch chart
payloads and PNG snapshots, and create static exports.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	server := os.Getenv("DASHCTL_SERVER")
	if server == "" {
		server = defaultServer
	}
	rootCmd.PersistentFlags().StringVar(&opts.server, "server", server, "Base URL of the dashboard service")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "HTTP request timeout")
	rootCmd.PersistentFlags().BoolVar(&opts.json, "json", false, "Print raw JSON instead of text")

	rootCmd.AddCommand(
		newStateCmd(opts),
		newChartCmd(opts),
		newFiltersCmd(opts),
		newResetCmd(opts),
		newBackendCmd(opts),
		newThemeCmd(opts),
		newCacheCmd(opts),
		newSnapshotCmd(opts),
		newExportCmd(opts),
	)
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
