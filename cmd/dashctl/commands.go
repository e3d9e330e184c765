package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"chartdeck/internal/models"
	"chartdeck/internal/server"
)

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printState(w io.Writer, st *server.State) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Time range:\t%s\n", st.Filters.TimeRange)
	fmt.Fprintf(tw, "Category:\t%s\n", st.Filters.Category)
	fmt.Fprintf(tw, "Region:\t%s\n", st.Filters.Region)
	fmt.Fprintf(tw, "Backend:\t%s\n", st.Backend)
	theme := "light"
	if st.Theme.Dark {
		theme = "dark"
	}
	fmt.Fprintf(tw, "Theme:\t%s\n", theme)
	fmt.Fprintf(tw, "Cache:\t%d entries, %d hits, %d misses, %d clears\n",
		st.Cache.Entries, st.Cache.Hits, st.Cache.Misses, st.Cache.Clears)
	tw.Flush()

	if len(st.Widgets) == 0 {
		return
	}
	kinds := make([]string, 0, len(st.Widgets))
	for k := range st.Widgets {
		kinds = append(kinds, string(k))
	}
	sort.Strings(kinds)

	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "WIDGET\tSTATE")
	for _, k := range kinds {
		fmt.Fprintf(tw, "%s\t%s\n", k, st.Widgets[models.ChartKind(k)])
	}
	tw.Flush()
}

// stateResult prints a state reply in the format selected by --json
func stateResult(cmd *cobra.Command, opts *options, st *server.State) error {
	if opts.json {
		return printJSON(cmd.OutOrStdout(), st)
	}
	printState(cmd.OutOrStdout(), st)
	return nil
}

func newStateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "state",
		Short: "Show filters, backend, theme and widget cache states",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := opts.client().State(cmd.Context())
			if err != nil {
				return err
			}
			return stateResult(cmd, opts, st)
		},
	}
}

func newChartCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "chart <kind>",
		Short: "Print the chart payload for a kind under the active backend",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, backend, err := opts.client().Chart(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !opts.json && backend != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "# backend: %s\n", backend)
			}
			var v interface{}
			if err := json.Unmarshal(payload, &v); err != nil {
				return fmt.Errorf("failed to decode chart payload: %w", err)
			}
			return printJSON(cmd.OutOrStdout(), v)
		},
	}
}

func newFiltersCmd(opts *options) *cobra.Command {
	var timeRange, category, region string

	cmd := &cobra.Command{
		Use:   "filters",
		Short: "Change one or more filters; omitted filters keep their value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var update FilterUpdate
			if cmd.Flags().Changed("time") {
				update.TimeRange = &timeRange
			}
			if cmd.Flags().Changed("category") {
				update.Category = &category
			}
			if cmd.Flags().Changed("region") {
				update.Region = &region
			}
			if update.TimeRange == nil && update.Category == nil && update.Region == nil {
				return fmt.Errorf("at least one of --time, --category or --region is required")
			}

			st, err := opts.client().SetFilters(cmd.Context(), update)
			if err != nil {
				return err
			}
			return stateResult(cmd, opts, st)
		},
	}
	cmd.Flags().StringVar(&timeRange, "time", "", "Time range (last7days, last30days, last90days, thisYear)")
	cmd.Flags().StringVar(&category, "category", "", "Category (all, electronics, clothing, food, services)")
	cmd.Flags().StringVar(&region, "region", "", "Region (all, north, south, east, west)")
	return cmd
}

func newResetCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore the default filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := opts.client().ResetFilters(cmd.Context())
			if err != nil {
				return err
			}
			return stateResult(cmd, opts, st)
		},
	}
}

func newBackendCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:       "backend <echarts|highcharts|chartjs>",
		Short:     "Switch the chart rendering backend",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(models.BackendECharts), string(models.BackendHighcharts), string(models.BackendChartJS)},
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := opts.client().SetBackend(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return stateResult(cmd, opts, st)
		},
	}
}

func newThemeCmd(opts *options) *cobra.Command {
	themeCmd := &cobra.Command{
		Use:   "theme",
		Short: "Manage the dashboard theme",
	}
	themeCmd.AddCommand(&cobra.Command{
		Use:   "toggle",
		Short: "Flip between the light and dark theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := opts.client().ToggleTheme(cmd.Context())
			if err != nil {
				return err
			}
			if opts.json {
				return printJSON(cmd.OutOrStdout(), t)
			}
			if t.Dark {
				fmt.Fprintln(cmd.OutOrStdout(), "Theme: dark")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Theme: light")
			}
			return nil
		},
	})
	return themeCmd
}

func newCacheCmd(opts *options) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the server-side chart cache",
	}
	cacheCmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Drop every cached chart payload",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := opts.client().ClearCache(cmd.Context())
			if err != nil {
				return err
			}
			if opts.json {
				return printJSON(cmd.OutOrStdout(), stats)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cache cleared (%d clears so far)\n", stats.Clears)
			return nil
		},
	})
	return cacheCmd
}

func newSnapshotCmd(opts *options) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "snapshot <kind>",
		Short: "Download a PNG rendering of a chart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := opts.client().Snapshot(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if output == "" {
				output = args[0] + ".png"
			}
			if output == "-" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return fmt.Errorf("failed to write snapshot: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Saved %s (%d bytes)\n", output, len(data))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default <kind>.png, - for stdout)")
	return cmd
}

func newExportCmd(opts *options) *cobra.Command {
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Render the dashboard into a stored static page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := opts.client().Export(cmd.Context())
			if err != nil {
				return err
			}
			if opts.json {
				return printJSON(cmd.OutOrStdout(), res)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Export %s created with %d charts\n", res.ID, len(res.Charts))
			fmt.Fprintf(cmd.OutOrStdout(), "URL: %s%s\n", opts.server, res.URL)
			return nil
		},
	}
	exportCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List stored exports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := opts.client().ListExports(cmd.Context())
			if err != nil {
				return err
			}
			if opts.json {
				return printJSON(cmd.OutOrStdout(), ids)
			}
			if len(ids) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No exports")
				return nil
			}
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	})
	return exportCmd
}
