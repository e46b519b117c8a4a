package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/1broseidon/floatwm/internal/ipc"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show daemon status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := ipc.NewClient().GetStatus()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if !styled(out) {
			return printJSON(out, status)
		}
		fmt.Fprint(out, renderStatus(status))
		return nil
	},
}

var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "List managed windows",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := ipc.NewClient().ListClients()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if !styled(out) {
			return printJSON(out, data)
		}
		fmt.Fprint(out, renderClients(data.Clients))
		return nil
	},
}

var monitorsCmd = &cobra.Command{
	Use:   "monitors",
	Short: "List screens and their usable areas",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := ipc.NewClient().GetMonitors()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if !styled(out) {
			return printJSON(out, data)
		}
		fmt.Fprint(out, renderMonitors(data.Monitors))
		return nil
	},
}

var dispatchCmd = &cobra.Command{
	Use:   "dispatch <action> [arg...]",
	Short: "Run an action as if its binding was pressed",
	Long: "Run an action in the daemon as if its binding was pressed.\n\n" +
		"Examples:\n" +
		"  floatwm dispatch maximize fullscreen\n" +
		"  floatwm dispatch move_step left_slow\n" +
		"  floatwm dispatch change_workspace 2\n" +
		"  floatwm dispatch --window 0x1e00003 hide",
	Args: cobra.MinimumNArgs(1),
	RunE: runDispatch,
}

var reloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Reload the daemon configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := ipc.NewClient().Reload(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "config: reloaded")
		return nil
	},
}

func init() {
	dispatchCmd.Flags().String("window", "", "Window id to act on, decimal or 0x-prefixed (default: focused client)")
	rootCmd.AddCommand(statusCmd, clientsCmd, monitorsCmd, dispatchCmd, reloadCmd)
}

func runDispatch(cmd *cobra.Command, args []string) error {
	raw, _ := cmd.Flags().GetString("window")
	window, err := parseWindowID(raw)
	if err != nil {
		return err
	}

	data, err := ipc.NewClient().Dispatch(args[0], args[1:], window)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !styled(out) {
		return printJSON(out, data)
	}
	if data.Note != "" {
		fmt.Fprintf(out, "%s: %s\n", data.Action, dimStyle.Render(data.Note))
		return nil
	}
	fmt.Fprintln(out, headerStyle.Render(data.Action))
	for _, d := range data.Directives {
		fmt.Fprintf(out, "  %s\n", d)
	}
	return nil
}

// parseWindowID accepts decimal and 0x-prefixed window ids; empty means
// none.
func parseWindowID(raw string) (uint32, error) {
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseUint(raw, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid window id %q", raw)
	}
	return uint32(id), nil
}
