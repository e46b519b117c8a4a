package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/1broseidon/floatwm/internal/config"
	"github.com/1broseidon/floatwm/internal/hotkeys"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and validate the configuration",
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load the configuration and report problems",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := loadResult(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "config: ok")
		return nil
	},
}

var configPrintCmd = &cobra.Command{
	Use:   "print",
	Short: "Print the effective configuration as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, _ := cmd.Flags().GetBool("defaults")
		cfg := config.DefaultConfig()
		if !defaults {
			res, err := loadResult()
			if err != nil {
				return err
			}
			cfg = res.Config
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var configExplainCmd = &cobra.Command{
	Use:   "explain <yaml.path>",
	Short: "Show a configuration value and where it came from",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := loadResult()
		if err != nil {
			return err
		}
		value, src, err := config.Explain(res, args[0])
		if err != nil {
			return err
		}
		out, err := yaml.Marshal(value)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "path: %s\n", args[0])
		fmt.Fprintf(w, "source: %s\n", formatSource(src))
		fmt.Fprintf(w, "value:\n%s", string(out))
		return nil
	},
}

var bindingsCmd = &cobra.Command{
	Use:   "bindings",
	Short: "List the key and button bindings in effect",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		keys, err := cfg.KeyTable()
		if err != nil {
			return err
		}
		buttons, err := cfg.ButtonTable()
		if err != nil {
			return err
		}
		return printBindings(cmd.OutOrStdout(), keys, buttons)
	},
}

func init() {
	configPrintCmd.Flags().Bool("defaults", false, "Print built-in defaults (no files)")
	configCmd.AddCommand(configValidateCmd, configPrintCmd, configExplainCmd)
	rootCmd.AddCommand(configCmd, bindingsCmd)
}

// bindingRow is one binding in bindings output.
type bindingRow struct {
	Kind   string `json:"kind"`
	Chord  string `json:"chord"`
	Action string `json:"action"`
}

func bindingRows(keys, buttons *hotkeys.Table) []bindingRow {
	rows := make([]bindingRow, 0, keys.Len()+buttons.Len())
	for _, b := range keys.Bindings() {
		rows = append(rows, bindingRow{Kind: "key", Chord: chord(b.Mods, hotkeys.KeysymName(b.Code)), Action: b.Action.String()})
	}
	for _, b := range buttons.Bindings() {
		rows = append(rows, bindingRow{Kind: "button", Chord: chord(b.Mods, fmt.Sprintf("button%d", b.Code)), Action: b.Action.String()})
	}
	return rows
}

func chord(mods hotkeys.Modifier, name string) string {
	if mods == 0 {
		return name
	}
	return mods.String() + "+" + name
}

func printBindings(w io.Writer, keys, buttons *hotkeys.Table) error {
	rows := bindingRows(keys, buttons)
	if !styled(w) {
		return printJSON(w, rows)
	}

	cells := make([][]string, len(rows))
	for i, r := range rows {
		cells[i] = []string{r.Kind, r.Chord, r.Action}
	}
	fmt.Fprintln(w, renderTable([]string{"KIND", "CHORD", "ACTION"}, cells, nil))
	return nil
}
