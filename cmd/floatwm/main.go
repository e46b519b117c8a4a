package main

import (
	"fmt"
	"os"

	"github.com/1broseidon/floatwm/internal/config"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "floatwm",
	Short: "Keyboard-driven floating window manager for X11",
	Long: "floatwm manages X11 windows as floating clients: every move, resize, maximize, fold\n" +
		"and workspace switch is a key or button binding. Run 'floatwm daemon' from your\n" +
		"X session and drive the running manager with the other commands.",
	SilenceUsage: true,
}

var (
	configPath string
	jsonOutput bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = version
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: ~/.config/floatwm/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print JSON even when stdout is a terminal")
}

// loadResult loads the configuration from --config, or the default path.
func loadResult() (*config.LoadResult, error) {
	if configPath == "" {
		return config.LoadWithSources()
	}
	return config.LoadFromPath(configPath)
}

func loadConfig() (*config.Config, error) {
	res, err := loadResult()
	if err != nil {
		return nil, err
	}
	return res.Config, nil
}

func formatSource(src config.Source) string {
	switch src.Kind {
	case config.SourceFile:
		if src.File == "" {
			return "file"
		}
		if src.Line > 0 {
			return fmt.Sprintf("file:%s:%d:%d", src.File, src.Line, src.Column)
		}
		return "file:" + src.File
	case config.SourceBuiltin:
		if src.Name != "" {
			return "builtin:" + src.Name
		}
		return "builtin"
	case config.SourceDefault:
		if src.Name != "" {
			return "default:" + src.Name
		}
		return "default"
	default:
		return string(src.Kind)
	}
}
