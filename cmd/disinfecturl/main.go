package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/njchilds90/disinfecturl"
	"github.com/njchilds90/disinfecturl/internal/config"
)

var version = "0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "disinfecturl",
		Short: "Neutralize javascript:, data: and vbscript: URLs",
		Long: `disinfecturl cleans untrusted URLs and the anchor hrefs of HTML fragments.

Dangerous URLs, including entity-encoded and control-character
obfuscated ones, are replaced with about:blank. Everything else is
passed through in its cleaned form.

Inputs are taken from the arguments, or from stdin when none are given.`,
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file (default $"+config.EnvPath+")")
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON lines")

	rootCmd.AddCommand(
		newVersionCmd(),
		newSanitizeCmd(),
		newURLCmd(),
		newHTMLCmd(),
		newInspectCmd(),
		newServeCmd(),
		newMCPServerCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]string{"version": version})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "disinfecturl version %s\n", version)
			return nil
		},
	}
}

// app is the state every command builds from the config file.
type app struct {
	cfg    config.Config
	logger *slog.Logger
	san    *disinfecturl.Sanitizer
}

func loadApp(cmd *cobra.Command) (*app, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	logger := cfg.Log.NewLogger(cmd.ErrOrStderr()).With("process", "disinfecturl")
	return &app{
		cfg:    cfg,
		logger: logger,
		san:    &disinfecturl.Sanitizer{Logger: logger},
	}, nil
}
