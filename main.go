package main

import (
	"fmt"
	"os"

	"github.com/nconklindev/catalogfmt/internal/config"
	"github.com/nconklindev/catalogfmt/internal/converter"
	"github.com/nconklindev/catalogfmt/internal/logger"
	"github.com/nconklindev/catalogfmt/internal/prompt"
	"github.com/nconklindev/catalogfmt/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		plain      bool
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "catalogfmt [input-file]",
		Short: "Convert a supplier product sheet into the catalog upload layout",
		Long: `Convert a supplier product sheet (.xlsx or .csv) into the 19-column catalog
layout. The result is written next to the input as
<YYYYMMDD>_bot_` + converter.VendorToken + `_형식화.xlsx.

Without arguments an interactive prompt asks for the input file.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.MaximumNArgs(1)(cmd, args); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
				return err
			}
			return nil
		},
		Version:       fmt.Sprintf("%s\ncommit: %s\nbuilt: %s", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error loading config: %v\n", err)
				return err
			}

			if err := logger.Init(cfg.Log.Directory, cfg.Log.Level); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error opening log file: %v\n", err)
				return err
			}
			defer logger.Close()

			conv := converter.New(cfg.Output.Directory)

			if plain || len(args) > 0 {
				inputFile := ""
				if len(args) > 0 {
					inputFile = args[0]
				}
				_, err := prompt.Run(cmd.InOrStdin(), cmd.OutOrStdout(), conv, inputFile)
				return err
			}

			p := tea.NewProgram(ui.InitialModel(conv), tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				logger.Error("UI failed", "error", err)
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
				return err
			}
			return nil
		},
	}

	cmd.SetVersionTemplate("catalogfmt {{.Version}}\n")
	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return err
	})
	cmd.Flags().BoolVar(&plain, "plain", false, "Ask for the input file on stdin instead of the interactive UI")
	cmd.Flags().StringVar(&configPath, "config", config.DefaultPath, "Path to the TOML config file")

	return cmd
}
