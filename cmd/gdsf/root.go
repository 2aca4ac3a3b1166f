package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jwebster45206/violeta/internal/config"
	"github.com/jwebster45206/violeta/internal/logger"
)

// app carries what PersistentPreRunE sets up for every subcommand.
type app struct {
	configPath string
	cfg        *config.Config
	logger     *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "gdsf",
		Short: "Inspect and validate VIOLETA design files",
		Long: `gdsf works with GDSF design files produced by the VIOLETA wizard.

A GDSF file is a list of [section] blocks holding key = "value" lines.
[schema] sections must carry a unique id, a non-blank name and at most one
property; every other section is free-form.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if a.configPath != "" {
				a.cfg, err = config.LoadFile(a.configPath)
			} else {
				a.cfg, err = config.Load()
			}
			if err != nil {
				return err
			}
			a.logger = logger.Setup(a.cfg, cmd.ErrOrStderr())
			return nil
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "",
		"YAML config file (defaults to $CONFIG_FILE)")

	root.AddCommand(
		newValidateCmd(a),
		newSchemasCmd(a),
		newSectionCmd(a),
		newDumpCmd(a),
		newWatchCmd(a),
		newStateCmd(a),
	)
	return root
}
