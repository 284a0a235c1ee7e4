package main

import (
	"fmt"

	"github.com/san-kum/photonplot/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "write or check yaml configuration files",
	}

	initCmd := &cobra.Command{
		Use:   "init [file]",
		Short: "write the resolved configuration (defaults, preset, flags) as yaml",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Save(args[0], cfg); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
			logger.Info("wrote config", zap.String("path", args[0]))
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
			return nil
		},
	}

	checkCmd := &cobra.Command{
		Use:   "check [file]",
		Short: "validate a yaml configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.Load(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (theme %s, view %s, canvas %dx%d)\n",
				args[0], c.Theme, c.View, c.Canvas.Width, c.Canvas.Height)
			return nil
		},
	}

	configCmd.AddCommand(initCmd, checkCmd)
	return configCmd
}
