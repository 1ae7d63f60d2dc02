package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/NivBraz/wordtally/internal/app"
	"github.com/NivBraz/wordtally/internal/config"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Tally the sources listed in a config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(cmd, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			path, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(path)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			logger.Debug().Str("config", path).Int("sources", len(cfg.AllSources)).Msg("configuration loaded")

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			opts := []app.Option{app.WithProgressOutput(cmd.ErrOrStderr())}
			if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
				opts = []app.Option{app.WithProgressOutput(io.Discard)}
			}

			application, err := app.New(cfg, logger, opts...)
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}

			result, runErr := application.Run(ctx)
			if runErr != nil {
				logger.Warn().Err(runErr).Msg("errors occurred during the run")
			}

			format := cfg.Output.Format
			if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
				format = config.FormatJSON
			}
			return app.WriteResult(cmd.OutOrStdout(), result, format, cfg.Output.PrettyPrint)
		},
	}

	cmd.Flags().StringP("config", "c", "config.yaml", "Path to the YAML configuration")
	cmd.Flags().BoolP("quiet", "q", false, "Do not draw progress bars")

	return cmd
}
