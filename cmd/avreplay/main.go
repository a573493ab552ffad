package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/mediatrack/pkg/avmedia"
	"github.com/dmitrymomot/mediatrack/pkg/config"
	"github.com/dmitrymomot/mediatrack/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		logLevel  string
		logFormat string
		envFiles  []string
	)

	cmd := &cobra.Command{
		Use:   "avreplay <script.yaml>",
		Short: "Replay recorded player actions through the playback tracker",
		Long: "avreplay feeds a YAML script of player actions to a playback tracker in real time\n" +
			"and prints every emitted analytics event as a JSON line on stdout.\n\n" +
			"Heartbeat defaults come from AV_HEARTBEAT, AV_BUFFER_HEARTBEAT, AV_HEARTBEAT_TABLE\n" +
			"and AV_BUFFER_HEARTBEAT_TABLE; a schedule section in the script overrides them.",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := logger.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			format := logger.Format(logFormat)
			if format != logger.FormatText && format != logger.FormatJSON {
				return fmt.Errorf("invalid log format %q", logFormat)
			}
			log := logger.New(
				logger.WithFormat(format),
				logger.WithLevel(level),
				logger.WithOutput(cmd.ErrOrStderr()),
				logger.WithAttr(slog.String("service", "avreplay")),
			)

			if len(envFiles) > 0 {
				if err := config.LoadEnv(envFiles...); err != nil {
					return err
				}
			}
			var cfg avmedia.Config
			if err := config.Load(&cfg); err != nil {
				return fmt.Errorf("load heartbeat config: %w", err)
			}

			script, err := loadScript(args[0])
			if err != nil {
				return err
			}
			return replay(cmd.Context(), script, cfg, cmd.OutOrStdout(), log)
		},
	}

	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	cmd.Flags().StringVar(&logFormat, "log-format", string(logger.FormatText), "log format: text or json")
	cmd.Flags().StringSliceVar(&envFiles, "env-file", nil, "additional .env files to load")

	return cmd
}
