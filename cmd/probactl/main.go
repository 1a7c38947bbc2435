// Command probactl drives the ProbaX services from the shell.
//
// Usage:
//
//	probactl teams rebuild
//	probactl teams search "inter" --limit 5
//	probactl teams suggest --limit 30
//	probactl resolve --stadium "San Siro"
//	probactl stadiums live "Wembley"
//	probactl stadiums cached "Wemb"
//	probactl weather --team Liverpool --kickoff 2026-10-18T19:00:00Z --tz-mode both
//	probactl predict --home Milan --away Inter --stadium "San Siro" --kickoff 2026-10-18T18:45:00Z
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	sonic "github.com/bytedance/sonic"
	"github.com/joho/godotenv"
	"github.com/maxbat99/probax/internal/app"
	"github.com/maxbat99/probax/internal/config"
	"github.com/maxbat99/probax/internal/platform/logging"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load(".env")

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:          "probactl",
		Short:        "ProbaX match context CLI",
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log at debug level to stderr")

	root.AddCommand(teamsCmd(&verbose))
	root.AddCommand(resolveCmd(&verbose))
	root.AddCommand(stadiumsCmd(&verbose))
	root.AddCommand(weatherCmd(&verbose))
	root.AddCommand(predictCmd(&verbose))
	return root
}

// runWithApp loads config, wires the services and closes them once fn
// returns. Logs go to stderr so stdout stays machine readable.
func runWithApp(cmd *cobra.Command, verbose bool, fn func(ctx context.Context, a *app.App) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level := logging.LevelWarn
	if verbose {
		level = logging.LevelDebug
	}
	logger := logging.New(logging.Options{Level: level, Output: cmd.ErrOrStderr()})
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := a.Close(); closeErr != nil {
			logger.Warn("close app resources", "error", closeErr)
		}
	}()

	return fn(ctx, a)
}

func printJSON(w io.Writer, v any) error {
	enc := sonic.ConfigStd.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
