package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	internalApp "github.com/felixgeelhaar/pulse/internal/app"
	"github.com/felixgeelhaar/pulse/pkg/config"
	"github.com/felixgeelhaar/pulse/pkg/observability"
)

// ErrNotInitialized is returned by commands that run before the
// application could be wired.
var ErrNotInitialized = errors.New("pulse is not initialized")

const (
	annotationWrite   = "pulse.write"
	annotationNoSetup = "pulse.no-setup"
)

// Writes marks a command that changes data. The outbox is flushed after
// every successful write.
var Writes = map[string]string{annotationWrite: "true"}

// NoSetup marks a command that runs without a database.
var NoSetup = map[string]string{annotationNoSetup: "true"}

// IsWrite reports whether cmd is annotated with Writes.
func IsWrite(cmd *cobra.Command) bool {
	return cmd.Annotations[annotationWrite] != ""
}

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pulse",
	Short: "Pulse - personal productivity tracker",
	Long: `Pulse tracks tasks, habits, goals, focus sessions, distractions
and mood, and turns them into streaks, progress and daily insights.

Without configuration Pulse stores everything in ~/.pulse/pulse.db.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Annotations[annotationNoSetup] != "" || GetApp() != nil {
			return nil
		}
		return setup(cmd)
	},
}

// setup loads configuration, builds the logger and wires the container.
func setup(cmd *cobra.Command) error {
	cfg, err := config.LoadFile(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logConfig := observability.LogConfigFor(cfg.AppEnv, cfg.LogLevel, cfg.LogFormat, Version)
	if verbose {
		logConfig.Level = observability.LogLevelDebug
	}
	logger := observability.NewLogger(logConfig)
	slog.SetDefault(logger)

	container, err := internalApp.NewContainer(cmd.Context(), cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	SetApp(NewApp(container))
	return nil
}

// instrument wraps every RunE below cmd so that it runs with a command
// context, is timed, and flushes the outbox after a successful write.
func instrument(cmd *cobra.Command) {
	for _, child := range cmd.Commands() {
		instrument(child)
	}
	if cmd.RunE == nil {
		return
	}

	run := cmd.RunE
	cmd.RunE = func(c *cobra.Command, args []string) error {
		a := GetApp()
		if a == nil {
			return run(c, args)
		}

		ctx := observability.NewCommandContext(c.Context(), a.CurrentUserID.String(), c.CommandPath())
		c.SetContext(ctx)

		err := observability.TimeOperation(ctx, a.Logger, a.Metrics, c.CommandPath(), func() error {
			return run(c, args)
		})
		if err == nil && IsWrite(c) {
			a.Flush(ctx)
		}
		return err
	}
}

// Execute adds all child commands to the root command and runs it.
func Execute(ctx context.Context) {
	instrument(rootCmd)
	err := rootCmd.ExecuteContext(ctx)
	if a := GetApp(); a != nil {
		a.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, StyleError.Render("Error: ")+err.Error())
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (yaml, toml or json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.SilenceErrors = true
}

// AddCommand adds a command to the root command.
func AddCommand(cmd *cobra.Command) {
	rootCmd.AddCommand(cmd)
}
