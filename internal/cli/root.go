// Package cli implements the autoconc command tree.
package cli

import (
	"context"
	stderrors "errors"
	"os"
	"os/signal"

	"github.com/bityantriki/autoconc/internal/config"
	"github.com/bityantriki/autoconc/internal/errors"
	"github.com/bityantriki/autoconc/internal/output"
	"github.com/spf13/cobra"
)

// Command group IDs.
const (
	GroupTesting       = "testing"
	GroupConfiguration = "configuration"
)

var rootCmd = &cobra.Command{
	Use:   "autoconc",
	Short: "Pick a parallel strategy for pytest and run it",
	Long: `autoconc translates a small set of concurrency flags into pytest-parallel
(--workers N) or pytest-xdist (-n N, --dist) arguments and runs pytest.

Concurrency flags (pass them after --):
  --concurrency <N|auto>       Number of workers ("auto" = CPU count)
  --task-grouping [file|package]
                               Keep tests from one file or directory on one worker
  --multithreading             Force the thread engine (pytest-parallel)
  --multiprocessing            Force the process engine (pytest-xdist)

Without a force flag, machines with at most two CPUs use threads and larger
machines use processes.`,
	Example: `  # Run with one worker per CPU
  autoconc run -- --concurrency auto tests/

  # Group tests by file
  autoconc run -- --concurrency 4 --task-grouping=file tests/ -v

  # Show the rewritten pytest command without running it
  autoconc rewrite -- --concurrency 4 --multithreading tests/`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupTesting, Title: "Testing:"},
		&cobra.Group{ID: GroupConfiguration, Title: "Configuration:"},
	)
	rootCmd.PersistentFlags().StringP("config", "c", "", "Project config file (default .autoconc/config.yml)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress [AUTO-CONCURRENCY] info lines")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
}

// Execute runs the root command. Errors other than a failing test run are
// printed to stderr before being returned; use ExitCode to map them.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return nil
	}
	var re *runnerExit
	if stderrors.As(err, &re) {
		return err
	}

	cliErr := errors.AsCLIError(err)
	if cliErr == nil {
		cliErr = errors.Wrap(err, errors.Runtime)
	}
	errors.FprintError(os.Stderr, cliErr, errorColors(output.DetectTerminalCapabilities(os.Stderr)))
	return err
}

// errorColors reports whether errors are printed in color. It honors the
// same switches as command output: --no-color and no_color in the
// configuration. A configuration that fails to load does not disable colors.
func errorColors(caps output.TerminalCapabilities) bool {
	if !caps.SupportsColor {
		return false
	}
	if noColor, _ := rootCmd.PersistentFlags().GetBool("no-color"); noColor {
		return false
	}
	configPath, _ := rootCmd.PersistentFlags().GetString("config")
	cfg, err := config.Load(configPath)
	return err != nil || !cfg.NoColor
}
