package cli

import (
	stderrors "errors"

	"github.com/bityantriki/autoconc/internal/concurrency"
	"github.com/bityantriki/autoconc/internal/errors"
	"github.com/bityantriki/autoconc/internal/output"
	"github.com/bityantriki/autoconc/internal/runner"
	"github.com/bityantriki/autoconc/internal/session"
	"github.com/spf13/cobra"
)

// cpuCounter is the CPU-count oracle used by the commands.
var cpuCounter concurrency.CPUCounter = concurrency.DefaultCPUCounter

// newRunner builds the host runner for a command string.
var newRunner = runner.New

var runDryRun bool

var runCmd = &cobra.Command{
	Use:   "run [flags] -- [pytest args]",
	Short: "Run pytest with the selected parallel strategy",
	Long: `Rewrite the concurrency flags for the selected engine and run pytest.

With the thread engine and --task-grouping, tests are collected first and
passed to pytest grouped by file or directory, so each group stays together
when pytest-parallel hands tests to its threads.

autoconc exits with pytest's exit code. A pytest killed by a signal exits
with 128+signal. pytest's own codes 2 (interrupted), 3 (internal error) and
4 (usage error) share their numbers with autoconc's configuration, argument
and missing-runner errors; autoconc prints an "Error [...]" message for its
own failures, pytest does not.`,
	Example: `  autoconc run -- --concurrency auto tests/
  autoconc run -- --concurrency 2 --multithreading --task-grouping=package tests/
  autoconc run --dry-run -- --concurrency 8 tests/ -x`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(cmd)
		if err != nil {
			return err
		}

		r, err := newRunner(e.cfg.RunnerCommand)
		if err != nil {
			return errors.InvalidRunnerCommand(err)
		}
		r.Stdout = cmd.OutOrStdout()
		r.Stderr = cmd.ErrOrStderr()

		argv, err := prepareRun(cmd, e, r, args)
		if err != nil {
			return err
		}

		output.PrintExecutingCommand(cmd.ErrOrStderr(), r.Argv(argv))
		if runDryRun {
			return nil
		}

		code, err := r.Run(cmd.Context(), argv)
		if err != nil {
			return runnerError(r, err, false)
		}
		if code != 0 {
			return &runnerExit{code: code}
		}
		return nil
	},
}

func init() {
	runCmd.GroupID = GroupTesting
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "Print the pytest command (after collection) without running it")
	runCmd.Flags().SetInterspersed(false)
	rootCmd.AddCommand(runCmd)
}

// prepareRun resolves the session and, when a collection stage is active,
// collects and reorders the test IDs. It returns the runner arguments.
func prepareRun(cmd *cobra.Command, e *env, r *runner.Runner, args []string) ([]string, error) {
	args = e.cfg.ApplyDefaults(args)
	sess, err := session.Plan(args, session.Options{
		CPUCount: cpuCounter,
		Notifier: e.reporter,
	})
	if err != nil {
		return nil, errors.InvalidConcurrency(err)
	}
	if !sess.NeedsCollection() {
		return sess.Args, nil
	}

	spin := output.StartSpinner(cmd.ErrOrStderr(), e.caps, "Collecting tests...")
	ids, err := r.Collect(cmd.Context(), concurrency.StripFlags(args))
	spin.Stop()
	switch {
	case stderrors.Is(err, runner.ErrNoTestIDs):
		e.reporter.Warnf("Collection listed no test IDs, running without %s grouping", sess.Decision.Grouping)
		return sess.Args, nil
	case err != nil:
		return nil, runnerError(r, err, true)
	}

	ordered := sess.ModifyItems(ids)
	if len(ordered) == 0 {
		return sess.Args, nil
	}
	opts, _ := runner.SplitTargets(sess.Args, ids)
	return append(opts, ordered...), nil
}

// runnerError classifies errors from the runner.
func runnerError(r *runner.Runner, err error, collecting bool) error {
	switch {
	case stderrors.Is(err, runner.ErrRunnerNotFound):
		return errors.RunnerNotFound(r.Command, err)
	case collecting:
		return errors.CollectionFailed(err)
	default:
		return errors.WrapWithMessage(err, errors.Runtime, "running tests")
	}
}
