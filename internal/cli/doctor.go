package cli

import (
	"fmt"

	"github.com/bityantriki/autoconc/internal/errors"
	"github.com/bityantriki/autoconc/internal/health"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that pytest and its parallel engine plugins are installed",
	Long: `Run health checks for the configured test runner:
  - the runner command is on PATH and answers --version
  - pytest-parallel (thread engine) is installed
  - pytest-xdist (process engine) is installed

A missing engine plugin is reported but does not fail the check; each engine
is only needed when its strategy is selected.`,
	Example: `  autoconc doctor`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		r, err := newRunner(e.cfg.RunnerCommand)
		if err != nil {
			return errors.InvalidRunnerCommand(err)
		}

		report := health.Run(cmd.Context(), r)
		fmt.Fprint(cmd.OutOrStdout(), health.FormatReport(report))
		if !report.Passed {
			return errors.NewPrerequisiteError("health checks failed",
				"Install pytest in the active environment (pip install pytest)",
				"Or set runner_command in .autoconc/config.yml",
			)
		}
		return nil
	},
}

func init() {
	doctorCmd.GroupID = GroupConfiguration
	rootCmd.AddCommand(doctorCmd)
}
