package cli

import (
	"encoding/json"
	"fmt"

	"github.com/bityantriki/autoconc/internal/concurrency"
	"github.com/bityantriki/autoconc/internal/errors"
	"github.com/bityantriki/autoconc/internal/output"
	"github.com/bityantriki/autoconc/internal/session"
	"github.com/spf13/cobra"
)

var (
	rewriteJSON       bool
	rewriteNoDefaults bool
)

// rewriteReport is the --json output of the rewrite command.
type rewriteReport struct {
	Args     []string              `json:"args"`
	Decision *concurrency.Decision `json:"decision"`
}

var rewriteCmd = &cobra.Command{
	Use:   "rewrite [flags] -- [pytest args]",
	Short: "Print the rewritten pytest arguments without running pytest",
	Long: `Apply the concurrency flag translation to the given arguments and print the
result. Nothing is executed and no tests are collected.`,
	Example: `  autoconc rewrite -- --concurrency auto tests/
  # -n 4 tests/ on a 4-CPU machine

  autoconc rewrite --json -- --concurrency 2 --task-grouping=package tests/`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		if !rewriteNoDefaults {
			args = e.cfg.ApplyDefaults(args)
		}

		sess, err := session.Plan(args, session.Options{
			CPUCount: cpuCounter,
			Notifier: e.reporter,
		})
		if err != nil {
			return errors.InvalidConcurrency(err)
		}

		out := cmd.OutOrStdout()
		if rewriteJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(rewriteReport{Args: sess.Args, Decision: sess.Decision})
		}
		_, err = fmt.Fprintln(out, output.JoinArgs(sess.Args))
		return err
	},
}

func init() {
	rewriteCmd.GroupID = GroupTesting
	rewriteCmd.Flags().BoolVar(&rewriteJSON, "json", false, "Print arguments and decision as JSON")
	rewriteCmd.Flags().BoolVar(&rewriteNoDefaults, "no-defaults", false, "Ignore concurrency defaults from configuration")
	rewriteCmd.Flags().SetInterspersed(false)
	rootCmd.AddCommand(rewriteCmd)
}
