package config

import (
	"slices"

	"github.com/bityantriki/autoconc/internal/concurrency"
)

// ApplyDefaults returns args with the configured defaults added for every
// concurrency flag the command line does not already carry. Command-line
// flags always win. Grouping and strategy defaults only apply when a
// concurrency is in effect. args itself is never modified.
func (c *Configuration) ApplyDefaults(args []string) []string {
	out := slices.Clone(args)
	flags := concurrency.ScanFlags(args)

	if !flags.HasConcurrency {
		if c.Concurrency == "" {
			return out
		}
		out = append(out, concurrency.FlagConcurrency+"="+c.Concurrency)
	}
	if c.TaskGrouping != "" && flags.Grouping == concurrency.GroupingNone {
		out = append(out, concurrency.FlagTaskGrouping+"="+c.TaskGrouping)
	}
	if !flags.ForceThreading && !flags.ForceProcesses {
		switch concurrency.Strategy(c.Strategy) {
		case concurrency.Threading:
			out = append(out, concurrency.FlagMultithreading)
		case concurrency.Multiprocessing:
			out = append(out, concurrency.FlagMultiprocessing)
		}
	}
	return out
}
