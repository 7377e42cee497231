package concurrency

import (
	"slices"

	"github.com/bityantriki/autoconc/internal/output"
)

// Result is the outcome of rewriting an argument list.
type Result struct {
	// Args is the rewritten argument list.
	Args []string
	// Decision is nil when --concurrency was absent.
	Decision *Decision
}

// Rewriter rewrites argument lists for one of the two engines.
type Rewriter struct {
	// CPUCount is the CPU-count oracle. Defaults to DefaultCPUCounter.
	CPUCount CPUCounter
	// Notifier receives diagnostic lines. Nil discards them.
	Notifier output.Notifier
}

// Rewrite strips the custom flags from args and appends the engine flags for
// the selected strategy. Without --concurrency the arguments are returned
// unchanged and no Decision is produced. args itself is never modified.
func (r *Rewriter) Rewrite(args []string) (*Result, error) {
	flags := ScanFlags(args)
	if !flags.HasConcurrency {
		return &Result{Args: slices.Clone(args)}, nil
	}

	cpus := r.cpuCount()
	workers, err := ParseWorkers(flags.Concurrency, cpus)
	if err != nil {
		return nil, err
	}

	notifier := output.OrDiscard(r.Notifier)
	if flags.Grouping != GroupingNone && !flags.GroupingSupported {
		notifier.Warnf("Unsupported task grouping %q, using %q", flags.RawGrouping, GroupingFile)
	}

	decision := &Decision{
		Workers:  workers,
		Strategy: SelectStrategy(flags, cpus),
		Grouping: flags.Grouping,
	}

	rewritten := append(StripFlags(args), decision.EngineFlags()...)

	notifier.Infof("Using %d workers with %s strategy", decision.Workers, decision.Strategy)
	if decision.Grouping != GroupingNone {
		if decision.Strategy == Threading {
			notifier.Infof("Task grouping (%s) enabled for threading strategy", decision.Grouping)
		} else {
			notifier.Infof("Task grouping enabled (--dist=%s)", decision.Grouping.DistMode())
		}
	}

	return &Result{Args: rewritten, Decision: decision}, nil
}

func (r *Rewriter) cpuCount() int {
	count := r.CPUCount
	if count == nil {
		count = DefaultCPUCounter
	}
	if n := count(); n > 0 {
		return n
	}
	return 1
}
