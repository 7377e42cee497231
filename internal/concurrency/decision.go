// Package concurrency translates the user-facing concurrency flags into the
// flags understood by the thread-based and process-based test engines.
//
// The four flags (--concurrency, --task-grouping, --multithreading and
// --multiprocessing) are recognised anywhere in the argument list, stripped,
// and replaced by --workers N (threading) or -n N [--dist ...]
// (multiprocessing). The resolved Decision is returned to the caller and
// passed explicitly to whatever consumes it.
package concurrency

import (
	"errors"
	"fmt"
	"runtime"
	"strconv"
)

// ErrInvalidConcurrency is returned when --concurrency is neither "auto" nor a
// positive integer.
var ErrInvalidConcurrency = errors.New("invalid --concurrency value")

// AutoWorkers is the --concurrency token that resolves to the CPU count.
const AutoWorkers = "auto"

// Strategy selects the parallel execution engine.
type Strategy string

const (
	// Threading runs tests on threads (pytest-parallel, --workers N).
	Threading Strategy = "threading"
	// Multiprocessing runs tests in worker processes (pytest-xdist, -n N).
	Multiprocessing Strategy = "multiprocessing"
)

// Grouping clusters related tests so one worker runs the whole cluster.
type Grouping string

const (
	// GroupingNone disables grouping.
	GroupingNone Grouping = ""
	// GroupingFile keeps tests from the same file together.
	GroupingFile Grouping = "file"
	// GroupingPackage keeps tests from the same directory together.
	GroupingPackage Grouping = "package"
)

// DistMode returns the pytest-xdist --dist value for the grouping.
// Anything that is not package grouping maps to loadfile.
func (g Grouping) DistMode() string {
	if g == GroupingPackage {
		return "loadgroup"
	}
	return "loadfile"
}

// ParseGrouping normalises a --task-grouping value. An empty value (bare flag)
// means file grouping. Unsupported values also map to file grouping and are
// reported through ok=false.
func ParseGrouping(value string) (g Grouping, ok bool) {
	switch Grouping(value) {
	case GroupingFile, GroupingPackage:
		return Grouping(value), true
	case GroupingNone:
		return GroupingFile, true
	default:
		return GroupingFile, false
	}
}

// CPUCounter reports the number of usable CPUs.
type CPUCounter func() int

// DefaultCPUCounter reports runtime.NumCPU.
func DefaultCPUCounter() int {
	return runtime.NumCPU()
}

// Decision is the resolved worker count, strategy and grouping for one
// invocation.
type Decision struct {
	Workers  int      `json:"workers" yaml:"workers"`
	Strategy Strategy `json:"strategy" yaml:"strategy"`
	Grouping Grouping `json:"task_grouping,omitempty" yaml:"task_grouping,omitempty"`
}

// EngineFlags returns the flags that configure the selected engine.
func (d Decision) EngineFlags() []string {
	workers := strconv.Itoa(d.Workers)
	if d.Strategy == Threading {
		return []string{"--workers", workers}
	}
	flags := []string{"-n", workers}
	if d.Grouping != GroupingNone {
		flags = append(flags, "--dist", d.Grouping.DistMode())
	}
	return flags
}

// ParseWorkers resolves a --concurrency value to a worker count.
func ParseWorkers(value string, cpus int) (int, error) {
	if value == AutoWorkers {
		return cpus, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %q (expected %q or a positive integer)", ErrInvalidConcurrency, value, AutoWorkers)
	}
	if n < 1 {
		return 0, fmt.Errorf("%w: %d (worker count must be at least 1)", ErrInvalidConcurrency, n)
	}
	return n, nil
}

// SelectStrategy applies the strategy policy: --multithreading wins, then
// --multiprocessing, then threading on machines with at most two CPUs.
func SelectStrategy(flags Flags, cpus int) Strategy {
	switch {
	case flags.ForceThreading:
		return Threading
	case flags.ForceProcesses:
		return Multiprocessing
	case cpus <= 2:
		return Threading
	default:
		return Multiprocessing
	}
}
