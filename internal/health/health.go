// Package health checks that the configured test runner and its parallel
// engine plugins are installed, returning structured reports used by the
// 'autoconc doctor' command.
package health

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Check names.
const (
	CheckRunner  = "Test runner"
	CheckVersion = "Runner version"
	CheckThreads = "Thread engine (pytest-parallel)"
	CheckProcs   = "Process engine (pytest-xdist)"
)

// Option names the engine plugins register in the runner's --help output.
const (
	threadEngineOption  = "--workers"
	processEngineOption = "--numprocesses"
)

// MinimumRunnerVersion is the oldest pytest the engine plugins support.
const MinimumRunnerVersion = ">= 7.0.0"

// Prober is the part of the runner the checks need.
type Prober interface {
	Validate() error
	Output(ctx context.Context, args []string) ([]byte, int, error)
}

// CheckResult represents the result of a single health check
type CheckResult struct {
	Name    string
	Passed  bool
	Message string
	// Optional checks do not fail the report. Each engine is only needed
	// when its strategy is selected.
	Optional bool
}

// Report contains all health check results
type Report struct {
	Checks []CheckResult
	Passed bool
}

func (r *Report) add(c CheckResult) {
	r.Checks = append(r.Checks, c)
	if !c.Passed && !c.Optional {
		r.Passed = false
	}
}

// Run runs all health checks against the runner and returns a report.
// When the runner cannot be found the remaining checks are skipped.
func Run(ctx context.Context, p Prober) *Report {
	report := &Report{Passed: true}

	runnerCheck := checkRunner(p)
	report.add(runnerCheck)
	if !runnerCheck.Passed {
		return report
	}

	report.add(checkVersion(ctx, p))

	help, code, err := p.Output(ctx, []string{"--help"})
	if err != nil || code != 0 {
		msg := fmt.Sprintf("--help exited with code %d", code)
		if err != nil {
			msg = err.Error()
		}
		report.add(CheckResult{Name: CheckThreads, Message: msg, Optional: true})
		report.add(CheckResult{Name: CheckProcs, Message: msg, Optional: true})
		return report
	}
	report.add(checkPlugin(help, CheckThreads, threadEngineOption, "pytest-parallel"))
	report.add(checkPlugin(help, CheckProcs, processEngineOption, "pytest-xdist"))
	return report
}

func checkRunner(p Prober) CheckResult {
	if err := p.Validate(); err != nil {
		return CheckResult{Name: CheckRunner, Message: err.Error()}
	}
	return CheckResult{Name: CheckRunner, Passed: true, Message: "found in PATH"}
}

func checkVersion(ctx context.Context, p Prober) CheckResult {
	out, code, err := p.Output(ctx, []string{"--version"})
	switch {
	case err != nil:
		return CheckResult{Name: CheckVersion, Message: err.Error()}
	case code != 0:
		return CheckResult{Name: CheckVersion, Message: fmt.Sprintf("--version exited with code %d", code)}
	}

	line := firstLine(out)
	v, ok := parseVersion(line)
	if !ok {
		// Not pytest, or an unfamiliar banner. Nothing to compare against.
		return CheckResult{Name: CheckVersion, Passed: true, Message: line}
	}
	constraint, err := semver.NewConstraint(MinimumRunnerVersion)
	if err != nil {
		return CheckResult{Name: CheckVersion, Message: err.Error()}
	}
	if !constraint.Check(v) {
		return CheckResult{
			Name:    CheckVersion,
			Message: fmt.Sprintf("%s is too old (need %s)", line, MinimumRunnerVersion),
		}
	}
	return CheckResult{Name: CheckVersion, Passed: true, Message: line}
}

// parseVersion extracts the version from a "pytest X.Y.Z" banner.
func parseVersion(line string) (*semver.Version, bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 || fields[0] != "pytest" {
		return nil, false
	}
	v, err := semver.NewVersion(fields[1])
	if err != nil {
		return nil, false
	}
	return v, true
}

func checkPlugin(help []byte, name, option, plugin string) CheckResult {
	if bytes.Contains(help, []byte(option)) {
		return CheckResult{Name: name, Passed: true, Message: "installed", Optional: true}
	}
	return CheckResult{
		Name:     name,
		Message:  fmt.Sprintf("not installed (pip install %s)", plugin),
		Optional: true,
	}
}

func firstLine(out []byte) string {
	line, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	return strings.TrimSpace(line)
}

// FormatReport formats the health report for console output
func FormatReport(report *Report) string {
	var sb strings.Builder
	for _, check := range report.Checks {
		mark := "✓"
		switch {
		case check.Passed:
		case check.Optional:
			mark = "○"
		default:
			mark = "✗"
		}
		fmt.Fprintf(&sb, "%s %s: %s\n", mark, check.Name, check.Message)
	}
	return sb.String()
}
