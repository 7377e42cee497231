package errors

import (
	"fmt"
	"strings"
)

// Common error messages for the autoconc CLI.
// These templates ensure consistent, actionable error messages.

// InvalidConcurrency creates an error for a --concurrency value that is
// neither "auto" nor a positive integer.
func InvalidConcurrency(cause error) *CLIError {
	e := NewArgumentErrorWithUsage(
		cause.Error(),
		"autoconc run -- --concurrency <N|auto> [pytest args]",
		"Pass a positive worker count, e.g. --concurrency 4",
		"Or pass --concurrency auto to use one worker per CPU",
	)
	e.Cause = cause
	return e
}

// RunnerNotFound creates an error when the configured test runner is missing.
func RunnerNotFound(command []string, cause error) *CLIError {
	e := NewPrerequisiteError(
		fmt.Sprintf("test runner %q not found", strings.Join(command, " ")),
		"Install pytest in the active environment (pip install pytest)",
		"Or set runner_command in .autoconc/config.yml (e.g. \"uv run pytest\")",
		"Or set AUTOCONC_RUNNER_COMMAND",
	)
	e.Cause = cause
	return e
}

// ConfigLoadFailed creates an error for configuration that could not be loaded
// or failed validation.
func ConfigLoadFailed(cause error) *CLIError {
	return WrapWithMessage(cause, Configuration, "loading configuration",
		"Check .autoconc/config.yml and ~/.config/autoconc/config.yml",
		"Run 'autoconc config show' to see the effective configuration",
	)
}

// InvalidRunnerCommand creates an error for a runner_command that cannot be
// split into a command line.
func InvalidRunnerCommand(cause error) *CLIError {
	return WrapWithMessage(cause, Configuration, "invalid runner_command",
		"Set runner_command to a command line such as \"python -m pytest\"",
		"Quote arguments that contain spaces",
	)
}

// CollectionFailed creates an error when the runner could not collect tests.
func CollectionFailed(cause error) *CLIError {
	return WrapWithMessage(cause, Runtime, "test collection failed",
		"Run the same command with --collect-only to see the collection errors",
		"Or drop --task-grouping to skip collection",
	)
}
