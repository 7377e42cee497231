// Package testutil provides test utilities and helpers for autoconc tests.
package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"slices"
	"testing"
	"time"
)

// HelperProcessConfig configures the behavior of the fake test runner.
type HelperProcessConfig struct {
	// ExitCode is the exit code to return (default 0).
	ExitCode int `json:"exit_code"`
	// Stdout is the content to write to stdout.
	Stdout string `json:"stdout"`
	// Stderr is the content to write to stderr.
	Stderr string `json:"stderr"`

	// CollectStdout replaces Stdout when the arguments contain --collect-only.
	CollectStdout string `json:"collect_stdout"`
	// CollectExitCode replaces ExitCode when the arguments contain --collect-only.
	CollectExitCode int `json:"collect_exit_code"`

	// Kill makes the fake runner kill itself instead of exiting.
	Kill bool `json:"kill"`

	// CallLog is a YAML file every invocation is appended to.
	CallLog string `json:"call_log"`
}

// HelperProcessEnvVars contains the environment variable names used by the helper process.
const (
	// EnvWantHelperProcess signals that the test binary should run as a helper process.
	EnvWantHelperProcess = "GO_WANT_HELPER_PROCESS"
	// EnvHelperProcessConfig contains JSON-encoded HelperProcessConfig.
	EnvHelperProcessConfig = "GO_HELPER_PROCESS_CONFIG"
	// EnvHelperProcessArgs contains the original command-line arguments (JSON array).
	EnvHelperProcessArgs = "GO_HELPER_PROCESS_ARGS"
)

// RunHelperProcess is called from a test function named TestHelperProcess.
// When invoked with GO_WANT_HELPER_PROCESS=1 it behaves as the fake runner
// and exits without returning; otherwise it returns immediately.
//
// Usage in test file:
//
//	func TestHelperProcess(t *testing.T) {
//	    testutil.RunHelperProcess()
//	}
func RunHelperProcess() {
	if os.Getenv(EnvWantHelperProcess) != "1" {
		return
	}

	var config HelperProcessConfig
	if raw := os.Getenv(EnvHelperProcessConfig); raw != "" {
		// Ignore parse errors; use defaults on failure
		_ = json.Unmarshal([]byte(raw), &config)
	}
	var args []string
	_ = json.Unmarshal([]byte(os.Getenv(EnvHelperProcessArgs)), &args)

	stdout, code := config.Stdout, config.ExitCode
	if slices.Contains(args, "--collect-only") {
		stdout, code = config.CollectStdout, config.CollectExitCode
	}

	if config.CallLog != "" {
		if err := AppendCallLog(config.CallLog, CallLogEntry{Args: args, ExitCode: code}); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(99)
		}
	}

	fmt.Fprint(os.Stdout, stdout)
	fmt.Fprint(os.Stderr, config.Stderr)
	if config.Kill {
		if p, err := os.FindProcess(os.Getpid()); err == nil {
			_ = p.Kill()
		}
		time.Sleep(time.Minute)
	}
	os.Exit(code)
}

// HelperCommandFactory returns a command factory that runs the test binary as
// the fake runner instead of the real command. testName is the test function
// that calls RunHelperProcess (usually "TestHelperProcess"). The recorded
// arguments exclude the command name.
func HelperCommandFactory(t *testing.T, testName string, config HelperProcessConfig) func(ctx context.Context, name string, args ...string) *exec.Cmd {
	t.Helper()

	testBinary, err := os.Executable()
	if err != nil {
		t.Fatalf("failed to get test binary path: %v", err)
	}
	configJSON, err := json.Marshal(config)
	if err != nil {
		t.Fatalf("marshaling helper config: %v", err)
	}

	return func(ctx context.Context, name string, args ...string) *exec.Cmd {
		cmd := exec.CommandContext(ctx, testBinary, "-test.run=^"+testName+"$")
		argsJSON, _ := json.Marshal(args)
		cmd.Env = append(os.Environ(),
			EnvWantHelperProcess+"=1",
			EnvHelperProcessConfig+"="+string(configJSON),
			EnvHelperProcessArgs+"="+string(argsJSON),
		)
		return cmd
	}
}
