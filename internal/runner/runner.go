// Package runner drives the host test runner (pytest by default) as a child
// process: it collects test IDs and executes the rewritten command line.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/google/shlex"
)

// DefaultCommand is the host runner invoked when none is configured.
const DefaultCommand = "python -m pytest"

// ErrRunnerNotFound is returned when the runner executable is not on PATH.
var ErrRunnerNotFound = errors.New("test runner not found")

// CommandFactory builds the exec.Cmd for a runner invocation. Tests replace it
// to avoid spawning a real runner.
type CommandFactory func(ctx context.Context, name string, args ...string) *exec.Cmd

// interruptGrace is how long the runner may take to exit after an interrupt
// before it is killed.
const interruptGrace = 10 * time.Second

// DefaultCommandFactory starts the runner with exec.CommandContext. On
// cancellation the runner gets an interrupt first so it can print its summary.
func DefaultCommandFactory(ctx context.Context, name string, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Cancel = func() error {
		return cmd.Process.Signal(os.Interrupt)
	}
	cmd.WaitDelay = interruptGrace
	return cmd
}

// Runner executes the host test runner.
type Runner struct {
	// Command is the argv prefix, e.g. ["python", "-m", "pytest"].
	Command []string
	// Exec builds commands. Defaults to DefaultCommandFactory.
	Exec CommandFactory
	// Dir is the working directory. Empty means the current directory.
	Dir string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// New returns a Runner for a shell-style command string such as
// "python -m pytest" or "uv run pytest -p no:cacheprovider".
func New(command string) (*Runner, error) {
	parts, err := shlex.Split(command)
	if err != nil {
		return nil, fmt.Errorf("parsing runner command %q: %w", command, err)
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("runner command is empty")
	}
	return &Runner{
		Command: parts,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}, nil
}

// Validate checks that the runner executable can be found.
func (r *Runner) Validate() error {
	if len(r.Command) == 0 {
		return fmt.Errorf("runner command is empty")
	}
	if _, err := exec.LookPath(r.Command[0]); err != nil {
		return fmt.Errorf("%w: %q", ErrRunnerNotFound, r.Command[0])
	}
	return nil
}

// Argv returns the full command line for args.
func (r *Runner) Argv(args []string) []string {
	return append(slices.Clone(r.Command), args...)
}

// Run executes the runner with args, streaming its output, and returns the
// runner's exit code. A non-zero exit code is not an error.
func (r *Runner) Run(ctx context.Context, args []string) (int, error) {
	cmd := r.command(ctx, args)
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitStatus(exitErr), nil
	}
	if errors.Is(err, exec.ErrNotFound) {
		return 0, fmt.Errorf("%w: %q", ErrRunnerNotFound, r.Command[0])
	}
	return 0, fmt.Errorf("running %s: %w", r.Command[0], err)
}

// Output runs the runner with args and returns its combined stdout and
// stderr along with the exit code. It is used for short probes such as
// --version and --help.
func (r *Runner) Output(ctx context.Context, args []string) ([]byte, int, error) {
	cmd := r.command(ctx, args)
	out, err := cmd.CombinedOutput()
	if err == nil {
		return out, 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return out, exitStatus(exitErr), nil
	}
	if errors.Is(err, exec.ErrNotFound) {
		return nil, 0, fmt.Errorf("%w: %q", ErrRunnerNotFound, r.Command[0])
	}
	return out, 0, fmt.Errorf("running %s: %w", r.Command[0], err)
}

func (r *Runner) command(ctx context.Context, args []string) *exec.Cmd {
	factory := r.Exec
	if factory == nil {
		factory = DefaultCommandFactory
	}
	argv := r.Argv(args)
	cmd := factory(ctx, argv[0], argv[1:]...)
	if r.Dir != "" {
		cmd.Dir = r.Dir
	}
	if cmd.Env == nil {
		cmd.Env = os.Environ()
	}
	return cmd
}

// exitStatus returns the exit code of a finished runner. A runner killed by
// a signal reports 128+signal, as a shell would.
func exitStatus(err *exec.ExitError) int {
	if ws, ok := err.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return 128 + int(ws.Signal())
	}
	if code := err.ExitCode(); code >= 0 {
		return code
	}
	return 1
}

// collectTail returns the last n lines of out for error messages.
func collectTail(out []byte, n int) string {
	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
