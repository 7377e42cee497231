package runner

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"unicode"
)

// pytest exit code for "no tests were collected".
const exitNoTestsCollected = 5

// CollectFlags are appended to the arguments when collecting test IDs.
var CollectFlags = []string{"--collect-only", "-q"}

// ErrNoTestIDs is returned when collection succeeds but its output lists no
// test IDs, e.g. when a plugin changes the report format.
var ErrNoTestIDs = errors.New("collection output listed no test IDs")

// Collect runs the runner in collect-only mode and returns the discovered
// test IDs in discovery order.
func (r *Runner) Collect(ctx context.Context, args []string) ([]string, error) {
	cmd := r.command(ctx, CollectArgs(args))
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = r.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		switch {
		case errors.As(err, &exitErr) && exitStatus(exitErr) == exitNoTestsCollected:
			return nil, nil
		case errors.As(err, &exitErr):
			return nil, fmt.Errorf("collecting tests: exit code %d:\n%s", exitStatus(exitErr), collectTail(out.Bytes(), 20))
		case errors.Is(err, exec.ErrNotFound):
			return nil, fmt.Errorf("%w: %q", ErrRunnerNotFound, r.Command[0])
		default:
			return nil, fmt.Errorf("collecting tests: %w", err)
		}
	}
	ids, err := ParseCollected(&out)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, ErrNoTestIDs
	}
	return ids, nil
}

// CollectArgs returns the arguments for a collect-only run. The user's
// verbosity flags are dropped so that CollectFlags always yield verbosity -1,
// the only level at which pytest prints one test ID per line.
func CollectArgs(args []string) []string {
	out := make([]string, 0, len(args)+len(CollectFlags))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case valueOptions[arg] && i+1 < len(args):
			out = append(out, arg, args[i+1])
			i++
			continue
		case arg == "--verbosity":
			i++
			continue
		case isVerbosityFlag(arg):
			continue
		}
		out = append(out, arg)
	}
	return append(out, CollectFlags...)
}

// isVerbosityFlag matches -v, -vv, -q, -qq, -vq, --verbose, --quiet and
// --verbosity=N.
func isVerbosityFlag(arg string) bool {
	switch {
	case arg == "--verbose", arg == "--quiet":
		return true
	case strings.HasPrefix(arg, "--verbosity="):
		return true
	case len(arg) > 1 && arg[0] == '-' && arg[1] != '-':
		return strings.Trim(arg[1:], "vq") == ""
	}
	return false
}

// ParseCollected reads `pytest --collect-only -q` output and returns the test
// IDs it lists. IDs are the unindented lines containing "::" that precede the
// summary.
func ParseCollected(r io.Reader) ([]string, error) {
	var ids []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimRightFunc(sc.Text(), unicode.IsSpace)
		if line == "" {
			if len(ids) > 0 {
				break
			}
			continue
		}
		if unicode.IsSpace(rune(line[0])) || !strings.Contains(line, "::") {
			continue
		}
		ids = append(ids, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading collected tests: %w", err)
	}
	return ids, nil
}
