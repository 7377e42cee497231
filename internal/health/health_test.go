package health

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProber struct {
	validateErr error
	outputs     map[string]string
	codes       map[string]int
}

func (f *fakeProber) Validate() error { return f.validateErr }

func (f *fakeProber) Output(_ context.Context, args []string) ([]byte, int, error) {
	return []byte(f.outputs[args[0]]), f.codes[args[0]], nil
}

const helpBoth = `usage: pytest [options] [file_or_dir] [file_or_dir] [...]

distributed and subprocess testing:
  -n numprocesses, --numprocesses=numprocesses
  --dist distmode

pytest-parallel:
  --workers=WORKERS     Set the max num of workers
`

func TestRun(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		prober     *fakeProber
		wantPassed bool
		wantChecks map[string]bool
	}{
		"everything installed": {
			prober: &fakeProber{outputs: map[string]string{
				"--version": "pytest 8.3.2\n",
				"--help":    helpBoth,
			}},
			wantPassed: true,
			wantChecks: map[string]bool{CheckRunner: true, CheckVersion: true, CheckThreads: true, CheckProcs: true},
		},
		"no plugins": {
			prober: &fakeProber{outputs: map[string]string{
				"--version": "pytest 8.3.2\n",
				"--help":    "usage: pytest [options]\n",
			}},
			wantPassed: true,
			wantChecks: map[string]bool{CheckRunner: true, CheckVersion: true, CheckThreads: false, CheckProcs: false},
		},
		"runner missing": {
			prober:     &fakeProber{validateErr: errors.New(`test runner not found: "python"`)},
			wantPassed: false,
			wantChecks: map[string]bool{CheckRunner: false},
		},
		"runner broken": {
			prober: &fakeProber{
				outputs: map[string]string{"--version": "ImportError\n"},
				codes:   map[string]int{"--version": 1, "--help": 1},
			},
			wantPassed: false,
			wantChecks: map[string]bool{CheckRunner: true, CheckVersion: false, CheckThreads: false, CheckProcs: false},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			report := Run(context.Background(), tt.prober)
			assert.Equal(t, tt.wantPassed, report.Passed)
			require.Len(t, report.Checks, len(tt.wantChecks))
			for _, check := range report.Checks {
				assert.Equal(t, tt.wantChecks[check.Name], check.Passed, check.Name)
			}
		})
	}
}

func TestRun_VersionMessage(t *testing.T) {
	t.Parallel()

	report := Run(context.Background(), &fakeProber{outputs: map[string]string{
		"--version": "\npytest 8.3.2\nplugins: xdist-3.6.1\n",
		"--help":    helpBoth,
	}})
	assert.Equal(t, "pytest 8.3.2", report.Checks[1].Message)
}

func TestCheckVersion(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		banner     string
		wantPassed bool
	}{
		"current pytest":  {banner: "pytest 8.3.2", wantPassed: true},
		"minimum pytest":  {banner: "pytest 7.0.0", wantPassed: true},
		"old pytest":      {banner: "pytest 6.2.5", wantPassed: false},
		"dev build":       {banner: "pytest 8.4.0.dev12", wantPassed: true},
		"not pytest":      {banner: "ward 0.68.0b0", wantPassed: true},
		"unversioned tag": {banner: "pytest", wantPassed: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := checkVersion(context.Background(), &fakeProber{outputs: map[string]string{"--version": tt.banner + "\n"}})
			assert.Equal(t, tt.wantPassed, got.Passed, got.Message)
		})
	}
}

func TestFormatReport(t *testing.T) {
	t.Parallel()

	report := &Report{Checks: []CheckResult{
		{Name: CheckRunner, Passed: true, Message: "found in PATH"},
		{Name: CheckVersion, Passed: false, Message: "--version exited with code 1"},
		{Name: CheckThreads, Passed: false, Optional: true, Message: "not installed (pip install pytest-parallel)"},
	}}

	assert.Equal(t,
		"✓ Test runner: found in PATH\n"+
			"✗ Runner version: --version exited with code 1\n"+
			"○ Thread engine (pytest-parallel): not installed (pip install pytest-parallel)\n",
		FormatReport(report))
}
