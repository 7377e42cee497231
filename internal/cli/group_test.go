package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupCmd(t *testing.T) {
	tests := map[string]struct {
		input     string
		args      []string
		want      string
		wantNotes string
	}{
		"file mode from stdin": {
			input:     "a.py::t1\nb.py::t1\na.py::t2\n",
			args:      []string{"group"},
			want:      "a.py::t1\na.py::t2\nb.py::t1\n",
			wantNotes: "Reordered 3 tests into 2 file groups",
		},
		"package mode": {
			input:     "x/a.py::t1\ny/b.py::t1\nx/c.py::t1\n",
			args:      []string{"group", "--mode", "package"},
			want:      "x/a.py::t1\nx/c.py::t1\ny/b.py::t1\n",
			wantNotes: "into 2 package groups",
		},
		"collect-only output": {
			input:     "b.py::t1\na.py::t1\nb.py::t2\n\n3 tests collected in 0.01s\n",
			args:      []string{"group"},
			want:      "b.py::t1\nb.py::t2\na.py::t1\n",
			wantNotes: "into 2 file groups",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			isolate(t, 2)

			stdout, stderr, err := executeCommand(t, tt.input, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, stdout)
			assert.Contains(t, stderr, tt.wantNotes)
		})
	}
}

func TestGroupCmd_FromFile(t *testing.T) {
	dir := isolate(t, 2)
	path := filepath.Join(dir, "ids.txt")
	require.NoError(t, os.WriteFile(path, []byte("a.py::t1\nb.py::t1\na.py::t2\n"), 0o644))

	stdout, _, err := executeCommand(t, "", "group", path)
	require.NoError(t, err)
	assert.Equal(t, "a.py::t1\na.py::t2\nb.py::t1\n", stdout)
}

func TestGroupCmd_Errors(t *testing.T) {
	isolate(t, 2)

	_, _, err := executeCommand(t, "", "group", "--mode", "module")
	require.Error(t, err)
	assert.Equal(t, ExitInvalidArguments, ExitCode(err))

	_, _, err = executeCommand(t, "", "group", "missing.txt")
	require.Error(t, err)
	assert.Equal(t, ExitInvalidArguments, ExitCode(err))
}
