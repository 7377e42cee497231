package cli

import (
	"os"
	"testing"

	"github.com/bityantriki/autoconc/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestConfigShow(t *testing.T) {
	isolate(t, 2)
	t.Setenv("AUTOCONC_TASK_GROUPING", "package")

	stdout, _, err := executeCommand(t, "", "config", "show")
	require.NoError(t, err)

	var cfg config.Configuration
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &cfg))
	assert.Equal(t, "python -m pytest", cfg.RunnerCommand)
	assert.Equal(t, "package", cfg.TaskGrouping)
}

func TestConfigShow_InvalidConfig(t *testing.T) {
	isolate(t, 2)
	t.Setenv("AUTOCONC_STRATEGY", "fibers")

	_, _, err := executeCommand(t, "", "config", "show")
	require.Error(t, err)
	assert.Equal(t, ExitConfigError, ExitCode(err))
}

func TestConfigInit(t *testing.T) {
	isolate(t, 2)

	stdout, _, err := executeCommand(t, "", "config", "init")
	require.NoError(t, err)
	assert.Contains(t, stdout, config.ProjectConfigPath())

	data, err := os.ReadFile(config.ProjectConfigPath())
	require.NoError(t, err)
	assert.Equal(t, config.GetDefaultConfigTemplate(), string(data))

	_, _, err = executeCommand(t, "", "config", "init")
	require.Error(t, err, "existing config must not be overwritten")

	_, _, err = executeCommand(t, "", "config", "init", "--force")
	require.NoError(t, err)
}

func TestVersionCmd_Plain(t *testing.T) {
	isolate(t, 2)

	stdout, _, err := executeCommand(t, "", "version", "--plain")
	require.NoError(t, err)
	assert.Contains(t, stdout, "autoconc dev")
	assert.Contains(t, stdout, "platform:")
}
