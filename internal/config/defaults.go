package config

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options
func GetDefaultConfigTemplate() string {
	return `# autoconc configuration
# Values here apply when the command line does not set them.

runner_command: python -m pytest      # Host test runner (split shell-style)
concurrency: ""                       # Default --concurrency: "" | auto | N
task_grouping: ""                     # Default --task-grouping: "" | file | package
strategy: auto                        # auto | threading | multiprocessing
quiet: false                          # Suppress [AUTO-CONCURRENCY] info lines
no_color: false                       # Disable colored output
`
}

// GetDefaults returns the default configuration values as a map
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"runner_command": "python -m pytest",
		"concurrency":    "",
		"task_grouping":  "",
		"strategy":       "auto",
		"quiet":          false,
		"no_color":       false,
	}
}
