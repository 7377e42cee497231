package cli

import (
	"os"

	"github.com/bityantriki/autoconc/internal/config"
	"github.com/bityantriki/autoconc/internal/errors"
	"github.com/bityantriki/autoconc/internal/output"
	"github.com/spf13/cobra"
)

// env bundles what every command needs: configuration and a reporter.
type env struct {
	cfg      *config.Configuration
	reporter *output.Reporter
	caps     output.TerminalCapabilities
}

// loadEnv loads configuration and builds the diagnostic reporter, honoring
// the persistent --config, --quiet and --no-color flags.
func loadEnv(cmd *cobra.Command) (*env, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, errors.ConfigLoadFailed(err)
	}

	if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
		cfg.Quiet = true
	}
	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
		cfg.NoColor = true
	}

	caps := output.DetectTerminalCapabilities(os.Stderr)
	useColor := caps.SupportsColor && !cfg.NoColor
	return &env{
		cfg:      cfg,
		reporter: output.NewReporter(cmd.ErrOrStderr(), useColor, cfg.Quiet),
		caps:     caps,
	}, nil
}
