package cli

import (
	"fmt"
	"runtime"

	"github.com/bityantriki/autoconc/internal/version"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var versionPlain bool

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Display version information (v)",
	Long:    "Display version, commit, build date, and Go version information for autoconc",
	Example: `  # Show version info
  autoconc version

  # Plain output (for scripts)
  autoconc version --plain`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		if versionPlain {
			fmt.Fprintf(out, "autoconc %s\n", version.Version)
			fmt.Fprintf(out, "commit: %s\n", version.Commit)
			fmt.Fprintf(out, "built: %s\n", version.BuildDate)
			fmt.Fprintf(out, "go: %s\n", runtime.Version())
			fmt.Fprintf(out, "platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
			return
		}

		cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
		dim := color.New(color.Faint).SprintFunc()
		fmt.Fprintf(out, "%s %s\n", cyan("autoconc"), version.Version)
		fmt.Fprintf(out, "  %s %s\n", dim("commit:  "), version.Commit)
		fmt.Fprintf(out, "  %s %s\n", dim("built:   "), version.BuildDate)
		fmt.Fprintf(out, "  %s %s %s/%s\n", dim("go:      "), runtime.Version(), runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	versionCmd.GroupID = GroupConfiguration
	versionCmd.Flags().BoolVar(&versionPlain, "plain", false, "Plain output without formatting")
	rootCmd.AddCommand(versionCmd)
}
