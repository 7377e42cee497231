package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bityantriki/autoconc/internal/concurrency"
	"github.com/bityantriki/autoconc/internal/errors"
	"github.com/bityantriki/autoconc/internal/grouping"
	"github.com/spf13/cobra"
)

var groupMode string

var groupCmd = &cobra.Command{
	Use:   "group [file]",
	Short: "Reorder test IDs so related tests are contiguous",
	Long: `Read test IDs (one "path::name" per line) from a file or stdin and print
them grouped by file or by directory. The order within each group and the order
of the groups follow their first appearance in the input.`,
	Example: `  pytest --collect-only -q | autoconc group
  autoconc group --mode package ids.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(cmd)
		if err != nil {
			return err
		}

		mode, ok := concurrency.ParseGrouping(groupMode)
		if !ok {
			return errors.NewArgumentErrorWithUsage(
				fmt.Sprintf("unsupported grouping mode %q", groupMode),
				"autoconc group --mode <file|package> [file]",
				"Use --mode file or --mode package",
			)
		}

		in := cmd.InOrStdin()
		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				return errors.WrapWithMessage(err, errors.Argument, "opening test ID list")
			}
			defer f.Close()
			in = f
		}

		ids, err := readIDs(in)
		if err != nil {
			return errors.WrapWithMessage(err, errors.Runtime, "reading test IDs")
		}

		res := grouping.Group(ids, mode)
		e.reporter.Infof("Reordered %d tests into %d %s groups", len(res.Items), res.Groups, res.Mode)

		w := bufio.NewWriter(cmd.OutOrStdout())
		for _, id := range res.Items {
			fmt.Fprintln(w, id)
		}
		return w.Flush()
	},
}

func init() {
	groupCmd.GroupID = GroupTesting
	groupCmd.Flags().StringVarP(&groupMode, "mode", "m", string(concurrency.GroupingFile), "Grouping mode: file or package")
	rootCmd.AddCommand(groupCmd)
}

// readIDs reads non-empty lines, skipping the summary pytest appends to
// --collect-only output.
func readIDs(r io.Reader) ([]string, error) {
	var ids []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || !strings.Contains(line, grouping.IDSeparator) {
			continue
		}
		ids = append(ids, line)
	}
	return ids, sc.Err()
}
