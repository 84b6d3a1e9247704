package cli

import (
	"fmt"

	"github.com/rif-tools/rif/internal/project"
	"github.com/rif-tools/rif/internal/ui/table"
	"github.com/spf13/cobra"
)

func newLsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ls [file]",
		Short: "List tracked files as a reference tree",
		Long: `Print a tree of tracked files and their direct references.

With a FILE argument, print only that file's own subtree. Otherwise
print every tracked file, or (-t stale) only the Stale-rooted ones.

With --interactive (and no FILE argument), render a sortable,
searchable table instead of a tree.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runLs,
	}

	cmd.Flags().IntP("depth", "d", 0, "Tree depth to print (0 = unbounded)")
	cmd.Flags().StringP("type", "t", "all", "Which files to list: all|stale")
	cmd.Flags().Bool("interactive", false, "Show an interactive table instead of a tree")
	cmd.Flags().Bool("json", false, "With --interactive, emit JSON instead of launching the TUI")
	cmd.Flags().Bool("raw", false, "With --interactive, emit tab-separated rows instead of launching the TUI")

	return cmd
}

func runLs(cmd *cobra.Command, args []string) error {
	depth, _ := cmd.Flags().GetInt("depth")
	listType, _ := cmd.Flags().GetString("type")
	interactive, _ := cmd.Flags().GetBool("interactive")

	path := ""
	if len(args) == 1 {
		path = args[0]
	}

	p, err := project.Open("")
	if err != nil {
		return err
	}

	if interactive && path == "" {
		asJSON, _ := cmd.Flags().GetBool("json")
		raw, _ := cmd.Flags().GetBool("raw")
		columns, rows := p.Relations.Rows(listType == "stale")
		return table.DisplayResults("rif ls", columns, rows, table.DisplayOptions{JSON: asJSON, Raw: raw})
	}

	out, err := p.List(path, listType, depth)
	if err != nil {
		return err
	}

	fmt.Print(out)
	return nil
}
