package cli

import (
	"fmt"

	"github.com/rif-tools/rif/internal/project"
	"github.com/spf13/cobra"
)

func newDependCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "depend <file>",
		Short: "List files whose staleness depends on file",
		Long: `List every tracked path whose transitive reference closure contains
file - the set of files that would be affected by a change to it.`,
		Args: cobra.ExactArgs(1),
		RunE: runDepend,
	}
	return cmd
}

func runDepend(cmd *cobra.Command, args []string) error {
	p, err := project.Open("")
	if err != nil {
		return err
	}

	depends, err := p.Depend(args[0])
	if err != nil {
		return err
	}

	if len(depends) == 0 {
		fmt.Println("no file depends on this one")
		return nil
	}
	for _, d := range depends {
		fmt.Println(d)
	}
	return nil
}
