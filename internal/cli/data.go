package cli

import (
	"fmt"

	"github.com/rif-tools/rif/internal/project"
	"github.com/spf13/cobra"
)

func newDataCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "data [type]",
		Short: "Dump internal state for debugging",
		Long: `Dump one of rif's persisted stores: the relations store by default,
or history / meta when TYPE is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runData,
	}

	cmd.Flags().BoolP("compact", "c", false, "Print a one-line summary instead of the full dump")

	return cmd
}

func runData(cmd *cobra.Command, args []string) error {
	compact, _ := cmd.Flags().GetBool("compact")

	dataType := ""
	if len(args) == 1 {
		dataType = args[0]
	}

	p, err := project.Open("")
	if err != nil {
		return err
	}

	out, err := p.Data(dataType, compact)
	if err != nil {
		return err
	}

	fmt.Print(out)
	if compact {
		fmt.Println()
	}
	return nil
}
