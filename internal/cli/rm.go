package cli

import (
	"fmt"

	"github.com/rif-tools/rif/internal/project"
	"github.com/rif-tools/rif/internal/ui/styles"
	"github.com/spf13/cobra"
)

func newRmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <path>...",
		Short: "Stop tracking files",
		Long: `Remove files from the relations store and their history.

Does not touch the file on disk - rif has no content to delete,
only bookkeeping metadata.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runRm,
	}
	return cmd
}

func runRm(cmd *cobra.Command, args []string) error {
	p, err := project.Open("")
	if err != nil {
		return err
	}

	if err := p.Remove(args); err != nil {
		return err
	}

	fmt.Println(styles.SuccessMsg(fmt.Sprintf("removed %d path(s) from tracking", len(args))))
	return nil
}
