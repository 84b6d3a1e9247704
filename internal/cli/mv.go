package cli

import (
	"fmt"

	"github.com/rif-tools/rif/internal/project"
	"github.com/rif-tools/rif/internal/ui/styles"
	"github.com/spf13/cobra"
)

func newMvCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mv <source> <destination>",
		Short: "Rename a tracked file",
		Long: `Rename a tracked file on disk and in the relations store.

Refuses to overwrite an existing destination. Resets the renamed
entry's last-modified clock to suppress a spurious modification
detection on the next status or check.`,
		Args: cobra.ExactArgs(2),
		RunE: runMv,
	}
	return cmd
}

func runMv(cmd *cobra.Command, args []string) error {
	p, err := project.Open("")
	if err != nil {
		return err
	}

	if err := p.Rename(args[0], args[1]); err != nil {
		return err
	}

	fmt.Println(styles.SuccessMsg(fmt.Sprintf("renamed '%s' -> '%s'", args[0], args[1])))
	return nil
}
