package cli

import (
	"fmt"

	"github.com/rif-tools/rif/internal/project"
	"github.com/rif-tools/rif/internal/ui/styles"
	"github.com/spf13/cobra"
)

func newDiscardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "discard <file>",
		Short: "Silence a detected modification",
		Long: `Advance a tracked file's last-modified clock to now without
treating the modification as a real update - its timestamp, and
therefore its effect on dependents, is unchanged.`,
		Args: cobra.ExactArgs(1),
		RunE: runDiscard,
	}
	return cmd
}

func runDiscard(cmd *cobra.Command, args []string) error {
	p, err := project.Open("")
	if err != nil {
		return err
	}

	if err := p.Discard(args[0]); err != nil {
		return err
	}

	fmt.Println(styles.SuccessMsg(fmt.Sprintf("discarded modification on %s", args[0])))
	return nil
}
