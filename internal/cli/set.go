package cli

import (
	"fmt"

	"github.com/rif-tools/rif/internal/project"
	"github.com/rif-tools/rif/internal/ui/styles"
	"github.com/spf13/cobra"
)

func newSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <file> <ref>...",
		Short: "Declare that file references ref...",
		Long:  `Union the given references into file's reference set.`,
		Args:  cobra.MinimumNArgs(2),
		RunE:  runSet,
	}
	return cmd
}

func runSet(cmd *cobra.Command, args []string) error {
	p, err := project.Open("")
	if err != nil {
		return err
	}

	if err := p.Set(args[0], args[1:]); err != nil {
		return err
	}

	fmt.Println(styles.SuccessMsg(fmt.Sprintf("%s now references %d file(s)", args[0], len(args)-1)))
	return nil
}

func newUnsetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unset <file> <ref>...",
		Short: "Remove references from file",
		Long:  `Subtract the given references from file's reference set.`,
		Args:  cobra.MinimumNArgs(2),
		RunE:  runUnset,
	}
	return cmd
}

func runUnset(cmd *cobra.Command, args []string) error {
	p, err := project.Open("")
	if err != nil {
		return err
	}

	if err := p.Unset(args[0], args[1:]); err != nil {
		return err
	}

	fmt.Println(styles.SuccessMsg(fmt.Sprintf("removed %d reference(s) from %s", len(args)-1, args[0])))
	return nil
}
