package cli

import (
	"fmt"

	"github.com/rif-tools/rif/internal/project"
	"github.com/rif-tools/rif/internal/ui/styles"
	"github.com/spf13/cobra"
)

func newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <path>...",
		Short: "Stage files for the next commit",
		Long: `Stage file additions, updates and directory contents.

A directory argument is walked depth-first, honoring the blacklist: new
entries are queued for registration, modified tracked entries for
update, and deleted tracked entries for removal. Use "rif add ." to
stage the whole project root.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runAdd,
	}

	cmd.Flags().BoolP("force", "f", false, "Force-update already tracked files regardless of modification")

	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")

	p, err := project.Open("")
	if err != nil {
		return err
	}

	if err := p.Add(args, force); err != nil {
		return err
	}

	fmt.Println(styles.SuccessMsg("staged"))
	return nil
}

func newRevertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "revert [path]...",
		Short: "Unstage files",
		Long: `Remove files from the staging buffer.

Without arguments, clears the entire staging buffer.`,
		RunE: runRevert,
	}
	return cmd
}

func runRevert(cmd *cobra.Command, args []string) error {
	p, err := project.Open("")
	if err != nil {
		return err
	}

	if err := p.Revert(args); err != nil {
		return err
	}

	if len(args) == 0 {
		fmt.Println(styles.SuccessMsg("unstaged everything"))
	} else {
		fmt.Println(styles.SuccessMsg(fmt.Sprintf("unstaged %d path(s)", len(args))))
	}
	return nil
}
