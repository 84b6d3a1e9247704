package cli

import (
	"fmt"

	"github.com/rif-tools/rif/internal/project"
	"github.com/rif-tools/rif/internal/ui"
	"github.com/spf13/cobra"
)

func newCommitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Apply staged changes and re-propagate status",
		Long: `Apply every staged change: deletions, new registrations, forced
updates and plain updates, in that order. If anything was added, run
the propagator afterward and fire the configured hook.

Refuses to commit when tracked files have been deleted from disk but
not all of them are staged for removal.`,
		RunE: runCommit,
	}

	cmd.Flags().StringP("message", "m", "", "History note recorded for registered and updated files")

	return cmd
}

func runCommit(cmd *cobra.Command, args []string) error {
	message, _ := cmd.Flags().GetString("message")

	p, err := project.Open("")
	if err != nil {
		return err
	}

	if p.Meta.IsEmpty() {
		fmt.Println("nothing staged, nothing to commit")
		return nil
	}

	spinner := ui.NewSpinner("Committing")
	spinner.Start()
	if err := p.Commit(message); err != nil {
		spinner.Error("commit failed")
		return err
	}
	spinner.Success("committed")
	return nil
}
